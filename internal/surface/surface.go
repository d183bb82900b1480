package surface

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
)

// Surface is one greek evaluated over a two-parameter sweep, call and put
// side by side. Rows follow the Y axis, columns the X axis.
type Surface struct {
	Greek   bsm.Greek
	Base    bsm.Params
	X, Y    Axis
	XValues []float64
	YValues []float64
	Call    *mat.Dense
	Put     *mat.Dense
}

// Build sweeps base over x and y and evaluates both legs of greek. When
// strict is set every cell must pass bsm.Params.Validate.
func Build(ctx context.Context, base bsm.Params, x, y Axis, greek bsm.Greek, strict bool) (*Surface, error) {
	sp, err := Sweep(base, x, y)
	if err != nil {
		return nil, err
	}
	if strict {
		if err := sp.Validate(); err != nil {
			return nil, err
		}
	}

	s := &Surface{
		Greek:   greek,
		Base:    base,
		X:       x,
		Y:       y,
		XValues: x.Values(),
		YValues: y.Values(),
	}
	callM, putM := greek.Pair()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := sp.Evaluate(callM)
		s.Call = out
		return err
	})
	if putM == callM {
		if err := g.Wait(); err != nil {
			return nil, err
		}
		s.Put = s.Call
		return s, nil
	}
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := sp.Evaluate(putM)
		s.Put = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Cell returns the swept coordinates and both values at row i, column j.
func (s *Surface) Cell(i, j int) (x, y, call, put float64) {
	return s.XValues[j], s.YValues[i], s.Call.At(i, j), s.Put.At(i, j)
}
