package bsm

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Value is one model input in grid mode: either a scalar broadcast to every
// cell or a grid read elementwise.
type Value struct {
	scalar float64
	grid   mat.Matrix
}

// Scalar broadcasts v to every cell.
func Scalar(v float64) Value { return Value{scalar: v} }

// Grid reads m elementwise. A nil m, including a nil *mat.Dense, behaves
// as Scalar(0).
func Grid(m mat.Matrix) Value {
	if d, ok := m.(*mat.Dense); ok && d == nil {
		return Value{}
	}
	return Value{grid: m}
}

func (v Value) IsGrid() bool { return v.grid != nil }

func (v Value) at(i, j int) float64 {
	if v.grid == nil {
		return v.scalar
	}
	return v.grid.At(i, j)
}

// SurfaceParams is the grid-mode input bundle. Any subset of the five inputs
// may be grids; all grids must share one shape.
type SurfaceParams struct {
	Spot       Value
	Strike     Value
	Rate       Value
	Maturity   Value
	Volatility Value
}

// ScalarSurface lifts a point into a 1×1 surface.
func ScalarSurface(p Params) SurfaceParams {
	return SurfaceParams{
		Spot:       Scalar(p.Spot),
		Strike:     Scalar(p.Strike),
		Rate:       Scalar(p.Rate),
		Maturity:   Scalar(p.Maturity),
		Volatility: Scalar(p.Volatility),
	}
}

type namedValue struct {
	name  string
	value Value
}

func (sp SurfaceParams) fields() []namedValue {
	return []namedValue{
		{"spot_price", sp.Spot},
		{"strike_price", sp.Strike},
		{"rf_rate", sp.Rate},
		{"maturity_time", sp.Maturity},
		{"volatility", sp.Volatility},
	}
}

// Shape returns the common dimensions of the grid inputs, 1×1 when every
// input is scalar. Grids of differing dimensions fail with ErrShapeMismatch,
// a grid with no cells with ErrEmptyGrid.
func (sp SurfaceParams) Shape() (rows, cols int, err error) {
	rows, cols = 1, 1
	first := ""
	for _, f := range sp.fields() {
		if !f.value.IsGrid() {
			continue
		}
		r, c := f.value.grid.Dims()
		if r == 0 || c == 0 {
			return 0, 0, fmt.Errorf("%w: %s is %dx%d", ErrEmptyGrid, f.name, r, c)
		}
		if first == "" {
			rows, cols, first = r, c, f.name
			continue
		}
		if r != rows || c != cols {
			return 0, 0, fmt.Errorf("%w: %s is %dx%d but %s is %dx%d",
				ErrShapeMismatch, first, rows, cols, f.name, r, c)
		}
	}
	return rows, cols, nil
}

// At returns the scalar parameters of cell (i, j).
func (sp SurfaceParams) At(i, j int) Params {
	return Params{
		Spot:       sp.Spot.at(i, j),
		Strike:     sp.Strike.at(i, j),
		Rate:       sp.Rate.at(i, j),
		Maturity:   sp.Maturity.at(i, j),
		Volatility: sp.Volatility.at(i, j),
	}
}

// Evaluate applies measure m to every cell. Each cell of the result is
// exactly At(i, j).Measure(m).
func (sp SurfaceParams) Evaluate(m Measure) (*mat.Dense, error) {
	f, ok := measureFuncs[m]
	if !ok {
		return nil, unknownMeasure(m)
	}
	rows, cols, err := sp.Shape()
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, f(sp.At(i, j)))
		}
	}
	return out, nil
}

// Validate runs Params.Validate over every cell and reports the first
// failure with its location.
func (sp SurfaceParams) Validate() error {
	rows, cols, err := sp.Shape()
	if err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err := sp.At(i, j).Validate(); err != nil {
				var pe *ParameterError
				if errors.As(err, &pe) {
					pe.Row, pe.Col = i, j
				}
				return err
			}
		}
	}
	return nil
}
