package bsm

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// spotVolGrid builds a rows×cols meshgrid over spot and volatility.
func spotVolGrid(rows, cols int) (*mat.Dense, *mat.Dense) {
	spot := mat.NewDense(rows, cols, nil)
	vol := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			spot.Set(i, j, 10+990*float64(j)/float64(cols-1))
			vol.Set(i, j, 0.01+0.99*float64(i)/float64(rows-1))
		}
	}
	return spot, vol
}

func TestSurfaceMatchesScalarCells(t *testing.T) {
	spot, vol := spotVolGrid(100, 100)
	sp := SurfaceParams{
		Spot:       Grid(spot),
		Strike:     Scalar(100),
		Rate:       Scalar(0.1),
		Maturity:   Scalar(1),
		Volatility: Grid(vol),
	}

	for _, m := range Measures() {
		out, err := sp.Evaluate(m)
		if err != nil {
			t.Fatalf("Evaluate(%s): %v", m, err)
		}
		r, c := out.Dims()
		if r != 100 || c != 100 {
			t.Fatalf("%s: shape %dx%d, want 100x100", m, r, c)
		}
		for i := 0; i < r; i += 9 {
			for j := 0; j < c; j += 11 {
				p := Params{Spot: spot.At(i, j), Strike: 100, Rate: 0.1, Maturity: 1, Volatility: vol.At(i, j)}
				want, _ := p.Measure(m)
				got := out.At(i, j)
				if got != want && !(math.IsNaN(got) && math.IsNaN(want)) {
					t.Fatalf("%s[%d,%d] = %v, scalar = %v", m, i, j, got, want)
				}
			}
		}
	}
}

func TestSurfaceGammaSameForBothPanes(t *testing.T) {
	spot, vol := spotVolGrid(5, 7)
	sp := SurfaceParams{Spot: Grid(spot), Strike: Scalar(100), Rate: Scalar(0.05), Maturity: Scalar(0.5), Volatility: Grid(vol)}
	for _, g := range []Greek{GammaGreek, VegaGreek} {
		callM, putM := g.Pair()
		call, err := sp.Evaluate(callM)
		if err != nil {
			t.Fatal(err)
		}
		put, err := sp.Evaluate(putM)
		if err != nil {
			t.Fatal(err)
		}
		if !mat.Equal(call, put) {
			t.Errorf("%s: call and put grids differ", g)
		}
	}
}

func TestSurfaceShapeMismatch(t *testing.T) {
	spot, _ := spotVolGrid(10, 10)
	_, vol := spotVolGrid(10, 12)
	sp := SurfaceParams{Spot: Grid(spot), Strike: Scalar(100), Rate: Scalar(0.1), Maturity: Scalar(1), Volatility: Grid(vol)}

	if _, _, err := sp.Shape(); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Shape error = %v, want ErrShapeMismatch", err)
	}
	if _, err := sp.Evaluate(CallPrice); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Evaluate error = %v, want ErrShapeMismatch", err)
	}
	if err := sp.Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Validate error = %v, want ErrShapeMismatch", err)
	}
}

func TestScalarSurfaceIsOneByOne(t *testing.T) {
	out, err := ScalarSurface(atm).Evaluate(CallPrice)
	if err != nil {
		t.Fatal(err)
	}
	r, c := out.Dims()
	if r != 1 || c != 1 {
		t.Fatalf("shape %dx%d, want 1x1", r, c)
	}
	if out.At(0, 0) != atm.CallPrice() {
		t.Errorf("cell = %v, want %v", out.At(0, 0), atm.CallPrice())
	}
}

func TestSurfaceUnknownMeasure(t *testing.T) {
	if _, err := ScalarSurface(atm).Evaluate(Measure("charm")); !errors.Is(err, ErrUnknownMeasure) {
		t.Fatalf("error = %v, want ErrUnknownMeasure", err)
	}
}

func TestSurfaceValidateReportsCell(t *testing.T) {
	vol := mat.NewDense(2, 3, []float64{
		0.2, 0.2, 0.2,
		0.2, 0, 0.2,
	})
	sp := SurfaceParams{Spot: Scalar(100), Strike: Scalar(100), Rate: Scalar(0.1), Maturity: Scalar(1), Volatility: Grid(vol)}
	err := sp.Validate()
	var pe *ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParameterError", err)
	}
	if pe.Field != "volatility" || pe.Row != 1 || pe.Col != 1 {
		t.Errorf("got %s at [%d,%d], want volatility at [1,1]", pe.Field, pe.Row, pe.Col)
	}

	// permissive evaluation still succeeds and yields a non-finite cell
	out, err := sp.Evaluate(Gamma)
	if err != nil {
		t.Fatal(err)
	}
	if g := out.At(1, 1); !math.IsNaN(g) && !math.IsInf(g, 0) {
		t.Errorf("gamma at sigma=0 = %v, want non-finite", g)
	}
}

func TestSurfaceEmptyGrid(t *testing.T) {
	// the zero Dense is gonum's empty matrix
	sp := ScalarSurface(atm)
	sp.Spot = Grid(&mat.Dense{})

	if _, _, err := sp.Shape(); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("Shape error = %v, want ErrEmptyGrid", err)
	}
	if _, err := sp.Evaluate(CallPrice); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("Evaluate error = %v, want ErrEmptyGrid", err)
	}
	if err := sp.Validate(); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("Validate error = %v, want ErrEmptyGrid", err)
	}
}

func TestGridNilDenseIsScalarZero(t *testing.T) {
	var d *mat.Dense
	v := Grid(d)
	if v.IsGrid() {
		t.Fatalf("Grid(nil *mat.Dense) reports a grid")
	}

	sp := ScalarSurface(atm)
	sp.Rate = v
	out, err := sp.Evaluate(CallPrice)
	if err != nil {
		t.Fatal(err)
	}
	want := Params{Spot: 100, Strike: 100, Rate: 0, Maturity: 1, Volatility: 0.2}.CallPrice()
	if r, c := out.Dims(); r != 1 || c != 1 || out.At(0, 0) != want {
		t.Errorf("got %dx%d cell %v, want 1x1 %v", r, c, out.At(0, 0), want)
	}
}
