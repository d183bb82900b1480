package surface

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
)

var (
	ErrInvalidAxis   = errors.New("invalid axis")
	ErrDuplicateAxis = errors.New("both axes sweep the same parameter")
)

// Param names one of the five model inputs that can be swept.
type Param string

const (
	Spot       Param = "spot"
	Strike     Param = "strike"
	Rate       Param = "rate"
	Maturity   Param = "maturity"
	Volatility Param = "volatility"
)

var paramLabels = map[Param]string{
	Spot:       "Spot Price",
	Strike:     "Strike Price",
	Rate:       "Risk-Free Interest Rate",
	Maturity:   "Time to Maturity (years)",
	Volatility: "Volatility",
}

// aliases accepted by ParseParam besides the canonical names
var paramAliases = map[string]Param{
	"spot_price":    Spot,
	"s":             Spot,
	"strike_price":  Strike,
	"k":             Strike,
	"rf_rate":       Rate,
	"r":             Rate,
	"maturity_time": Maturity,
	"t":             Maturity,
	"vol":           Volatility,
	"sigma":         Volatility,
}

func ParseParam(s string) (Param, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	p := Param(key)
	if _, ok := paramLabels[p]; ok {
		return p, nil
	}
	if p, ok := paramAliases[key]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown parameter %q", ErrInvalidAxis, s)
}

// Label is the axis caption used on plots.
func (p Param) Label() string {
	if l, ok := paramLabels[p]; ok {
		return l
	}
	return string(p)
}

// MaxPoints bounds every axis regardless of configuration, keeping a
// surface at or below a million cells.
const MaxPoints = 1000

// Axis is a linearly spaced sweep over one parameter.
type Axis struct {
	Param  Param   `json:"param" yaml:"param"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Points int     `json:"points" yaml:"points"`
}

func (a Axis) Validate() error {
	if _, ok := paramLabels[a.Param]; !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidAxis, a.Param)
	}
	if a.Points < 1 {
		return fmt.Errorf("%w: %s needs at least one point, got %d", ErrInvalidAxis, a.Param, a.Points)
	}
	if a.Points > MaxPoints {
		return fmt.Errorf("%w: %s has %d points, at most %d allowed", ErrInvalidAxis, a.Param, a.Points, MaxPoints)
	}
	if math.IsNaN(a.Min) || math.IsNaN(a.Max) || math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) {
		return fmt.Errorf("%w: %s bounds must be finite", ErrInvalidAxis, a.Param)
	}
	if a.Min > a.Max {
		return fmt.Errorf("%w: %s min %g > max %g", ErrInvalidAxis, a.Param, a.Min, a.Max)
	}
	return nil
}

// ValidateLimit is Validate with a tighter point limit. maxPoints <= 0
// leaves only the MaxPoints bound.
func (a Axis) ValidateLimit(maxPoints int) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if maxPoints > 0 && a.Points > maxPoints {
		return fmt.Errorf("%w: %s has %d points, at most %d allowed", ErrInvalidAxis, a.Param, a.Points, maxPoints)
	}
	return nil
}

// Values returns the sample points of a.
func (a Axis) Values() []float64 {
	return Linspace(a.Min, a.Max, a.Points)
}

// ParseAxis reads "param:min:max[:points]"; points defaults to defPoints.
func ParseAxis(s string, defPoints int) (Axis, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return Axis{}, fmt.Errorf("%w: %q, want param:min:max[:points]", ErrInvalidAxis, s)
	}
	p, err := ParseParam(parts[0])
	if err != nil {
		return Axis{}, err
	}
	lo, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("%w: min %q: %v", ErrInvalidAxis, parts[1], err)
	}
	hi, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Axis{}, fmt.Errorf("%w: max %q: %v", ErrInvalidAxis, parts[2], err)
	}
	a := Axis{Param: p, Min: lo, Max: hi, Points: defPoints}
	if len(parts) == 4 {
		if a.Points, err = strconv.Atoi(parts[3]); err != nil {
			return Axis{}, fmt.Errorf("%w: points %q: %v", ErrInvalidAxis, parts[3], err)
		}
	}
	return a, a.Validate()
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n == 1 yields [lo]; n < 1 yields nil.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{lo}
	}
	xs := floats.Span(make([]float64, n), lo, hi)
	xs[n-1] = hi
	return xs
}

// Meshgrid expands xs and ys into coordinate grids with len(ys) rows and
// len(xs) columns: X[i,j] = xs[j], Y[i,j] = ys[i].
func Meshgrid(xs, ys []float64) (x, y *mat.Dense) {
	rows, cols := len(ys), len(xs)
	x = mat.NewDense(rows, cols, nil)
	y = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		x.SetRow(i, xs)
		for j := 0; j < cols; j++ {
			y.Set(i, j, ys[i])
		}
	}
	return x, y
}

// Sweep places the meshgrid of x and y over base, leaving the other three
// inputs scalar.
func Sweep(base bsm.Params, x, y Axis) (bsm.SurfaceParams, error) {
	if err := x.Validate(); err != nil {
		return bsm.SurfaceParams{}, err
	}
	if err := y.Validate(); err != nil {
		return bsm.SurfaceParams{}, err
	}
	if x.Param == y.Param {
		return bsm.SurfaceParams{}, fmt.Errorf("%w: %s", ErrDuplicateAxis, x.Param)
	}
	gx, gy := Meshgrid(x.Values(), y.Values())

	sp := bsm.ScalarSurface(base)
	assign(&sp, x.Param, bsm.Grid(gx))
	assign(&sp, y.Param, bsm.Grid(gy))
	return sp, nil
}

func assign(sp *bsm.SurfaceParams, p Param, v bsm.Value) {
	switch p {
	case Spot:
		sp.Spot = v
	case Strike:
		sp.Strike = v
	case Rate:
		sp.Rate = v
	case Maturity:
		sp.Maturity = v
	case Volatility:
		sp.Volatility = v
	}
}
