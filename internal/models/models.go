package models

import (
	"math"

	"gonum.org/v1/gonum/mat"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/render"
	"github.com/jwaldner/greekmap/internal/surface"
)

// PriceRequest prices a single point. Omitted fields keep the configured
// defaults.
type PriceRequest struct {
	bsm.Params
	Strict *bool `json:"strict,omitempty"` // overrides engine.strict_validation
}

// PriceResponse carries every measure for one point. Non-finite values are
// encoded as null.
type PriceResponse struct {
	Success bool                `json:"success"`
	Params  bsm.Params          `json:"params"`
	Values  map[string]*float64 `json:"values"`
	Cards   []render.Card       `json:"cards"`
	Greeks  []render.GreekRow   `json:"greeks"`
}

// SurfaceRequest sweeps one greek over two parameters.
type SurfaceRequest struct {
	Params bsm.Params   `json:"params"`
	X      surface.Axis `json:"x_axis"`
	Y      surface.Axis `json:"y_axis"`
	Greek  string       `json:"greek"`
	Strict *bool        `json:"strict,omitempty"`
}

// SurfaceResponse holds call and put grids indexed [y][x].
type SurfaceResponse struct {
	Success bool         `json:"success"`
	Greek   string       `json:"greek"`
	Params  bsm.Params   `json:"params"`
	X       surface.Axis `json:"x_axis"`
	Y       surface.Axis `json:"y_axis"`
	XValues []float64    `json:"x_values"`
	YValues []float64    `json:"y_values"`
	Call    [][]*float64 `json:"call"`
	Put     [][]*float64 `json:"put"`
}

// ErrorResponse is returned for every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewPriceResponse builds the response for r.
func NewPriceResponse(r bsm.Result) PriceResponse {
	return PriceResponse{
		Success: true,
		Params:  r.Params,
		Values:  Values(r),
		Cards:   render.PriceCards(r),
		Greeks:  render.GreekTable(r),
	}
}

// NewSurfaceResponse builds the response for s.
func NewSurfaceResponse(s *surface.Surface) SurfaceResponse {
	return SurfaceResponse{
		Success: true,
		Greek:   string(s.Greek),
		Params:  s.Base,
		X:       s.X,
		Y:       s.Y,
		XValues: s.XValues,
		YValues: s.YValues,
		Call:    Matrix(s.Call),
		Put:     Matrix(s.Put),
	}
}

// Float returns nil for NaN and ±Inf, which encoding/json cannot encode.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Matrix converts m to rows of sanitized values.
func Matrix(m mat.Matrix) [][]*float64 {
	r, c := m.Dims()
	out := make([][]*float64, r)
	for i := range out {
		out[i] = make([]*float64, c)
		for j := range out[i] {
			out[i][j] = Float(m.At(i, j))
		}
	}
	return out
}

// BatchPriceRequest for multiple independent points
type BatchPriceRequest struct {
	Calculations []bsm.Params `json:"calculations"`
	Strict       *bool        `json:"strict,omitempty"`
}

// PointValues is one priced point of a batch
type PointValues struct {
	Params bsm.Params          `json:"params"`
	Values map[string]*float64 `json:"values"`
}

// BatchPriceResponse for multiple results
type BatchPriceResponse struct {
	Success           bool          `json:"success"`
	Results           []PointValues `json:"results"`
	ProcessedIn       float64       `json:"processed_in_ms"`
	TotalCalculations int           `json:"total_calculations"`
}

// Values returns every measure of r keyed by name, non-finite as nil.
func Values(r bsm.Result) map[string]*float64 {
	values := make(map[string]*float64, len(bsm.Measures()))
	for _, m := range bsm.Measures() {
		v, _ := r.Get(m)
		values[string(m)] = Float(v)
	}
	return values
}
