package bsm

import (
	"fmt"
	"math"
)

// Params holds the five Black-Scholes-Merton inputs for a single point.
// A Params is a plain value; every pricing method reads it and never
// mutates it.
type Params struct {
	Spot       float64 `json:"spot_price" yaml:"spot_price"`
	Strike     float64 `json:"strike_price" yaml:"strike_price"`
	Rate       float64 `json:"rf_rate" yaml:"rf_rate"`
	Maturity   float64 `json:"maturity_time" yaml:"maturity_time"` // years
	Volatility float64 `json:"volatility" yaml:"volatility"`       // annualized
}

// terms are the intermediates every formula is built from.
type terms struct {
	d1       float64
	d2       float64
	sqrtT    float64
	discount float64 // e^(-rT)
}

// derive is the single d1/d2 derivation shared by all measures, so that
// e.g. CallPrice and DeltaCall see bit-identical d1 for the same Params.
func (p Params) derive() terms {
	sqrtT := math.Sqrt(p.Maturity)
	volSqrtT := p.Volatility * sqrtT
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Volatility*p.Volatility)*p.Maturity) / volSqrtT
	return terms{
		d1:       d1,
		d2:       d1 - volSqrtT,
		sqrtT:    sqrtT,
		discount: math.Exp(-p.Rate * p.Maturity),
	}
}

// D1D2 returns the standardized moneyness terms d1 and d2.
func (p Params) D1D2() (float64, float64) {
	t := p.derive()
	return t.d1, t.d2
}

// Validate reports whether p lies inside the model's domain. Pricing never
// calls it: out-of-domain inputs propagate as NaN/Inf unless the caller opts
// into strict checking.
func (p Params) Validate() error {
	checks := []struct {
		field    string
		value    float64
		positive bool
	}{
		{"spot_price", p.Spot, true},
		{"strike_price", p.Strike, true},
		{"rf_rate", p.Rate, false},
		{"maturity_time", p.Maturity, true},
		{"volatility", p.Volatility, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return &ParameterError{Field: c.field, Value: c.value, Reason: "must be finite", Row: -1, Col: -1}
		}
		if c.positive && c.value <= 0 {
			return &ParameterError{Field: c.field, Value: c.value, Reason: "must be > 0", Row: -1, Col: -1}
		}
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("S=%g K=%g r=%g T=%g sigma=%g", p.Spot, p.Strike, p.Rate, p.Maturity, p.Volatility)
}
