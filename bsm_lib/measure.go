package bsm

import (
	"fmt"
	"strings"
)

// Measure names one engine output.
type Measure string

const (
	CallPrice Measure = "call_price"
	PutPrice  Measure = "put_price"
	DeltaCall Measure = "delta_call"
	DeltaPut  Measure = "delta_put"
	Gamma     Measure = "gamma"
	Vega      Measure = "vega"
	ThetaCall Measure = "theta_call"
	ThetaPut  Measure = "theta_put"
	RhoCall   Measure = "rho_call"
	RhoPut    Measure = "rho_put"
)

var measureFuncs = map[Measure]func(Params) float64{
	CallPrice: Params.CallPrice,
	PutPrice:  Params.PutPrice,
	DeltaCall: Params.DeltaCall,
	DeltaPut:  Params.DeltaPut,
	Gamma:     Params.Gamma,
	Vega:      Params.Vega,
	ThetaCall: Params.ThetaCall,
	ThetaPut:  Params.ThetaPut,
	RhoCall:   Params.RhoCall,
	RhoPut:    Params.RhoPut,
}

// Measures lists every output in display order.
func Measures() []Measure {
	return []Measure{CallPrice, PutPrice, DeltaCall, DeltaPut, Gamma, Vega, ThetaCall, ThetaPut, RhoCall, RhoPut}
}

// ParseMeasure accepts the snake_case output name, case-insensitively.
func ParseMeasure(s string) (Measure, error) {
	m := Measure(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := measureFuncs[m]; !ok {
		return "", unknownMeasure(m)
	}
	return m, nil
}

// Measure computes a single named output for p.
func (p Params) Measure(m Measure) (float64, error) {
	f, ok := measureFuncs[m]
	if !ok {
		return 0, unknownMeasure(m)
	}
	return f(p), nil
}

// Greek groups the call and put variants of one sensitivity, the unit the
// dashboard plots side by side.
type Greek string

const (
	Price      Greek = "price"
	DeltaGreek Greek = "delta"
	GammaGreek Greek = "gamma"
	VegaGreek  Greek = "vega"
	ThetaGreek Greek = "theta"
	RhoGreek   Greek = "rho"
)

var greekPairs = map[Greek][2]Measure{
	Price:      {CallPrice, PutPrice},
	DeltaGreek: {DeltaCall, DeltaPut},
	GammaGreek: {Gamma, Gamma},
	VegaGreek:  {Vega, Vega},
	ThetaGreek: {ThetaCall, ThetaPut},
	RhoGreek:   {RhoCall, RhoPut},
}

var greekTitles = map[Greek]string{
	Price:      "Price",
	DeltaGreek: "Delta",
	GammaGreek: "Gamma",
	VegaGreek:  "Vega",
	ThetaGreek: "Theta",
	RhoGreek:   "Rho",
}

// Greeks lists every greek in display order.
func Greeks() []Greek {
	return []Greek{Price, DeltaGreek, GammaGreek, VegaGreek, ThetaGreek, RhoGreek}
}

func ParseGreek(s string) (Greek, error) {
	g := Greek(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := greekPairs[g]; !ok {
		return "", fmt.Errorf("%w: greek %q", ErrUnknownMeasure, s)
	}
	return g, nil
}

// Pair returns the call and put measures for g. Gamma and vega return the
// same measure twice.
func (g Greek) Pair() (call, put Measure) {
	pair := greekPairs[g]
	return pair[0], pair[1]
}

// Title is the display name, e.g. "Delta".
func (g Greek) Title() string {
	if t, ok := greekTitles[g]; ok {
		return t
	}
	return string(g)
}

func unknownMeasure(m Measure) error {
	return fmt.Errorf("%w: %q", ErrUnknownMeasure, string(m))
}
