package bsm

// CallPrice is the European call value S·Φ(d1) − K·e^(−rT)·Φ(d2).
func (p Params) CallPrice() float64 {
	t := p.derive()
	return p.Spot*NormCDF(t.d1) - p.Strike*t.discount*NormCDF(t.d2)
}

// PutPrice is the European put value K·e^(−rT)·Φ(−d2) − S·Φ(−d1).
func (p Params) PutPrice() float64 {
	t := p.derive()
	return p.Strike*t.discount*NormCDF(-t.d2) - p.Spot*NormCDF(-t.d1)
}

func (p Params) DeltaCall() float64 {
	return NormCDF(p.derive().d1)
}

func (p Params) DeltaPut() float64 {
	return NormCDF(p.derive().d1) - 1
}

// Gamma is shared by calls and puts.
func (p Params) Gamma() float64 {
	t := p.derive()
	return NormPDF(t.d1) / (p.Spot * p.Volatility * t.sqrtT)
}

// Vega is quoted per one percentage point of volatility, shared by calls and
// puts.
func (p Params) Vega() float64 {
	t := p.derive()
	return p.Spot * NormPDF(t.d1) * t.sqrtT / 100
}

// ThetaCall is the per-year time decay of the call (not divided by 365).
func (p Params) ThetaCall() float64 {
	t := p.derive()
	return p.decay(t) - p.Rate*p.Strike*t.discount*NormCDF(t.d2)
}

// ThetaPut is the per-year time decay of the put (not divided by 365).
func (p Params) ThetaPut() float64 {
	t := p.derive()
	return p.decay(t) + p.Rate*p.Strike*t.discount*NormCDF(-t.d2)
}

// decay is the volatility term common to both thetas.
func (p Params) decay(t terms) float64 {
	return -(p.Spot * NormPDF(t.d1) * p.Volatility) / (2 * t.sqrtT)
}

// RhoCall is the sensitivity to a unit (100%) change in the rate.
func (p Params) RhoCall() float64 {
	t := p.derive()
	return p.Strike * p.Maturity * t.discount * NormCDF(t.d2)
}

// RhoPut is the sensitivity to a unit (100%) change in the rate.
func (p Params) RhoPut() float64 {
	t := p.derive()
	return -p.Strike * p.Maturity * t.discount * NormCDF(-t.d2)
}

// Result bundles every output for one parameter point.
type Result struct {
	Params    Params  `json:"params"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
	DeltaCall float64 `json:"delta_call"`
	DeltaPut  float64 `json:"delta_put"`
	Gamma     float64 `json:"gamma"`
	Vega      float64 `json:"vega"`
	ThetaCall float64 `json:"theta_call"`
	ThetaPut  float64 `json:"theta_put"`
	RhoCall   float64 `json:"rho_call"`
	RhoPut    float64 `json:"rho_put"`
}

// Evaluate computes every measure for p.
func (p Params) Evaluate() Result {
	return Result{
		Params:    p,
		CallPrice: p.CallPrice(),
		PutPrice:  p.PutPrice(),
		DeltaCall: p.DeltaCall(),
		DeltaPut:  p.DeltaPut(),
		Gamma:     p.Gamma(),
		Vega:      p.Vega(),
		ThetaCall: p.ThetaCall(),
		ThetaPut:  p.ThetaPut(),
		RhoCall:   p.RhoCall(),
		RhoPut:    p.RhoPut(),
	}
}

// Get returns the named measure from r.
func (r Result) Get(m Measure) (float64, error) {
	switch m {
	case CallPrice:
		return r.CallPrice, nil
	case PutPrice:
		return r.PutPrice, nil
	case DeltaCall:
		return r.DeltaCall, nil
	case DeltaPut:
		return r.DeltaPut, nil
	case Gamma:
		return r.Gamma, nil
	case Vega:
		return r.Vega, nil
	case ThetaCall:
		return r.ThetaCall, nil
	case ThetaPut:
		return r.ThetaPut, nil
	case RhoCall:
		return r.RhoCall, nil
	case RhoPut:
		return r.RhoPut, nil
	}
	return 0, unknownMeasure(m)
}
