package render

import (
	"math"

	"github.com/shopspring/decimal"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
)

// Card is a labelled value box as shown on the dashboard.
type Card struct {
	Label   string  `json:"label"`
	Value   float64 `json:"-"`
	Display string  `json:"display"`
	Class   string  `json:"class"` // CSS: "metric-call" or "metric-put"
}

// GreekRow is one line of the call/put sensitivity table.
type GreekRow struct {
	Name string `json:"name"`
	Call string `json:"call"`
	Put  string `json:"put"`
}

// PriceCards returns the CALL and PUT value cards for r.
func PriceCards(r bsm.Result) []Card {
	return []Card{
		{Label: "CALL Value", Value: r.CallPrice, Display: Money(r.CallPrice), Class: "metric-call"},
		{Label: "PUT Value", Value: r.PutPrice, Display: Money(r.PutPrice), Class: "metric-put"},
	}
}

// GreekTable formats every greek of r to four decimal places.
func GreekTable(r bsm.Result) []GreekRow {
	var rows []GreekRow
	for _, g := range bsm.Greeks() {
		if g == bsm.Price {
			continue
		}
		callM, putM := g.Pair()
		call, _ := r.Get(callM)
		put, _ := r.Get(putM)
		rows = append(rows, GreekRow{Name: g.Title(), Call: Fixed(call, 4), Put: Fixed(put, 4)})
	}
	return rows
}

// Money formats v as dollars and cents, "n/a" when v is not finite.
func Money(v float64) string {
	if !finite(v) {
		return "n/a"
	}
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Fixed rounds v half away from zero to places decimals, "n/a" when v is
// not finite.
func Fixed(v float64, places int32) string {
	if !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
