package render

import (
	"math"
	"testing"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{13.2696765846609, "$13.27"},
		{3.75341838825684, "$3.75"},
		{0, "$0.00"},
		{-0.214373, "-$0.21"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriceCards(t *testing.T) {
	r := bsm.Params{Spot: 100, Strike: 100, Rate: 0.1, Maturity: 1, Volatility: 0.2}.Evaluate()
	cards := PriceCards(r)
	if len(cards) != 2 {
		t.Fatalf("got %d cards", len(cards))
	}
	if cards[0].Label != "CALL Value" || cards[0].Display != "$13.27" || cards[0].Class != "metric-call" {
		t.Errorf("call card = %+v", cards[0])
	}
	if cards[1].Label != "PUT Value" || cards[1].Display != "$3.75" || cards[1].Class != "metric-put" {
		t.Errorf("put card = %+v", cards[1])
	}
}

func TestGreekTable(t *testing.T) {
	r := bsm.Params{Spot: 100, Strike: 100, Rate: 0.1, Maturity: 1, Volatility: 0.2}.Evaluate()
	rows := GreekTable(r)
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0].Name != "Delta" || rows[0].Call != "0.7257" || rows[0].Put != "-0.2743" {
		t.Errorf("delta row = %+v", rows[0])
	}
	if rows[1].Name != "Gamma" || rows[1].Call != rows[1].Put {
		t.Errorf("gamma row = %+v", rows[1])
	}

	nan := bsm.Params{Spot: 100, Strike: 100, Rate: 0.1, Maturity: 0, Volatility: 0.2}.Evaluate()
	for _, row := range GreekTable(nan) {
		if row.Call != "n/a" {
			t.Errorf("%s call = %q, want n/a", row.Name, row.Call)
		}
	}
}
