package bsm

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestEvaluateBatchMatchesSequential(t *testing.T) {
	var points []Params
	for i := 0; i < 257; i++ {
		points = append(points, Params{
			Spot:       50 + float64(i),
			Strike:     100,
			Rate:       0.05,
			Maturity:   0.25 + float64(i%8)/4,
			Volatility: 0.1 + float64(i%5)/10,
		})
	}
	// one out-of-domain point propagates NaN without affecting neighbours
	points[10].Maturity = 0

	for _, workers := range []int{0, 1, 3, 16, 1000} {
		got, err := EvaluateBatch(context.Background(), points, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(got) != len(points) {
			t.Fatalf("workers=%d: %d results", workers, len(got))
		}
		for i, p := range points {
			want := p.Evaluate()
			if i == 10 {
				if !math.IsNaN(got[i].CallPrice) {
					t.Errorf("workers=%d: T=0 call = %v", workers, got[i].CallPrice)
				}
				continue
			}
			if got[i] != want {
				t.Fatalf("workers=%d: result %d differs", workers, i)
			}
		}
	}
}

func TestEvaluateBatchEmpty(t *testing.T) {
	got, err := EvaluateBatch(context.Background(), nil, 4)
	if err != nil || len(got) != 0 {
		t.Errorf("got %d results, %v", len(got), err)
	}
}

func TestEvaluateBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	points := make([]Params, 64)
	for i := range points {
		points[i] = atm
	}
	for _, workers := range []int{1, 4} {
		got, err := EvaluateBatch(ctx, points, workers)
		if !errors.Is(err, context.Canceled) || got != nil {
			t.Errorf("workers=%d: got %d results, err %v, want context.Canceled", workers, len(got), err)
		}
	}
}
