package render

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/surface"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func buildSurface(t *testing.T, x, y surface.Axis, g bsm.Greek) *surface.Surface {
	t.Helper()
	base := bsm.Params{Spot: 100, Strike: 100, Rate: 0.1, Maturity: 1, Volatility: 0.2}
	s, err := surface.Build(context.Background(), base, x, y, g, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestHeatmapPNG(t *testing.T) {
	s := buildSurface(t,
		surface.Axis{Param: surface.Spot, Min: 50, Max: 150, Points: 20},
		surface.Axis{Param: surface.Volatility, Min: 0.05, Max: 1, Points: 20},
		bsm.DeltaGreek)

	var buf bytes.Buffer
	if err := HeatmapPNG(&buf, s, HeatmapOptions{Width: 400, Height: 200}); err != nil {
		t.Fatalf("HeatmapPNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("output is not a PNG")
	}
}

func TestHeatmapPNGWithNaNRegions(t *testing.T) {
	// the dashboard default sweep starts at S=0 and sigma=0
	s := buildSurface(t,
		surface.Axis{Param: surface.Spot, Min: 0, Max: 1000, Points: 15},
		surface.Axis{Param: surface.Volatility, Min: 0, Max: 1, Points: 15},
		bsm.GammaGreek)

	var buf bytes.Buffer
	if err := HeatmapPNG(&buf, s, HeatmapOptions{}); err != nil {
		t.Fatalf("HeatmapPNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("output is not a PNG")
	}
}

func TestHeatmapPNGAllNaN(t *testing.T) {
	nan := mat.NewDense(2, 2, []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()})
	s := &surface.Surface{
		Greek:   bsm.Price,
		X:       surface.Axis{Param: surface.Spot, Min: 1, Max: 2, Points: 2},
		Y:       surface.Axis{Param: surface.Maturity, Min: 0, Max: 0, Points: 2},
		XValues: []float64{1, 2},
		YValues: []float64{0, 0},
		Call:    nan,
		Put:     nan,
	}
	err := HeatmapPNG(&bytes.Buffer{}, s, HeatmapOptions{})
	if !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("error = %v, want ErrEmptySurface", err)
	}
}

func TestHeatmapPanesUseDistinctPalettes(t *testing.T) {
	call, put := palettes(HeatmapOptions{Colors: 16})
	cc, pc := call.Colors(), put.Colors()
	if len(cc) != 16 || len(pc) != 16 {
		t.Fatalf("palette sizes %d, %d", len(cc), len(pc))
	}
	differ := false
	for i := range cc {
		r1, g1, b1, _ := cc[i].RGBA()
		r2, g2, b2, _ := pc[i].RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 {
			differ = true
			break
		}
	}
	if !differ {
		t.Errorf("call and put panes share one palette")
	}
}
