package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jwaldner/greekmap/internal/surface"
)

var (
	// ErrEmptySurface means no cell of a pane holds a finite value.
	ErrEmptySurface = errors.New("surface has no finite values")
	ErrRender       = errors.New("render failed")
)

// HeatmapOptions sizes the output image in points. CallMap and PutMap
// colour the two panes; nil selects Kindlmann for calls and extended black
// body for puts.
type HeatmapOptions struct {
	Width   float64
	Height  float64
	Colors  int
	CallMap palette.ColorMap
	PutMap  palette.ColorMap
}

// DefaultHeatmapOptions matches the dashboard figure (14x5 inches).
var DefaultHeatmapOptions = HeatmapOptions{Width: 14 * 72, Height: 5 * 72, Colors: 64}

// grid adapts a surface pane to plotter.GridXYZ. Non-finite cells read as
// NaN so the heatmap paints them with its NaN colour.
type grid struct {
	xs, ys []float64
	z      *mat.Dense
}

func (g grid) Dims() (c, r int) { return len(g.xs), len(g.ys) }
func (g grid) X(c int) float64  { return g.xs[c] }
func (g grid) Y(r int) float64  { return g.ys[r] }
func (g grid) Z(c, r int) float64 {
	v := g.z.At(r, c)
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// zRange returns the finite extent of g, widened when flat.
func (g grid) zRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	c, r := g.Dims()
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			v := g.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0, false
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi, true
}

// palettes samples both pane colour maps.
func palettes(opts HeatmapOptions) (call, put palette.Palette) {
	callMap, putMap := opts.CallMap, opts.PutMap
	if callMap == nil {
		callMap = moreland.Kindlmann()
	}
	if putMap == nil {
		putMap = moreland.ExtendedBlackBody()
	}
	return callMap.Palette(opts.Colors), putMap.Palette(opts.Colors)
}

func pane(title string, s *surface.Surface, z *mat.Dense, pal palette.Palette) (*plot.Plot, error) {
	g := grid{xs: s.XValues, ys: s.YValues, z: z}
	lo, hi, ok := g.zRange()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEmptySurface, title)
	}

	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = lo, hi
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = s.X.Param.Label()
	p.Y.Label.Text = s.Y.Param.Label()
	p.Add(hm)
	return p, nil
}

// HeatmapPNG draws the call pane on the left and the put pane on the right
// and writes the figure to w as PNG.
func HeatmapPNG(w io.Writer, s *surface.Surface, opts HeatmapOptions) (err error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultHeatmapOptions.Width, DefaultHeatmapOptions.Height
	}
	if opts.Colors < 2 {
		opts.Colors = DefaultHeatmapOptions.Colors
	}

	// gonum/plot panics on some degenerate grids.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	title := s.Greek.Title()
	callPal, putPal := palettes(opts)
	call, err := pane(fmt.Sprintf("Call Option %s Heatmap", title), s, s.Call, callPal)
	if err != nil {
		return err
	}
	put, err := pane(fmt.Sprintf("Put Option %s Heatmap", title), s, s.Put, putPal)
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{{call, put}}
	img := vgimg.New(vg.Length(opts.Width), vg.Length(opts.Height))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots[0] {
		plots[0][j].Draw(canvases[0][j])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
