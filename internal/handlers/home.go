package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/logger"
	"github.com/jwaldner/greekmap/internal/render"
	"github.com/jwaldner/greekmap/internal/surface"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Black-Scholes Option Pricing Model</title>
<style>
body { font-family: sans-serif; margin: 24px; }
.metrics { display: flex; gap: 10px; }
.metric-container { flex: 1; display: flex; justify-content: center; align-items: center; padding: 8px; border-radius: 10px; color: white; }
.metric-call { background-color: #8cd47e; }
.metric-put { background-color: #d94b58; }
.metric-value { font-size: 1.5rem; font-weight: bold; margin: 0; }
.metric-label { font-size: 1rem; margin-bottom: 4px; }
table { border-collapse: collapse; margin: 12px 0; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
form label { display: inline-block; margin-right: 12px; }
img { max-width: 100%; }
</style>
</head>
<body>
<h1>Black-Scholes Options Pricing Model</h1>
<form method="GET" action="/">
{{range .Fields}}<label>{{.Label}} <input name="{{.Name}}" value="{{.Value}}" size="8"></label>
{{end}}<label>X sweep <input name="x" value="{{.X}}" size="18"></label>
<label>Y sweep <input name="y" value="{{.Y}}" size="18"></label>
<button type="submit">Update</button>
</form>
<table>
<tr>{{range .Fields}}<th>{{.Label}}</th>{{end}}</tr>
<tr>{{range .Fields}}<td>{{.Value}}</td>{{end}}</tr>
</table>
<div class="metrics">
{{range .Cards}}<div class="metric-container {{.Class}}"><div><div class="metric-label">{{.Label}}</div><div class="metric-value">{{.Display}}</div></div></div>
{{end}}</div>
<table>
<tr><th>Greek</th><th>Call</th><th>Put</th></tr>
{{range .Greeks}}<tr><td>{{.Name}}</td><td>{{.Call}}</td><td>{{.Put}}</td></tr>
{{end}}</table>
<hr>
<h1>Modeling European Option Sensitivities in the Black-Scholes Framework</h1>
{{range .Heatmaps}}<h3>{{.Title}}</h3>
<img src="{{.URL}}" alt="{{.Title}} heatmap">
{{end}}
</body>
</html>
`))

type homeField struct {
	Name  string
	Label string
	Value string
}

type homeHeatmap struct {
	Title string
	URL   string
}

type homeData struct {
	Fields   []homeField
	X, Y     string
	Cards    []render.Card
	Greeks   []render.GreekRow
	Heatmaps []homeHeatmap
}

func axisString(a surface.Axis) string {
	return string(a.Param) + ":" + formatNumber(a.Min) + ":" + formatNumber(a.Max) + ":" + strconv.Itoa(a.Points)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var greekCaptions = map[bsm.Greek]string{
	bsm.Price:      "Option Price",
	bsm.DeltaGreek: "Δ (Delta): Sensitivity of the Option Price to Underlying Asset Movements",
	bsm.GammaGreek: "Γ (Gamma): Sensitivity of Delta to Underlying Asset Movements",
	bsm.VegaGreek:  "ν (Vega): Sensitivity of the Option Price to Volatility (per 1%)",
	bsm.ThetaGreek: "Θ (Theta): Sensitivity of the Option Price to the Passage of Time (per year)",
	bsm.RhoGreek:   "ρ (Rho): Sensitivity of the Option Price to the Risk-Free Rate",
}

// HomeHandler serves the main web interface. Query parameters override the
// configured point and sweep; in strict mode an out-of-domain point is
// rejected.
func (h *DashboardHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := h.queryParams(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	x, y, err := h.queryAxes(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.strict(queryBool(q, "strict")) {
		if err := params.Validate(); err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
	}

	result := params.Evaluate()
	data := homeData{
		Fields: []homeField{
			{"spot", "Asset Spot Price", formatNumber(params.Spot)},
			{"strike", "Asset Strike Price", formatNumber(params.Strike)},
			{"maturity", "Time to Maturity (years)", formatNumber(params.Maturity)},
			{"volatility", "Volatility", formatNumber(params.Volatility)},
			{"rate", "Risk-Free Interest Rate", formatNumber(params.Rate)},
		},
		X:      axisString(x),
		Y:      axisString(y),
		Cards:  render.PriceCards(result),
		Greeks: render.GreekTable(result),
	}

	imgQuery := url.Values{}
	for _, f := range data.Fields {
		imgQuery.Set(f.Name, f.Value)
	}
	imgQuery.Set("x", data.X)
	imgQuery.Set("y", data.Y)
	if v := q.Get("strict"); v != "" {
		imgQuery.Set("strict", v)
	}
	for _, g := range h.config.SurfaceGreeks() {
		data.Heatmaps = append(data.Heatmaps, homeHeatmap{
			Title: greekCaptions[g],
			URL:   "/api/heatmap/" + string(g) + ".png?" + imgQuery.Encode(),
		})
	}

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, data); err != nil {
		logger.Error.Printf("Template execution failed: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
