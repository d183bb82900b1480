package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/config"
	"github.com/jwaldner/greekmap/internal/logger"
	"github.com/jwaldner/greekmap/internal/models"
	"github.com/jwaldner/greekmap/internal/render"
	"github.com/jwaldner/greekmap/internal/surface"
)

// DashboardHandler serves the pricing dashboard. It holds configuration
// only; every request is priced from scratch.
type DashboardHandler struct {
	config *config.Config
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{config: cfg}
}

// NewRouter wires every dashboard endpoint.
func NewRouter(h *DashboardHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.HomeHandler).Methods("GET")
	r.HandleFunc("/api/health", h.HealthHandler).Methods("GET")
	r.HandleFunc("/api/price", h.PriceHandler).Methods("POST")
	r.HandleFunc("/api/price/batch", h.BatchPriceHandler).Methods("POST")
	r.HandleFunc("/api/surface", h.SurfaceHandler).Methods("POST")
	r.HandleFunc("/api/heatmap/{greek}.png", h.HeatmapHandler).Methods("GET")

	return r
}

// HealthHandler reports liveness
func (h *DashboardHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"log_level": logger.Level(),
	})
}

// statusFor maps engine and request errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bsm.ErrInvalidParameter),
		errors.Is(err, bsm.ErrShapeMismatch),
		errors.Is(err, bsm.ErrEmptyGrid),
		errors.Is(err, bsm.ErrUnknownMeasure),
		errors.Is(err, surface.ErrInvalidAxis),
		errors.Is(err, surface.ErrDuplicateAxis),
		errors.Is(err, render.ErrEmptySurface):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error.Printf("Request failed: %v", err)
	} else {
		logger.Warn.Printf("Request rejected (%d): %v", status, err)
	}
	writeJSON(w, status, models.ErrorResponse{Success: false, Error: err.Error()})
}

// strict resolves the per-request override against the configured default.
func (h *DashboardHandler) strict(override *bool) bool {
	if override != nil {
		return *override
	}
	return h.config.Engine.StrictValidation
}

// queryParams overlays the query string on the configured defaults.
func (h *DashboardHandler) queryParams(q url.Values) (bsm.Params, error) {
	p := h.config.Params()
	fields := []struct {
		keys []string
		dst  *float64
	}{
		{[]string{"spot", "spot_price"}, &p.Spot},
		{[]string{"strike", "strike_price"}, &p.Strike},
		{[]string{"rate", "rf_rate"}, &p.Rate},
		{[]string{"maturity", "maturity_time"}, &p.Maturity},
		{[]string{"volatility", "vol"}, &p.Volatility},
	}
	for _, f := range fields {
		for _, key := range f.keys {
			raw := q.Get(key)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return p, fmt.Errorf("invalid query parameter %s=%q: %w", key, raw, err)
			}
			*f.dst = v
		}
	}
	return p, nil
}

// queryAxes reads x and y as "param:min:max[:points]", falling back to the
// configured sweep.
func (h *DashboardHandler) queryAxes(q url.Values) (x, y surface.Axis, err error) {
	x, y, err = h.config.Axes()
	if err != nil {
		return x, y, err
	}
	if raw := q.Get("x"); raw != "" {
		if x, err = surface.ParseAxis(raw, h.config.Surface.Points); err != nil {
			return x, y, err
		}
	}
	if raw := q.Get("y"); raw != "" {
		if y, err = surface.ParseAxis(raw, h.config.Surface.Points); err != nil {
			return x, y, err
		}
	}
	return x, y, h.checkAxes(x, y)
}

// checkAxes applies the configured surface.max_points limit.
func (h *DashboardHandler) checkAxes(x, y surface.Axis) error {
	if err := x.ValidateLimit(h.config.Surface.MaxPoints); err != nil {
		return err
	}
	return y.ValidateLimit(h.config.Surface.MaxPoints)
}

func queryBool(q url.Values, key string) *bool {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
