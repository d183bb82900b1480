package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	bsm "github.com/jwaldner/greekmap/bsm_lib"
	"github.com/jwaldner/greekmap/internal/logger"
	"github.com/jwaldner/greekmap/internal/models"
	"github.com/jwaldner/greekmap/internal/render"
	"github.com/jwaldner/greekmap/internal/surface"
)

// PriceHandler prices one point and returns every measure
func (h *DashboardHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	req := models.PriceRequest{Params: h.config.Params()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if h.strict(req.Strict) {
		if err := req.Params.Validate(); err != nil {
			writeError(w, statusFor(err), err)
			return
		}
	}

	result := req.Params.Evaluate()
	logger.Debug.Printf("Priced %v: call=%.6f put=%.6f", req.Params, result.CallPrice, result.PutPrice)
	writeJSON(w, http.StatusOK, models.NewPriceResponse(result))
}

// BatchPriceHandler prices many independent points in one call
func (h *DashboardHandler) BatchPriceHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BatchPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if h.strict(req.Strict) {
		for i, p := range req.Calculations {
			if err := p.Validate(); err != nil {
				writeError(w, statusFor(err), fmt.Errorf("calculation %d: %w", i, err))
				return
			}
		}
	}

	start := time.Now()
	results, err := bsm.EvaluateBatch(r.Context(), req.Calculations, 0)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("batch aborted: %w", err))
		return
	}
	elapsed := time.Since(start)

	resp := models.BatchPriceResponse{
		Success:           true,
		Results:           make([]models.PointValues, len(results)),
		ProcessedIn:       float64(elapsed.Nanoseconds()) / 1e6,
		TotalCalculations: len(results),
	}
	for i, res := range results {
		resp.Results[i] = models.PointValues{Params: res.Params, Values: models.Values(res)}
	}
	logger.Info.Printf("Batch priced %d points in %v", len(results), elapsed)
	writeJSON(w, http.StatusOK, resp)
}

// SurfaceHandler evaluates one greek over a two-parameter sweep
func (h *DashboardHandler) SurfaceHandler(w http.ResponseWriter, r *http.Request) {
	x, y, err := h.config.Axes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	req := models.SurfaceRequest{Params: h.config.Params(), X: x, Y: y, Greek: string(bsm.DeltaGreek)}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	greek, err := bsm.ParseGreek(req.Greek)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := h.checkAxes(req.X, req.Y); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	start := time.Now()
	s, err := surface.Build(r.Context(), req.Params, req.X, req.Y, greek, h.strict(req.Strict))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	logger.Info.Printf("Surface %s over %s x %s (%dx%d) in %v",
		greek, req.X.Param, req.Y.Param, len(s.YValues), len(s.XValues), time.Since(start))

	writeJSON(w, http.StatusOK, models.NewSurfaceResponse(s))
}

// HeatmapHandler renders the call/put heatmap pair for a greek as PNG
func (h *DashboardHandler) HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	greek, err := bsm.ParseGreek(mux.Vars(r)["greek"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	q := r.URL.Query()
	params, err := h.queryParams(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	x, y, err := h.queryAxes(q)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s, err := surface.Build(r.Context(), params, x, y, greek, h.strict(queryBool(q, "strict")))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	// Render into a buffer so a failed render can still report JSON.
	var buf bytes.Buffer
	if err := render.HeatmapPNG(&buf, s, render.DefaultHeatmapOptions); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn.Printf("Heatmap write for %s aborted: %v", greek, err)
	}
}
