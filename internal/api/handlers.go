package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bluenoise/internal/export"
	"bluenoise/internal/noise"
	"bluenoise/internal/render"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full Server.

// handleGenerate accepts a generation request and submits it to the
// executor. The response is immediate; results arrive on /api/pattern
// and over the WebSocket hub. Rapid resubmission coalesces: only the
// newest pending request runs.
func (h *routerHandlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req noise.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Algorithm == "" {
		req.Algorithm = noise.AlgorithmMitchell
	}
	if !req.Algorithm.Valid() {
		writeError(w, "Unknown algorithm", http.StatusBadRequest)
		return
	}
	if msg := h.checkLimits(req); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	h.service.Submit(req)

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, map[string]interface{}{
		"accepted":     true,
		"isGenerating": h.service.Generating(),
	})
}

// handleGetPattern returns the latest completed pattern.
func (h *routerHandlers) handleGetPattern(w http.ResponseWriter, r *http.Request) {
	req, points, ok := h.service.Pattern()
	if !ok {
		writeJSON(w, map[string]interface{}{
			"points":       []noise.Point{},
			"pointCount":   0,
			"isGenerating": h.service.Generating(),
		})
		return
	}

	writeJSON(w, map[string]interface{}{
		"request":      req,
		"points":       points,
		"pointCount":   len(points),
		"isGenerating": h.service.Generating(),
	})
}

// handleGetParams maps canvas controls to generation geometry via the
// parameter calculator. Both density modes are exposed.
func (h *routerHandlers) handleGetParams(w http.ResponseWriter, r *http.Request) {
	mode := noise.DensityMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = noise.DensityPercent
	}
	if mode != noise.DensityPercent && mode != noise.DensitySpacing {
		writeError(w, "Unknown density mode", http.StatusBadRequest)
		return
	}

	params := noise.CalculateGrid(noise.CanvasParams{
		CanvasWidth:  queryInt(r, "canvasWidth", 0),
		CanvasHeight: queryInt(r, "canvasHeight", 0),
		PixelSize:    queryInt(r, "pixelSize", 1),
		Mode:         mode,
		Density:      queryFloat(r, "density", 0),
	})

	writeJSON(w, params)
}

// handleGetStats reports executor and limiter statistics.
func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	_, points, _ := h.service.Pattern()
	stats := map[string]interface{}{
		"executed":     h.service.Executed(),
		"isGenerating": h.service.Generating(),
		"pointCount":   len(points),
	}
	if h.rateLimiter != nil {
		stats["rateLimiter"] = h.rateLimiter.GetStats()
	}
	writeJSON(w, stats)
}

// handleGetAlgorithms lists the available generation algorithms.
func (h *routerHandlers) handleGetAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []noise.Algorithm{noise.AlgorithmMitchell, noise.AlgorithmBridson})
}

// renderRequest is the wire form of a synchronous generate-and-render call.
type renderRequest struct {
	noise.Request
	PixelSize  int    `json:"pixelSize"`
	Foreground string `json:"foregroundColor"`
	Background string `json:"backgroundColor"`
}

// handleRender generates a pattern and rasterizes it in one synchronous
// call, responding with a PNG. Unlike /api/generate this bypasses the
// executor: export is a one-shot read, not interactive state.
func (h *routerHandlers) handleRender(w http.ResponseWriter, r *http.Request) {
	req := renderRequest{
		PixelSize:  h.render.PixelSize,
		Foreground: h.render.Foreground,
		Background: h.render.Background,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Algorithm == "" {
		req.Algorithm = noise.AlgorithmMitchell
	}
	if !req.Algorithm.Valid() {
		writeError(w, "Unknown algorithm", http.StatusBadRequest)
		return
	}
	if msg := h.checkLimits(req.Request); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}
	if req.PixelSize < 1 {
		req.PixelSize = 1
	}
	if req.PixelSize > h.limits.MaxPixelSize {
		writeError(w, "Pixel size too large", http.StatusBadRequest)
		return
	}
	// The per-field caps compound: dimension and pixel size can each be
	// in range while their product asks for gigabytes of RGBA.
	outBytes := int64(req.Width) * int64(req.PixelSize) * int64(req.Height) * int64(req.PixelSize) * 4
	if outBytes > h.limits.MaxRenderBytes {
		writeError(w, "Rendered image too large", http.StatusBadRequest)
		return
	}

	points := noise.Generate(req.Request)

	start := time.Now()
	buf := render.NewBuffer(req.Width*req.PixelSize, req.Height*req.PixelSize)
	render.Rasterize(buf, points, render.Config{
		PixelSize:  req.PixelSize,
		Foreground: render.ParseHexColor(req.Foreground),
		Background: render.ParseHexColor(req.Background),
	})
	RecordRender(time.Since(start))

	w.Header().Set("Content-Type", "image/png")
	// Headers are already written; encode errors can only abort the body.
	_ = export.Encode(w, buf.RGBA(), ".png")
}

// checkLimits validates request geometry against the DoS caps.
// Degenerate (zero or negative) geometry is allowed: the generators
// return an empty set for it, which is a normal outcome.
func (h *routerHandlers) checkLimits(req noise.Request) string {
	if req.Width > h.limits.MaxDimension || req.Height > h.limits.MaxDimension {
		return "Grid dimension too large"
	}
	if req.NumPoints > h.limits.MaxPoints {
		return "Point count too large"
	}
	return ""
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
