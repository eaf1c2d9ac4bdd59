package server

import (
	"net/http"

	"github.com/crestgauge/loadduration/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetCurve serves the per-day load table. Undefined measured loads serialize
// as null so renderers can depict missing data however they choose.
func (h *Handlers) GetCurve(w http.ResponseWriter, req *http.Request) {
	res := h.controller.getResult()
	if res == nil {
		http.Error(w, "no computation available", http.StatusServiceUnavailable)
		return
	}
	h.writeOrLog(w, req, map[string]any{
		"run_id":  res.RunID,
		"site_id": res.SiteID,
		"curve":   res.Curve,
	})
}

// GetRegimes serves the five-row regime summary table.
func (h *Handlers) GetRegimes(w http.ResponseWriter, req *http.Request) {
	res := h.controller.getResult()
	if res == nil {
		http.Error(w, "no computation available", http.StatusServiceUnavailable)
		return
	}
	h.writeOrLog(w, req, map[string]any{
		"run_id":  res.RunID,
		"site_id": res.SiteID,
		"regimes": res.Regimes,
	})
}

// GetDiagnostics serves the accumulated recoverable conditions for the latest run.
func (h *Handlers) GetDiagnostics(w http.ResponseWriter, req *http.Request) {
	res := h.controller.getResult()
	if res == nil {
		http.Error(w, "no computation available", http.StatusServiceUnavailable)
		return
	}
	h.writeOrLog(w, req, map[string]any{
		"run_id":      res.RunID,
		"diagnostics": res.Diagnostics,
	})
}

// GetHealth reports readiness: healthy once a computation has been published.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	res := h.controller.getResult()
	status := map[string]any{"status": "waiting"}
	if res != nil {
		status["status"] = "ok"
		status["run_id"] = res.RunID
		status["computed_at"] = res.ComputedAt
	}
	h.writeOrLog(w, req, status)
}

func (h *Handlers) writeOrLog(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, nil); err != nil {
		h.controller.logger.Errorf("error writing response: %v", err)
	}
}
