// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/gavel/internal/domain/model"
)

// moduleMetricsRequest mirrors the JSON schema for PUT /modules/{id}.
type moduleMetricsRequest struct {
	UserSatisfaction float64 `json:"user_satisfaction"`
	ReuseRate        float64 `json:"reuse_rate"`
	FailureRate      float64 `json:"failure_rate"`
	OutcomeImpact    float64 `json:"outcome_impact"`
}

// ModulesHandler maintains the module metrics registry over HTTP.
type ModulesHandler struct {
	registry ModuleRegistry
}

// NewModulesHandler creates a new modules handler.
func NewModulesHandler(registry ModuleRegistry) *ModulesHandler {
	return &ModulesHandler{registry: registry}
}

// HandleModule handles PUT and DELETE /modules/{id} requests.
func (h *ModulesHandler) HandleModule(w http.ResponseWriter, r *http.Request) {
	const op = "api.module"

	moduleID := strings.TrimPrefix(r.URL.Path, "/modules/")
	if moduleID == "" || strings.Contains(moduleID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req moduleMetricsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		m := model.ModuleMetrics{
			UserSatisfaction: req.UserSatisfaction,
			ReuseRate:        req.ReuseRate,
			FailureRate:      req.FailureRate,
			OutcomeImpact:    req.OutcomeImpact,
		}
		if err := h.registry.Put(r.Context(), moduleID, m); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "registered", "module_id": moduleID})
	case http.MethodDelete:
		if err := h.registry.Remove(r.Context(), moduleID); err != nil {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrModuleUnknown, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "module_id": moduleID})
	default:
		http.NotFound(w, r)
	}
}
