// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// QueueHandler drains the execution queue over HTTP.
type QueueHandler struct {
	deps Dependencies
}

// NewQueueHandler creates a new queue handler.
func NewQueueHandler(deps Dependencies) *QueueHandler {
	return &QueueHandler{deps: deps}
}

// HandleDequeueNext handles GET /queue/next requests. Returns 204 when
// the queue is empty.
func (h *QueueHandler) HandleDequeueNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	item, ok := h.deps.DequeueNext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
