// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/gavel/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Run processes one batch synchronously and returns the partitioned
	// result.
	Run(ctx context.Context, inputs []model.RawInput, sys model.SystemContext) (model.BatchResult, error)

	// DequeueNext drains the oldest approved item from the execution
	// queue. Returns false when the queue is empty.
	DequeueNext(ctx context.Context) (model.ApprovedItem, bool)
}

// ModuleRegistry stores health metrics for registered modules.
type ModuleRegistry interface {
	Put(ctx context.Context, moduleID string, m model.ModuleMetrics) error
	Remove(ctx context.Context, moduleID string) error
	Count(ctx context.Context) int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	batchHandler   *BatchHandler
	queueHandler   *QueueHandler
	modulesHandler *ModulesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, registry ModuleRegistry, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		batchHandler:   NewBatchHandler(deps),
		queueHandler:   NewQueueHandler(deps),
		modulesHandler: NewModulesHandler(registry),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/batch", MetricsMiddleware(s.batchHandler.HandlePostBatch, "batch"))
	mux.HandleFunc("/queue/next", MetricsMiddleware(s.queueHandler.HandleDequeueNext, "queue_next"))
	mux.HandleFunc("/modules/", MetricsMiddleware(s.modulesHandler.HandleModule, "modules"))
}

// batchRequest mirrors the JSON schema for POST /batch.
type batchRequest struct {
	Inputs []model.RawInput    `json:"inputs"`
	System model.SystemContext `json:"system"`
}

func (b batchRequest) validate() error {
	if len(b.Inputs) == 0 {
		return errors.New("missing inputs")
	}
	for i, in := range b.Inputs {
		switch {
		case strings.TrimSpace(in.ID) == "":
			return errors.New("missing input id at index " + strconv.Itoa(i))
		case strings.TrimSpace(in.SubmitterID) == "":
			return errors.New("missing submitter_id at index " + strconv.Itoa(i))
		case strings.TrimSpace(string(in.Category)) == "":
			return errors.New("missing category at index " + strconv.Itoa(i))
		}
	}
	if b.System.TotalModules < 0 || b.System.ScarceTierModules < 0 {
		return errors.New("negative module counts in system context")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
