package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psantana5/fieldbench/internal/render"
	"github.com/psantana5/fieldbench/internal/report"
	"github.com/psantana5/fieldbench/pkg/logging"
)

// Options configure the live view
type Options struct {
	Metrics  *report.Metrics
	Failures *report.FailureLog
	Logger   *logging.Logger
	Host     any    // included in /api/matrix
	Caption  string // shown on the HTML page
	Refresh  int    // HTML auto refresh in seconds
}

// Handler serves the live view of one session
type Handler struct {
	session  *Session
	opts     Options
	logger   *logging.Logger
	registry *prometheus.Registry
	router   *mux.Router
}

// NewHandler builds the router for a session
func NewHandler(session *Session, opts Options) (*Handler, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Failures == nil {
		opts.Failures = report.NewFailureLog(1)
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(report.NewMatrixCollector(session.Matrix)); err != nil {
		return nil, fmt.Errorf("failed to register matrix collector: %w", err)
	}
	if opts.Metrics != nil {
		if err := registry.Register(opts.Metrics); err != nil {
			return nil, fmt.Errorf("failed to register harness metrics: %w", err)
		}
	}

	h := &Handler{
		session:  session,
		opts:     opts,
		logger:   opts.Logger.WithComponent("server"),
		registry: registry,
		router:   mux.NewRouter(),
	}
	h.routes()
	return h, nil
}

func (h *Handler) routes() {
	h.router.HandleFunc("/", h.handlePage).Methods(http.MethodGet)
	h.router.HandleFunc("/api/matrix", h.handleMatrix).Methods(http.MethodGet)
	h.router.HandleFunc("/api/status", h.handleStatus).Methods(http.MethodGet)
	h.router.HandleFunc("/api/failures", h.handleFailures).Methods(http.MethodGet)
	h.router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	h.router.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	status := h.session.Status()
	refresh := h.opts.Refresh
	if status.State == StateDone || status.State == StateFailed {
		refresh = 0
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := render.HTML(w, h.session.Matrix(), render.Page{
		Session: status.Session,
		Status:  fmt.Sprintf("%s, %d/%d runs", status.State, status.Completed, status.Repetitions),
		Caption: h.opts.Caption,
		Error:   status.Error,
		Refresh: refresh,
	})
	if err != nil {
		h.logger.Error("Failed to render page", logging.Fields{"error": err.Error()})
	}
}

func (h *Handler) handleMatrix(w http.ResponseWriter, r *http.Request) {
	doc := report.NewDocument(h.session.ID, h.session.Iterations, h.opts.Host, h.session.Matrix())
	h.writeJSON(w, doc)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Status())
}

func (h *Handler) handleFailures(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.opts.Failures.Recent(0))
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logging.Fields{"error": err.Error()})
	}
}
