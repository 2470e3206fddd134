package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/nickhafer/448b-final-project/internal/adapter/echarts"
	"github.com/nickhafer/448b-final-project/internal/adapter/geojson"
	"github.com/nickhafer/448b-final-project/internal/aggregate"
	"github.com/nickhafer/448b-final-project/internal/dashboard"
	"github.com/nickhafer/448b-final-project/internal/filter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 16

// Dashboard is the state the API reads and mutates.
// It is implemented by *dashboard.Dashboard.
type Dashboard interface {
	sharedobs.ReadinessChecker
	Filter() filter.State
	SetFilter(ctx context.Context, field filter.Field, value string) (dashboard.Snapshot, error)
	ResetFilters(ctx context.Context) dashboard.Snapshot
	Options() aggregate.Options
	Latest() dashboard.Snapshot
}

// Server exposes the dashboard API and page plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	assetsHost string
	logger     *slog.Logger
}

// NewServer creates an HTTP server with every dashboard route registered.
func NewServer(addr string, dash Dashboard, assetsHost string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:       dash,
		assetsHost: assetsHost,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/filter", s.handleGetFilter)
	mux.HandleFunc("PUT /api/filter/{field}", s.handleSetFilter)
	mux.HandleFunc("DELETE /api/filter", s.handleResetFilter)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/aggregates/{group}", s.handleAggregate)
	mux.HandleFunc("GET /api/durations", s.handleDurations)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /{$}", s.handlePage)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type setFilterRequest struct {
	Value string `json:"value"`
}

// aggregateResponse is one chart's data. Data holds []aggregate.YearCount,
// []aggregate.DayHourCount or []aggregate.ShapeCount.
type aggregateResponse struct {
	Group  string       `json:"group"`
	Filter filter.State `json:"filter"`
	Total  int          `json:"total"`
	Data   any          `json:"data"`
}

func (s *Server) handleGetFilter(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Filter())
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	field, err := filter.ParseField(r.PathValue("field"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req setFilterRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	snap, err := s.dash.SetFilter(r.Context(), field, req.Value)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, filter.ErrInvalidValue) || errors.Is(err, filter.ErrUnknownField) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	s.logger.Info("filter changed", "field", field, "value", req.Value)
	writeJSON(w, http.StatusOK, snap.Summary())
}

func (s *Server) handleResetFilter(w http.ResponseWriter, r *http.Request) {
	snap := s.dash.ResetFilters(r.Context())
	s.logger.Info("filters reset")
	writeJSON(w, http.StatusOK, snap.Summary())
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Options())
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	group, err := aggregate.ParseGroupBy(r.PathValue("group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap := s.dash.Latest()
	resp := aggregateResponse{Group: group.String(), Filter: snap.Filter, Total: snap.Total}
	switch group {
	case aggregate.YearGroup:
		resp.Data = aggregate.SortedYears(snap.Years)
	case aggregate.DayHourGroup:
		resp.Data = aggregate.DenseDayHour(snap.DayHours)
	case aggregate.ShapeGroup:
		resp.Data = snap.Shapes
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDurations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Latest().Durations)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	layer := geojson.FeatureCollection(s.dash.Latest().Partition)
	body, err := json.Marshal(layer)
	if err != nil {
		s.logger.Error("marshal map layer", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := echarts.RenderPage(&buf, s.dash.Latest(), s.assetsHost); err != nil {
		s.logger.Error("render dashboard page", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
