package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
	"github.com/couchcryptid/office-market-explorer/internal/explorer"
	"github.com/couchcryptid/office-market-explorer/internal/selection"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds POST request bodies.
const maxBodyBytes = 64 << 10

// Explorer is the query surface the API serves.
type Explorer interface {
	sharedobs.ReadinessChecker
	View(sel domain.Selection) (explorer.View, error)
	Select(ctx context.Context, sel domain.Selection, ev selection.Event) (explorer.SelectResult, error)
	Trend(ref explorer.SeriesRef, metric domain.Metric) (explorer.Series, error)
	Compare(base, other explorer.SeriesRef, metric domain.Metric) (explorer.Comparison, error)
}

// Server exposes the explorer API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	explorer   Explorer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api routes.
func NewServer(addr string, exp Explorer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		explorer: exp,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(exp))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("POST /api/select", s.handleSelect)
	mux.HandleFunc("GET /api/trend", s.handleTrend)
	mux.HandleFunc("GET /api/compare", s.handleCompare)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)

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

// selectRequest is the POST /api/select body.
type selectRequest struct {
	State domain.Selection `json:"state"`
	Event selection.Event  `json:"event"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, err := s.explorer.View(selectionFromQuery(r.URL.Query()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorBody("invalid request body: "+err.Error()))
		return
	}
	kind, err := selection.ParseEventKind(string(req.Event.Kind))
	if err != nil {
		s.writeError(w, err)
		return
	}
	req.Event.Kind = kind

	res, err := s.explorer.Select(r.Context(), req.State, req.Event)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric, err := domain.ParseMetric(q.Get("metric"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	series, err := s.explorer.Trend(seriesFromQuery(q, "country", "city", "submarket"), metric)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, series)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric, err := domain.ParseMetric(q.Get("metric"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	base := seriesFromQuery(q, "country", "city", "submarket")
	other := seriesFromQuery(q, "compareCountry", "compareCity", "compareSubmarket")
	if other.Country == "" {
		other.Country = base.Country
	}

	cmp, err := s.explorer.Compare(base, other, metric)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"metrics": domain.ChartMetrics()})
}

// writeError maps client input errors to 400 and everything else, which is
// always a missing or failed dataset load, to 503.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownMetric), errors.Is(err, selection.ErrUnknownEvent):
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		s.logger.Warn("request failed, dataset unavailable", "error", err)
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
	}
}

func selectionFromQuery(q url.Values) domain.Selection {
	return domain.Selection{
		Country:   q.Get("country"),
		City:      q.Get("city"),
		Period:    q.Get("period"),
		Submarket: q.Get("submarket"),
	}
}

func seriesFromQuery(q url.Values, country, city, submarket string) explorer.SeriesRef {
	return explorer.SeriesRef{
		Country:   q.Get(country),
		City:      q.Get(city),
		Submarket: q.Get(submarket),
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
