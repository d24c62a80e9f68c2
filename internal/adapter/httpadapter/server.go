// Package httpadapter serves the dashboard, its JSON and workbook views, and
// the health, readiness and metrics endpoints.
package httpadapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/plan"
	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
	"github.com/couchcryptid/quake-damage-dashboard/internal/render"
)

// Reporter builds a report per request and reports readiness.
// It is implemented by *pipeline.Pipeline.
type Reporter interface {
	CheckReadiness(ctx context.Context) error
	Run(ctx context.Context, filter domain.Filter) (domain.Report, error)
}

// PlanSource returns the current plan tab content.
type PlanSource interface {
	Read() plan.Plan
}

const exportFilename = "quake-damage-report.xlsx"

// Server exposes the dashboard plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	reporter   Reporter
	plans      PlanSource
	renderer   *render.Renderer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /api/report, /export.xlsx,
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, reporter Reporter, plans PlanSource, renderer *render.Renderer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		reporter: reporter,
		plans:    plans,
		renderer: renderer,
		logger:   logger,
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /export.xlsx", s.handleExport)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(reporter))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter := ParseFilter(r.URL.Query())
	report, err := s.reporter.Run(r.Context(), filter)
	if err != nil {
		s.writeErrorPage(w, err)
		return
	}

	p := s.plans.Read()
	page := render.Page{
		Report:      report,
		PlanHTML:    p.HTML,
		PlanHeight:  p.Height,
		PlanWarning: p.Warning,
		ExportURL:   ExportURL(filter),
	}

	var buf bytes.Buffer
	if err := s.renderer.Dashboard(&buf, page); err != nil {
		s.logger.Error("render dashboard failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reporter.Run(r.Context(), ParseFilter(r.URL.Query()))
	if err != nil {
		sharedobs.WriteJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reporter.Run(r.Context(), ParseFilter(r.URL.Query()))
	if err != nil {
		s.writeErrorPage(w, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf, report); err != nil {
		s.logger.Error("write workbook failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) writeErrorPage(w http.ResponseWriter, err error) {
	var buf bytes.Buffer
	if rerr := s.renderer.Error(&buf, err); rerr != nil {
		s.logger.Error("render error page failed", "error", rerr)
		http.Error(w, render.ErrorPrefix+err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusFor(err))
	_, _ = buf.WriteTo(w)
}

// statusFor maps pipeline errors to HTTP status codes: an unreachable sheet
// is an upstream failure, a sheet without the expected columns is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFetchFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ParseFilter reads the view state from query parameters. room is the room
// search; each type selects a damage type. Without any type, the filter keeps
// every type unless the form was submitted (filtered=1), which means the user
// cleared the selection. The form also echoes the search it was rendered for
// as prev_room; when room differs from it, the posted types belong to the old
// search's options and the selection starts over with every type.
func ParseFilter(q url.Values) domain.Filter {
	f := domain.Filter{RoomQuery: q.Get("room")}
	if q.Has("prev_room") && q.Get("prev_room") != f.RoomQuery {
		return f
	}
	if types, ok := q["type"]; ok {
		f.DamageTypes = types
	} else if q.Get("filtered") != "" {
		f.DamageTypes = []string{}
	}
	return f
}

// ExportURL returns the workbook link for filter.
func ExportURL(f domain.Filter) string {
	q := url.Values{}
	if f.RoomQuery != "" {
		q.Set("room", f.RoomQuery)
	}
	if !f.AllTypes() {
		q.Set("filtered", "1")
		for _, t := range f.DamageTypes {
			q.Add("type", t)
		}
	}
	if len(q) == 0 {
		return "/export.xlsx"
	}
	return "/export.xlsx?" + q.Encode()
}
