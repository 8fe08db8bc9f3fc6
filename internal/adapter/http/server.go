package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/chartpng"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/dashboard"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes caps the selection payload of POST /api/figures.
const maxBodyBytes = 1 << 20

// Dashboard is the figure source behind the HTTP routes.
type Dashboard interface {
	Options() []string
	Update(sel domain.Selection) dashboard.Figures
	YearCounts(sel domain.Selection) []domain.YearCount
	Summary() dashboard.Summary
	CheckReadiness(ctx context.Context) error
}

// Server serves the dashboard page, its figure API, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the dashboard page at / and the
// /api, /charts, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, dash Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /api/figures", s.handleFiguresPost)
	mux.HandleFunc("GET /api/figures", s.handleFiguresGet)
	mux.HandleFunc("GET /api/options", s.handleOptions)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /charts/histogram.png", s.handleHistogramPNG)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(dash))
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

// figuresRequest is the body of POST /api/figures: the raw multi-select values.
type figuresRequest struct {
	Types []string `json:"types"`
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	data := pageData{
		Options:  s.dash.Options(),
		Selected: domain.SelectAllLabel,
		Figures:  s.dash.Update(domain.SelectAll()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

func (s *Server) handleFiguresPost(w http.ResponseWriter, r *http.Request) {
	var req figuresRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, s.dash.Update(domain.ParseSelection(req.Types)))
}

// handleFiguresGet reads the selection from repeated ?type= parameters. No
// parameters means an empty selection, as with POST.
func (s *Server) handleFiguresGet(w http.ResponseWriter, r *http.Request) {
	types := r.URL.Query()["type"]
	sharedobs.WriteJSON(w, http.StatusOK, s.dash.Update(domain.ParseSelection(types)))
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"options": s.dash.Options(),
		"default": []string{domain.SelectAllLabel},
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.dash.Summary())
}

// handleHistogramPNG renders the histogram for ?type= parameters, defaulting
// to every category when none are given.
func (s *Server) handleHistogramPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := domain.SelectAll()
	if types, ok := q["type"]; ok {
		sel = domain.ParseSelection(types)
	}
	width, err := optionalInt(q.Get("width"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid width"})
		return
	}
	height, err := optionalInt(q.Get("height"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid height"})
		return
	}

	var buf bytes.Buffer
	if err := chartpng.RenderHistogram(&buf, s.dash.YearCounts(sel), width, height); err != nil {
		s.logger.Error("render histogram png", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, chartpng.ErrNoBuckets) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

// optionalInt parses s as a non-negative int bounded to 4096; empty is 0.
func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 4096 {
		return 0, errors.New("out of range")
	}
	return n, nil
}
