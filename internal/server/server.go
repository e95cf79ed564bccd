package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"mangaart/internal/config"
	"mangaart/internal/domain"
	"mangaart/internal/metrics"
	"mangaart/internal/services"
)

// Routes
const (
	InquiriesPath = "/api/v1/inquiries"
	HealthPath    = "/health"
	MetricsPath   = "/metrics"
)

// maxBodyBytes bounds a submission body; the form has five short fields.
const maxBodyBytes = 64 << 10

// Submitter accepts one inquiry candidate
type Submitter interface {
	Submit(ctx context.Context, c domain.Candidate) (*domain.Inquiry, error)
}

// HealthChecker reports service health
type HealthChecker interface {
	Check(ctx context.Context) (*services.HealthResult, error)
}

// Server serves the inquiry API
type Server struct {
	cfg       *config.Config
	inquiries Submitter
	health    HealthChecker
	log       *zap.Logger
}

// New creates the API server
func New(cfg *config.Config, inquiries Submitter, health HealthChecker, log *zap.Logger) *Server {
	return &Server{cfg: cfg, inquiries: inquiries, health: health, log: log}
}

// Handler builds the full handler chain:
// security headers -> CORS -> metrics -> request ID -> logging -> routes.
func (s *Server) Handler() http.Handler {
	mux := goahttp.NewMuxer()
	mux.Handle(http.MethodPost, InquiriesPath, s.submitInquiry)
	mux.Handle(http.MethodGet, HealthPath, s.checkHealth)

	var api http.Handler = mux
	api = s.requestLogging(api)
	api = middleware.PopulateRequestContext()(api)
	api = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(api)

	r := chi.NewRouter()
	r.Use(s.securityHeaders)
	r.Use(cors.Handler(s.corsOptions()))
	r.Use(metrics.HTTPMiddleware(routeLabel))
	r.Handle(MetricsPath, promhttp.Handler())
	r.Mount("/", api)
	return r
}

// routeLabel buckets requests into the known routes for metrics
func routeLabel(r *http.Request) string {
	switch r.URL.Path {
	case InquiriesPath:
		return "inquiries"
	case HealthPath:
		return "health"
	case MetricsPath:
		return "metrics"
	default:
		return metrics.OtherRoute
	}
}

func (s *Server) corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: s.cfg.CORS.AllowedMethods,
		AllowedHeaders: s.cfg.CORS.AllowedHeaders,
		ExposedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         s.cfg.CORS.MaxAge,
	}
}
