// Package web exposes the asset registry as a JSON HTTP API.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/metrics"
	"github.com/vbonduro/assetreg/internal/service"
)

type tokenVerifier interface {
	Verify(token string) (domain.Actor, error)
}

// Services bundles the application services the API delegates to.
type Services struct {
	Assets   *service.AssetService
	Catalog  *service.CatalogService
	Users    *service.UserService
	Activity *service.ActivityService
	Exports  *service.ExportService
}

type Server struct {
	assets   *service.AssetService
	catalog  *service.CatalogService
	users    *service.UserService
	activity *service.ActivityService
	exports  *service.ExportService
	tokens   tokenVerifier
	metrics  *metrics.Registry
	gatherer prometheus.Gatherer
	router   chi.Router
	logger   *slog.Logger
	now      func() time.Time
}

// NewServer wires the routes. gatherer backs GET /metrics; when nil the
// endpoint is not registered.
func NewServer(svc Services, tokens tokenVerifier, m *metrics.Registry, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	s := &Server{
		assets:   svc.Assets,
		catalog:  svc.Catalog,
		users:    svc.Users,
		activity: svc.Activity,
		exports:  svc.Exports,
		tokens:   tokens,
		metrics:  m,
		gatherer: gatherer,
		router:   chi.NewRouter(),
		logger:   logger,
		now:      time.Now,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(
		chimw.RequestID,
		s.recoverer,
		s.requestLogger,
		securityHeaders,
	)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/login", s.handleLogin)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.handleListAssets)
			r.Post("/", s.handleCreateAsset)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetAsset)
				r.Put("/", s.handleUpdateAsset)
				r.With(requireAdmin).Delete("/", s.handleDeleteAsset)
				r.Get("/qr.png", s.handleAssetQR)
				r.Get("/label.pdf", s.handleAssetLabel)
			})
		})
		r.Get("/scan", s.handleScan)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/categories", s.handleListCatalog(domain.CatalogCategories))
		r.With(requireAdmin).Post("/categories", s.handleAddCatalog(domain.CatalogCategories))
		r.Get("/locations", s.handleListCatalog(domain.CatalogLocations))
		r.With(requireAdmin).Post("/locations", s.handleAddCatalog(domain.CatalogLocations))

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/users", s.handleListUsers)
			r.Post("/users", s.handleCreateUser)
			r.Post("/users/{id}/account", s.handleUpgradeUser)
			r.Get("/logs", s.handleListLogs)
		})

		r.Post("/exports/assets.xlsx", s.handleExportAssets)
		r.Get("/exports/{key}", s.handleGetExport)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer returns an *http.Server serving the API on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
