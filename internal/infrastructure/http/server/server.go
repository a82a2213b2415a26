// Package server provides the planner's JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/infrastructure/monitoring"
	"github.com/nutriplan/v1/pkg/healthcheck"
)

// Handlers groups the route handlers the server mounts
type Handlers struct {
	Menus    *handlers.MenuHandlers
	Plans    *handlers.PlanHandlers
	Recipes  *handlers.RecipeHandlers
	Profiles *handlers.ProfileHandlers
}

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers Handlers
	tokens   middleware.TokenValidator
	metrics  *monitoring.Metrics
	health   *healthcheck.HealthCheck
	limiter  *middleware.RateLimiter
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	h Handlers,
	tokens middleware.TokenValidator,
	metrics *monitoring.Metrics,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger.Named("http"),
		handlers: h,
		tokens:   tokens,
		metrics:  metrics,
		health:   health,
	}
	if cfg.RateLimit.Enable {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize)
	}

	s.router = s.setupRouter()

	var handler http.Handler = s.router
	if cfg.Monitoring.EnableTracing {
		handler = otelhttp.NewHandler(s.router, "nutriplan-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	var observer middleware.RequestObserver
	if s.metrics != nil {
		observer = s.metrics
	}
	r.Use(middleware.Logger(s.logger, observer))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.config.Server.WriteTimeout > 0 {
		r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	}

	healthPath := s.config.Monitoring.HealthCheckPath
	if healthPath == "" {
		healthPath = "/health"
	}
	r.Get(healthPath, s.health.Handler())
	r.Get(healthPath+"/live", s.health.LivenessHandler())
	r.Get(healthPath+"/ready", s.health.ReadinessHandler())

	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		metricsPath := s.config.Monitoring.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.Method(http.MethodGet, metricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", s.setupAPIV1Routes)

	return r
}

// setupAPIV1Routes configures API v1 endpoints. Everything except reading
// the recipe catalogue requires a bearer token.
func (s *Server) setupAPIV1Routes(r chi.Router) {
	r.Use(middleware.JSONOnly())

	r.Group(func(r chi.Router) {
		s.useRateLimit(r)
		r.Get("/recipes", s.handlers.Recipes.ListRecipes)
		r.Get("/recipes/{recipeID}", s.handlers.Recipes.GetRecipe)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens, s.logger))
		s.useRateLimit(r)

		r.Post("/recipes", s.handlers.Recipes.CreateRecipe)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.handlers.Profiles.GetProfile)
			r.Put("/", s.handlers.Profiles.SaveProfile)
			r.Post("/goals", s.handlers.Profiles.SetGoal)
			r.Get("/daily-target", s.handlers.Profiles.GetDailyTarget)
		})

		r.Route("/menus", func(r chi.Router) {
			r.Get("/", s.handlers.Menus.ListMenus)
			r.Post("/suggest", s.handlers.Menus.SuggestMenu)
			r.Put("/by-date/{date}", s.handlers.Menus.SetMenu)
			r.Post("/by-date/{date}/items", s.handlers.Menus.AddRecipe)
			r.Get("/{menuID}", s.handlers.Menus.GetMenu)
			r.Patch("/{menuID}", s.handlers.Menus.EditMenu)
			r.Post("/{menuID}/feedback", s.handlers.Menus.SubmitFeedback)
			r.Patch("/{menuID}/items/{itemID}", s.handlers.Menus.SetItemStatus)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handlers.Plans.ListPlans)
			r.Post("/", s.handlers.Plans.CreatePlan)
			r.Get("/{planID}", s.handlers.Plans.GetPlan)
			r.Patch("/{planID}", s.handlers.Plans.UpdatePlanStatus)
			r.Delete("/{planID}", s.handlers.Plans.DeletePlan)
		})
	})
}

func (s *Server) useRateLimit(r chi.Router) {
	if s.limiter != nil {
		r.Use(s.limiter.Middleware())
	}
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting planner API server", zap.String("address", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down planner API server")
	return s.server.Shutdown(ctx)
}
