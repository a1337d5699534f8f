package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bluenoise/internal/config"
)

// RouterConfig contains all dependencies needed to construct the HTTP
// router. This struct is designed for dependency injection and
// testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Service: svc,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Service owns the executor and the current pattern (required).
	Service *PatternService

	// Limits caps request geometry. Zero value falls back to defaults.
	Limits config.RequestLimits

	// Render provides rasterization defaults for /api/render.
	// Zero value falls back to defaults.
	Render config.RenderConfig

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses the default local-development origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler dependencies for the router.
type routerHandlers struct {
	service     *PatternService
	limits      config.RequestLimits
	render      config.RenderConfig
	rateLimiter *IPRateLimiter
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function starts no goroutines beyond the rate
// limiter's cleanup loop and opens no network listeners, which makes it
// safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - order matters
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	limits := cfg.Limits
	if limits == (config.RequestLimits{}) {
		limits = config.DefaultLimits()
	}
	renderCfg := cfg.Render
	if renderCfg == (config.RenderConfig{}) {
		renderCfg = config.DefaultRender()
	}

	h := &routerHandlers{
		service:     cfg.Service,
		limits:      limits,
		render:      renderCfg,
		rateLimiter: rateLimiter,
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Generation
		r.Post("/generate", h.handleGenerate)
		r.Get("/pattern", h.handleGetPattern)
		r.Get("/algorithms", h.handleGetAlgorithms)

		// Parameter mapping
		r.Get("/params", h.handleGetParams)

		// Rendering/export
		r.Post("/render", h.handleRender)

		// Monitoring
		r.Get("/stats", h.handleGetStats)
	})

	return r
}
