package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bluenoise/internal/config"
	"bluenoise/internal/noise"
)

// Server is the HTTP API server with WebSocket support. It combines the
// router with the WebSocket hub that pushes generation lifecycle events.
type Server struct {
	service     *PatternService
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer creates a new API server with production configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
//
// For testing HTTP endpoints without WebSocket support, use NewRouter() directly.
func NewServer(service *PatternService, limits config.RequestLimits, renderCfg config.RenderConfig) *Server {
	s := &Server{
		service: service,
		wsHub:   NewWebSocketHub(),
	}

	// Create rate limiter (we track it for cleanup on Stop)
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Service:     service,
		Limits:      limits,
		Render:      renderCfg,
		RateLimiter: s.rateLimiter,
	})

	// WebSocket route needs the hub instance, so it can't be part of the
	// generic NewRouter factory.
	s.router.Get("/ws", s.handleWS)

	// Generation lifecycle fans out to WebSocket clients.
	service.SetOnSubmit(func(req noise.Request) {
		s.wsHub.Broadcast("pattern:start", map[string]interface{}{
			"request": req,
		})
	})
	service.SetOnUpdate(func(req noise.Request, points []noise.Point) {
		s.wsHub.Broadcast("pattern:done", map[string]interface{}{
			"request":      req,
			"pointCount":   len(points),
			"isGenerating": service.Generating(),
		})
	})

	return s
}

// Start begins the HTTP server AND starts background workers.
// This is the only method that starts goroutines or opens listeners.
func (s *Server) Start(addr string) error {
	go s.wsHub.Run()

	log.Printf("🌐 API server starting on %s", addr)
	log.Printf("🔵 POST /api/generate, GET /api/pattern, ws://%s/ws", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
//
// Example:
//
//	server := api.NewServer(service, limits, renderCfg)
//	ts := httptest.NewServer(server.Router())
//	defer ts.Close()
//	resp, _ := http.Get(ts.URL + "/api/pattern")
func (s *Server) Router() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub (for status broadcasts from main).
func (s *Server) Hub() *WebSocketHub {
	return s.wsHub
}

// Stop performs graceful shutdown of background workers. The executor is
// stopped first so an in-flight generation can never complete into a
// torn-down server, then the hub and limiter loops.
func (s *Server) Stop() {
	s.service.Stop()
	s.wsHub.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
