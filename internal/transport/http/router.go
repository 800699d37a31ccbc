package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/uniconnect/ama-service/pkg/httputil"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(h *Handler, ws http.HandlerFunc, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(httputil.WithRequestLoggerCtx)
	r.Use(httputil.RequestLogger)
	r.Use(httputil.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", httputil.HeaderRequestID},
		ExposedHeaders: []string{httputil.HeaderRequestID},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.ErrorMsg(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.ErrorMsg(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// WS живёт дольше любого таймаута запроса
	if ws != nil {
		r.Get("/ws", ws)
	}

	r.Group(func(api chi.Router) {
		api.Use(middlewareChi.Timeout(cfg.RequestTimeout))

		api.Route("/api/ama", func(rt chi.Router) {
			rt.Get("/live", h.LiveSession)
			rt.Get("/upcoming", h.UpcomingSessions)
			rt.Get("/hosts", h.Hosts)
			rt.Get("/sessions/{sessionId}", h.GetSession)
			rt.Post("/register/{sessionId}", h.Register)
			rt.Get("/highlights/{sessionId}", h.Highlights)
		})

		api.Route("/api/chat", func(rt chi.Router) {
			rt.Get("/messages/{sessionId}", h.ChatHistory)
			rt.Get("/session/{sessionId}", h.ChatSession)
			rt.Get("/participants/{sessionId}", h.Participants)
			rt.Post("/typing", h.Typing)
		})

		api.Post("/api/gemini/generate-email", h.GenerateEmail)

		// короткие пути без /api
		api.Get("/sessions/live", h.LiveSession)
		api.Get("/sessions/upcoming", h.UpcomingSessions)
		api.Post("/sessions/{sessionId}/register", h.Register)
		api.Get("/sessions/{sessionId}/highlights", h.Highlights)
		api.Get("/chat/{sessionId}/messages", h.ChatHistory)
		api.Get("/chat/{sessionId}/participants", h.Participants)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
