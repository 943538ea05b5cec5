package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"mockupgen/internal/http/handlers"
	"mockupgen/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(logger), middleware.CORS(nil))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/mockups", func(r chi.Router) {
		if app.Config != nil && app.Config.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))
		}
		r.Post("/generate", app.GenerateMockups)
	})

	r.Get("/v1/progress/{session_id}", app.Progress)

	if app.Config != nil && app.Config.StaticDir != "" {
		r.NotFound(handlers.SPAHandler(app.Config.StaticDir))
	}

	return r
}
