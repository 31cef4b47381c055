package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"cardgen/internal/http/handlers"
	"cardgen/internal/infra"
	"cardgen/internal/middleware"
)

// NewRouter mounts the card API, its docs and the stored image files.
func NewRouter(cfg *infra.Config, app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		middleware.CORS(cfg.CORSAllowedOrigins),
		chimw.GetHead,
	)

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", app.ListThemes)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)

		r.Group(func(r chi.Router) {
			if cfg.RateLimitPerMin > 0 {
				r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
			}
			r.Post("/generate-prompt", app.GeneratePrompt)
			r.Post("/generate-image", app.GenerateImage)
		})
	})

	r.Get(cfg.ImageMountPath()+"/{filename}", app.ServeImage)

	return r
}
