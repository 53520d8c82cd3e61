package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"lfg-site/internal/handlers"
	"lfg-site/internal/metrics"
	"lfg-site/internal/middleware"
	"lfg-site/internal/site"
	"lfg-site/web"
)

// New mounts every route under the site's base path. apiLimiter guards
// /api/v1 and may come from either the in-process or the Redis limiter.
func New(
	s *site.Site,
	sessions *middleware.SessionAuth,
	apiLimiter func(http.Handler) http.Handler,
	chatHandler *handlers.ChatHandler,
	contactHandler *handlers.ContactHandler,
	pagesHandler *handlers.PagesHandler,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)
	r.Use(middleware.CORS(allowedOrigin))

	routes := func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Handle("/metrics", metrics.Handler())
		r.Handle("/static/*", http.StripPrefix(s.BasePath+"/static/", http.FileServer(http.FS(web.Static()))))
		r.Get("/starfield.png", handlers.StarfieldImage)

		// No-script contact form
		r.Post("/contact/", contactHandler.SubmitForm)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(apiLimiter)

			r.Post("/contact", contactHandler.Submit)

			r.Route("/chat/sessions", func(r chi.Router) {
				r.Post("/", chatHandler.Start)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(sessions.Middleware)
					r.Get("/", chatHandler.Get)
					r.Delete("/", chatHandler.Delete)
					r.Post("/messages", chatHandler.Send)
					r.Get("/ws", chatHandler.Stream)
				})
			})
		})

		// Pages
		r.Get("/*", pagesHandler.Page)
		r.NotFound(pagesHandler.NotFound)
	}

	if s.BasePath == "" {
		routes(r)
	} else {
		r.Route(s.BasePath, routes)
		r.NotFound(pagesHandler.NotFound)
	}

	return r
}
