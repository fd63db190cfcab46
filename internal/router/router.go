package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/jjiisub/bboard/internal/middleware"
	"github.com/jjiisub/bboard/internal/middleware/metrics"
	"github.com/jjiisub/bboard/internal/setup"
)

// New creates and configures the chi router with all routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogging)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/login", h.Login)
			r.With(authMw.NeedAuth()).Post("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Get("/boards", h.GetBoards)
			r.Post("/boards", h.CreateBoard)
			r.Get("/boards/{board}", h.GetBoard)
			r.Put("/boards/{board}", h.UpdateBoard)
			r.Delete("/boards/{board}", h.DeleteBoard)

			r.Get("/boards/{board}/posts", h.GetPosts)
			r.Post("/boards/{board}/posts", h.CreatePost)

			r.Get("/posts/{post}", h.GetPost)
			r.Put("/posts/{post}", h.UpdatePost)
			r.Delete("/posts/{post}", h.DeletePost)
		})
	})

	return r
}
