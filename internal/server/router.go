package server

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"dsfs/internal/handlers"
	applog "dsfs/internal/log"
	"dsfs/internal/metrics"
	"dsfs/internal/middleware"
)

type routerDeps struct {
	handlers    *handlers.Handlers
	sessions    *scs.SessionManager
	appearance  middleware.AppearanceSetter
	fundLimiter *middleware.RateLimiter
	metrics     prometheus.Gatherer
}

func newRouter(deps routerDeps) http.Handler {
	h := deps.handlers
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(deps.sessions.LoadAndSave)
	r.Use(middleware.ClientID(deps.sessions))
	r.Use(middleware.HostAppearance(deps.appearance))

	applog.Debug(context.Background(), "registering http routes")

	r.Get("/healthz", h.Health)
	if deps.metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.metrics))
		applog.Debug(context.Background(), "route registered", "path", "/metrics")
	}
	r.Get("/theme.css", h.StyleSheet)

	r.Route("/api", func(r chi.Router) {
		r.Route("/theme", func(r chi.Router) {
			r.Get("/", h.GetTheme)
			r.Put("/", h.SetTheme)
			r.Post("/toggle", h.ToggleTheme)
			r.Put("/host", h.SetHostAppearance)
		})
		applog.Debug(context.Background(), "route registered", "path", "/api/theme")

		r.Route("/session", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Patch("/profile", h.UpdateProfile)
			r.Post("/student", h.RegisterAsStudent)
		})
		applog.Debug(context.Background(), "route registered", "path", "/api/session")

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.GetPosts)
			r.Post("/refresh", h.RefreshPosts)
			r.Post("/{id}/like", h.LikePost)
			r.With(deps.fundLimiter.Middleware()).Post("/{id}/fund", h.FundPost)
		})
		applog.Debug(context.Background(), "route registered", "path", "/api/posts")

		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.GetStudents)
			r.Post("/refresh", h.RefreshStudents)
			r.Post("/register", h.RegisterStudent)
			r.With(deps.fundLimiter.Middleware()).Post("/{id}/fund", h.FundStudent)
		})
		applog.Debug(context.Background(), "route registered", "path", "/api/students")

		r.Get("/projects/featured", h.FeaturedProjects)
		r.Get("/notifications", h.Notifications)
	})

	return r
}
