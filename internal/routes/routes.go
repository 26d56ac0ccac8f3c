package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neo-social/neo_server/internal/app"
)

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httprate.LimitAll(200, time.Minute))
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(app.MiddlewareHandler.Security)
	r.Use(app.MiddlewareHandler.InstrumentRequests)

	r.Get("/health", app.HealthHandler.HandlerHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)
		r.Use(app.MiddlewareHandler.ResolveViewer)

		r.Get("/feed", app.FeedHandler.HandlerGetFeed)

		r.Route("/videos", func(r chi.Router) {
			r.Post("/", app.VideoHandler.HandlerCreateVideo)
			r.Get("/", app.VideoHandler.HandlerListVideos)
			r.Get("/{id}", app.VideoHandler.HandlerGetVideoByID)
			r.Post("/{id}/view", app.VideoHandler.HandlerRecordView)
			r.Post("/{id}/like", app.LikeHandler.HandlerToggleLike)
			r.Post("/{id}/remix", app.RemixHandler.HandlerCreateRemix)
			r.Get("/{id}/royalties", app.RoyaltyHandler.HandlerGetRoyaltyShares)
			r.Get("/{id}/analytics", app.AnalyticsEngagementHandler.HandlerGetVideoEngagementByID)
		})

		r.Route("/lineage", func(r chi.Router) {
			r.Post("/edges", app.RemixHandler.HandlerCreateEdge)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", app.UserHandler.HandlerCreateUser)
			r.Get("/{id}", app.UserHandler.HandlerGetUserByID)
			r.Post("/{id}/follow", app.FollowHandler.HandlerToggleFollow)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", app.DashboardHandler.HandlerGetDashboardMetrics)
		})
	})

	return r
}
