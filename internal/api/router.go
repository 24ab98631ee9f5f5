package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/geocode"
	"github.com/forkcast-app/forkcast/internal/profile"
	"github.com/forkcast-app/forkcast/internal/recommend"
	"github.com/forkcast-app/forkcast/internal/social"
	"github.com/forkcast-app/forkcast/internal/store"
	"github.com/forkcast-app/forkcast/internal/trending"
)

// RouterDeps bundles the collaborators the HTTP layer needs. Events,
// Geocoder and Trending may be nil; the handlers degrade gracefully.
type RouterDeps struct {
	Store        store.Store
	Resolver     *profile.Resolver
	Scorer       *recommend.Scorer
	Signals      *social.Source
	Geocoder     geocode.Client
	Events       events.Client
	Trending     *trending.Tracker
	CatalogLimit int
	AdminToken   string
	Logger       *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(RateLimitMiddleware(120))

	profiles := NewProfilesHandler(deps.Store, deps.Resolver, deps.Events)
	restaurants := NewRestaurantsHandler(deps.Store, deps.Resolver, deps.Events)
	recos := NewRecommendationsHandler(deps)
	admin := NewAdminHandler(deps.Store, deps.Trending)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(UserIDMiddleware)

		r.Get("/profiles/{user_id}", profiles.Get)
		r.Put("/profiles/{user_id}", profiles.Put)

		r.Get("/restaurants", restaurants.List)
		r.Post("/restaurants", restaurants.Create)
		r.Get("/restaurants/{id}", restaurants.Get)
		r.Post("/restaurants/{id}/ratings", restaurants.Rate)
		r.Post("/restaurants/{id}/recommend", restaurants.Recommend)

		r.Get("/recommendations", recos.Personal)
		r.Post("/recommendations/group", recos.Group)
		r.Get("/recommendations/friend-picks", recos.FriendPicks)

		r.Post("/friends", profiles.AddFriend)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(deps.AdminToken))
			r.Get("/stats", admin.Stats)
			r.Get("/trending", admin.Trending)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
