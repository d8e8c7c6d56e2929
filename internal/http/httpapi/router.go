package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the HTTP surface. Everything under /api requires a valid
// bearer token; /register, /login, the health probe, and the realtime channel
// do not.
func NewRouter(app *handlers.App, cfg *infra.Config, country middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Locale(cfg.DefaultLocale, country))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

	r.Get("/v1/healthz", app.Health)
	r.Post("/register", app.Register)
	r.Post("/login", app.Login)
	r.Get("/ws", app.Realtime)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthJWT([]byte(cfg.JWTSecret)))

		r.Get("/me", app.Me)

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", app.ListFriends)
			r.Get("/search", app.SearchUsers)
			r.Post("/request", app.SendFriendRequest)
			r.Get("/requests", app.ListFriendRequests)
			r.Post("/respond", app.RespondFriendRequest)
		})

		r.Route("/vip", func(r chi.Router) {
			r.Get("/levels", app.ListVIPTiers)
			r.Post("/purchase", app.PurchaseVIP)
		})

		r.Route("/circles", func(r chi.Router) {
			r.Get("/", app.ListCircles)
			r.Post("/", app.CreateCircle)
			r.Route("/{circleID}", func(r chi.Router) {
				r.Post("/invite", app.InviteToCircle)
				r.Get("/posts", app.ListCirclePosts)
				r.Post("/posts", app.CreateCirclePost)
			})
		})
	})

	return r
}
