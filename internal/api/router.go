package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/rumahkos/kos-bff/internal/api/handlers"
	"github.com/rumahkos/kos-bff/internal/config"
	"github.com/rumahkos/kos-bff/internal/logger"
	"github.com/rumahkos/kos-bff/internal/proxy"
	"github.com/rumahkos/kos-bff/internal/session"
	"github.com/rumahkos/kos-bff/internal/upstream"
	"github.com/rumahkos/kos-bff/middleware"
)

func NewRouter(cfg *config.Config, rdb *redis.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	store := &session.Store{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}
	r.Use(middleware.Session(store))

	kosClient := upstream.NewKosClient(cfg.KosAPIURL, cfg.MakerID)

	authH := handlers.NewAuthHandler(kosClient, store)
	kosH := handlers.NewKosHandler(kosClient, kosClient)
	facilityH := handlers.NewFacilityHandler(kosClient)
	imageH := handlers.NewImageHandler(kosClient)
	bookingH := handlers.NewBookingHandler(kosClient)
	reviewH := handlers.NewReviewHandler(kosClient)
	profileH := handlers.NewProfileHandler(kosClient, store)

	readiness := handlers.NewReadinessHandler(
		handlers.NewHTTPReadinessChecker("kos-api", cfg.KosAPIURL),
	)
	r.With(middleware.RequireAuth).Get("/api/nav", handlers.Nav)

	r.Get("/api/healthz", readiness.Healthz)
	r.Get("/api/readyz", readiness.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	limiter := middleware.NewRedisRateLimiter(rdb)
	mutationLimit := limiter.Middleware(middleware.RateLimitConfig{
		Limit:  30,
		Window: time.Minute,
		KeyFn:  middleware.KeyByUser,
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, time.Minute))
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)
	})

	r.Route("/api/owner", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/kos", kosH.ListOwner)
		r.Get("/kos/{id}", kosH.GetOwner)
		r.With(mutationLimit).Post("/kos", kosH.Create)
		r.With(mutationLimit).Put("/kos/{id}", kosH.Update)
		r.With(mutationLimit).Delete("/kos/{id}", kosH.Delete)

		r.Get("/kos/{kosID}/facilities", facilityH.List)
		r.With(mutationLimit).Post("/kos/{kosID}/facilities", facilityH.Create)
		r.Get("/facilities/{id}", facilityH.Get)
		r.With(mutationLimit).Put("/facilities/{id}", facilityH.Update)
		r.With(mutationLimit).Delete("/kos/{kosID}/facilities/{id}", facilityH.Delete)

		r.Get("/kos/{kosID}/images", imageH.List)
		r.With(mutationLimit).Post("/kos/{kosID}/images", imageH.Upload)
		r.Get("/images/{id}", imageH.Get)
		r.With(mutationLimit).Put("/images/{id}", imageH.Update)
		r.With(mutationLimit).Delete("/kos/{kosID}/images/{id}", imageH.Delete)

		r.Get("/bookings", bookingH.ListOwner)
		r.With(mutationLimit).Put("/bookings/{id}/status", bookingH.UpdateStatus)

		r.Get("/reviews", reviewH.ListOwner)
		r.Get("/kos/{kosID}/reviews", reviewH.ListForKos)
		r.With(mutationLimit).Post("/kos/{kosID}/reviews", reviewH.Reply)

		r.Get("/profile", profileH.Get)
		r.With(mutationLimit).Put("/profile", profileH.Update)
	})

	r.Route("/api/society", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/kos", kosH.Search)
		r.Get("/kos/{id}", kosH.Detail)
		r.Get("/kos/{kosID}/reviews", reviewH.ListForKos)
		r.With(mutationLimit).Post("/kos/{kosID}/reviews", reviewH.Create)
		r.With(mutationLimit).Delete("/reviews/{id}", reviewH.Delete)

		r.Get("/bookings", bookingH.ListSociety)
		r.With(mutationLimit).Post("/bookings", bookingH.Create)
		r.Get("/bookings/{id}/receipt", bookingH.Receipt)

		r.Get("/profile", profileH.Get)
		r.With(mutationLimit).Put("/profile", profileH.Update)
	})

	// Kos photos live on the upstream host; pass /uploads straight through.
	if up, err := uploadsProxy(cfg.KosAPIURL); err != nil {
		logger.Log.Warn().Err(err).Msg("uploads proxy disabled")
	} else {
		r.Mount("/uploads", up)
	}

	return r
}

// uploadsProxy maps /uploads/* onto the upstream's storage path, derived
// from the API URL (…/kos/api -> …/kos/storage).
func uploadsProxy(apiURL string) (http.Handler, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, err
	}
	hostRoot := u.Scheme + "://" + u.Host
	storagePath := strings.TrimSuffix(u.Path, "/api") + "/storage"
	return proxy.New(hostRoot, "/uploads", storagePath)
}
