package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/htmw/2025Su-ByteSquad/internal/auth"
	"github.com/htmw/2025Su-ByteSquad/internal/service"
	"github.com/htmw/2025Su-ByteSquad/pkg/health"
	"github.com/htmw/2025Su-ByteSquad/pkg/middleware"
)

// RouterDeps bundles the services and infrastructure the router wires up.
type RouterDeps struct {
	Users           *service.UserService
	Carts           *service.CartService
	Supplements     *service.SupplementService
	Recommendations *service.RecommendationService
	Workouts        *service.WorkoutService
	Checkout        *service.CheckoutService

	JWT           *auth.JWTManager
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
	PprofCIDRs    []string

	// RateLimitRPS 0 disables per-IP rate limiting.
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.Tracing("fitstore"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	if deps.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst, deps.Logger))
	}

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	authHandler := NewAuthHandler(deps.Users, deps.Logger)
	profileHandler := NewProfileHandler(deps.Users, deps.Logger)
	cartHandler := NewCartHandler(deps.Carts, deps.Logger)
	supplementHandler := NewSupplementHandler(deps.Supplements, deps.Logger)
	recommendationHandler := NewRecommendationHandler(deps.Recommendations, deps.Logger)
	workoutHandler := NewWorkoutHandler(deps.Workouts, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Carts, deps.Logger)

	requireAuth := middleware.Auth(tokenValidator(deps.JWT))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/supplements", supplementHandler.List)
		r.Get("/supplements/{id}", supplementHandler.Get)

		r.Post("/recommendations", recommendationHandler.Recommend)
		r.Post("/workouts/generate", workoutHandler.Generate)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/me", profileHandler.GetProfile)
			r.Put("/users/me", profileHandler.UpdateProfile)
			r.Put("/users/me/password", profileHandler.ChangePassword)
			r.Delete("/users/me", profileHandler.DeleteAccount)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddLine)
			r.Put("/cart/items/{productId}", cartHandler.UpdateQuantity)
			r.Put("/cart/items/{productId}/selection", cartHandler.UpdateSelection)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveLine)

			r.Post("/checkout", checkoutHandler.Submit)
		})
	})

	return r
}

// tokenValidator adapts the JWT manager to the auth middleware contract.
func tokenValidator(jwt *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID, Email: claims.Email}, nil
	}
}
