package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/tradelink-backend/api/controllers"
	"github.com/angelmondragon/tradelink-backend/api/middleware"
	"github.com/angelmondragon/tradelink-backend/internal/checkout"
	"github.com/angelmondragon/tradelink-backend/internal/commission"
	"github.com/angelmondragon/tradelink-backend/internal/notifications"
	"github.com/angelmondragon/tradelink-backend/internal/orders"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
	"github.com/angelmondragon/tradelink-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Logger        *logger.Logger
	Checkout      checkout.Service
	Orders        orders.Service
	Commission    commission.Service
	Notifications notifications.Repository
	Idempotency   redis.IdempotencyStore
	Health        map[string]controllers.Pinger
	Metrics       prometheus.Gatherer
}

// New assembles the router: recovery first, then request ids, then logging,
// so every logged line carries an id and panics are still caught.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready(deps.Logger, deps.Health))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", controllers.QuoteCheckout(deps.Checkout, deps.Logger))
			r.With(middleware.Idempotency(deps.Idempotency, "checkout", deps.Logger)).
				Post("/", controllers.ExecuteCheckout(deps.Checkout, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
			r.Get("/parent/{parentId}", controllers.GetParentOrder(deps.Orders, deps.Logger))
			r.Get("/{orderId}", controllers.GetOrder(deps.Orders, deps.Logger))
			r.With(middleware.Idempotency(deps.Idempotency, "order-status", deps.Logger)).
				Post("/{orderId}/status", controllers.TransitionOrder(deps.Orders, deps.Logger))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, deps.Logger))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, deps.Logger))
		})

		r.Route("/admin/commission-tiers", func(r chi.Router) {
			r.Get("/", controllers.ListTiers(deps.Commission, deps.Logger))
			r.Post("/", controllers.CreateTier(deps.Commission, deps.Logger))
			r.Put("/{tierId}", controllers.UpdateTier(deps.Commission, deps.Logger))
			r.Delete("/{tierId}", controllers.DeleteTier(deps.Commission, deps.Logger))
			r.Post("/{tierId}/toggle", controllers.ToggleTier(deps.Commission, deps.Logger))
		})
	})

	return r
}
