package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/youssefalsaeed/order-management-system/api/controllers"
	cartcontrollers "github.com/youssefalsaeed/order-management-system/api/controllers/cart"
	ordercontrollers "github.com/youssefalsaeed/order-management-system/api/controllers/orders"
	"github.com/youssefalsaeed/order-management-system/api/middleware"
	"github.com/youssefalsaeed/order-management-system/internal/cart"
	"github.com/youssefalsaeed/order-management-system/internal/orders"
	"github.com/youssefalsaeed/order-management-system/pkg/config"
	"github.com/youssefalsaeed/order-management-system/pkg/db"
	"github.com/youssefalsaeed/order-management-system/pkg/logger"
	"github.com/youssefalsaeed/order-management-system/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	promRegistry *prometheus.Registry,
	cartService cart.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Post("/items", cartcontrollers.AddItem(cartService, logg))
		r.Put("/items", cartcontrollers.UpdateItem(cartService, logg))
		r.Delete("/items", cartcontrollers.RemoveItem(cartService, logg))
		r.Get("/{userID}", cartcontrollers.Fetch(cartService, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", ordercontrollers.Create(orderService, logg))
		r.Get("/{orderID}", ordercontrollers.Fetch(orderService, logg))
		r.Get("/user/{userID}", ordercontrollers.ListByUser(orderService, logg))
		r.Patch("/{orderID}/status", ordercontrollers.UpdateStatus(orderService, logg))
		r.Post("/{orderID}/coupon", ordercontrollers.ApplyCoupon(orderService, logg))
	})

	return r
}
