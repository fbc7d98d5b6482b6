package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level counters, beyond the per-route HTTP metrics that
// fiberprometheus records automatically.
var (
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_redis_errors_total",
		Help: "Redis operation failures by subsystem",
	}, []string{"subsystem"})

	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_ratelimit_rejections_total",
		Help: "Requests rejected by the rate limiter, by route",
	}, []string{"route"})

	PushDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_push_deliveries_total",
		Help: "Web push delivery attempts by outcome",
	}, []string{"outcome"})

	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_notifications_created_total",
		Help: "Notifications persisted, by type",
	}, []string{"type"})
)

// RegisterMetrics wires Prometheus HTTP metrics into the app and exposes
// the scrape endpoint at /metrics.
func RegisterMetrics(app *fiber.App, serviceName string) *fiberprometheus.FiberPrometheus {
	prom := fiberprometheus.New(serviceName)
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
	return prom
}
