package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
	generated   prometheus.Counter
	restores    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bakkeyd",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bakkeyd",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bakkeyd",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP limiter.",
		}, []string{"route"}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bakkeyd",
			Name:      "backup_keys_generated_total",
			Help:      "Backup keys generated.",
		}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bakkeyd",
			Name:      "restores_total",
			Help:      "Restore attempts by whether the phrase matched a registered key.",
		}, []string{"registered"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.rateLimited,
		m.generated,
		m.restores,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// observe records the route template, not the raw path, to bound label cardinality.
func (m *metrics) observe(c *fiber.Ctx, status int, elapsed time.Duration) {
	route := c.Route().Path
	m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
