package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook ingestion outcome categories.
const (
	ResultCreated          = "created"
	ResultDuplicate        = "duplicate"
	ResultInvalidSignature = "invalid_signature"
	ResultError            = "error"
)

// Collector owns the process counters. It is injected into the middleware and
// handlers rather than living in package-level state, so tests get an
// isolated registry each.
type Collector struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	webhookRequests *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path, and status",
	}, []string{"method", "path", "status"})

	webhookRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "Total webhook requests by result",
	}, []string{"result"})

	registry.MustRegister(httpRequests, webhookRequests)

	return &Collector{registry, httpRequests, webhookRequests}
}

// HTTPRequest counts one finished request.
func (c *Collector) HTTPRequest(method, path string, status int) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// WebhookResult counts one ingestion outcome.
func (c *Collector) WebhookResult(result string) {
	c.webhookRequests.WithLabelValues(result).Inc()
}

// Handler serves the text exposition format for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
