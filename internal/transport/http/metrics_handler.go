package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a metrics handler over the given registry. A nil
// registry falls back to the default one.
func NewMetricsHandler(registry *prometheus.Registry) *MetricsHandler {
	if registry == nil {
		return &MetricsHandler{handler: promhttp.Handler()}
	}
	return &MetricsHandler{
		handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}
}

// GetMetrics handles GET /metrics
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}
