package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics is nil-safe: every method is a no-op on a nil receiver.
type Metrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Transitions *prometheus.CounterVec
	Orders      *prometheus.CounterVec
	CatalogLoad *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_transitions_total",
			Help:      "Checkout state changes by target status.",
		}, []string{"status"}),
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_recorded_total",
			Help:      "Order record dispatches by result.",
		}, []string{"result"}),
		CatalogLoad: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog fetches by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Requests, m.LatencyMS, m.Transitions, m.Orders, m.CatalogLoad)
	return m
}

func (m *Metrics) ObserveRequest(route, method string, status int, ms float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, method, statusLabel(status)).Inc()
	m.LatencyMS.WithLabelValues(route).Observe(ms)
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) OrderRecorded(err error) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) CatalogLoaded(err error) {
	if m == nil {
		return
	}
	m.CatalogLoad.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
