package metrics

import (
	"net/http"
	"smartpark/config"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	claims       *prometheus.CounterVec
	releases     *prometheus.CounterVec
	alerts       *prometheus.CounterVec
	alertCycles  prometheus.Histogram
	httpRequests *prometheus.HistogramVec
}

func New(cfg *config.Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegistry(cfg.Metrics.Namespace, registry)
}

func NewWithRegistry(namespace string, registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_claims_total",
			Help:      "Slot claim attempts by result.",
		}, []string{"result"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_releases_total",
			Help:      "Slot releases by actor and result.",
		}, []string{"actor", "result"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Expiry alerts by kind and delivery result.",
		}, []string{"kind", "result"}),
		alertCycles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alert_cycle_duration_seconds",
			Help:      "Duration of one alert evaluation cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(m.claims, m.releases, m.alerts, m.alertCycles, m.httpRequests)

	return m
}

// Claim counts a claim outcome. result is ResultSuccess or an error kind.
func (m *Metrics) Claim(result string) {
	if m == nil {
		return
	}

	m.claims.WithLabelValues(result).Inc()
}

func (m *Metrics) Release(actor, result string) {
	if m == nil {
		return
	}

	m.releases.WithLabelValues(actor, result).Inc()
}

func (m *Metrics) Alert(kind, result string) {
	if m == nil {
		return
	}

	m.alerts.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) AlertCycle(elapsed time.Duration) {
	if m == nil {
		return
	}

	m.alertCycles.Observe(elapsed.Seconds())
}

func (m *Metrics) HTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
