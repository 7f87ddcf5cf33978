package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - метрики HTTP и домена. Каждый экземпляр пишет в свой registry,
// поэтому несколько роутеров в одном процессе (тесты) не конфликтуют.
// Все методы безопасны для nil.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	RequestsCreated prometheus.Counter
	OffersCreated   prometheus.Counter
	RoleSwitches    *prometheus.CounterVec
	UrgencyDecays   prometheus.Counter
	SessionsSwept   prometheus.Counter
	LoginsTotal     *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		RequestsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "help_requests_created_total",
				Help:      "Help requests posted by requesters",
			},
		),
		OffersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "help_offers_created_total",
				Help:      "Help offers made by volunteers",
			},
		),
		RoleSwitches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "role_switches_total",
				Help:      "Role switches by resulting role",
			},
			[]string{"role"},
		),
		UrgencyDecays: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "urgency_decays_total",
				Help:      "Requests downgraded from high to medium urgency",
			},
		),
		SessionsSwept: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_swept_total",
				Help:      "Expired in-memory sessions removed by the sweeper",
			},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// Middleware собирает HTTP метрики. path - шаблон маршрута gin, а не сырой URL.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler - /metrics в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRequestCreated() {
	if m != nil {
		m.RequestsCreated.Inc()
	}
}

func (m *Metrics) RecordOfferCreated() {
	if m != nil {
		m.OffersCreated.Inc()
	}
}

func (m *Metrics) RecordRoleSwitch(newRole string) {
	if m != nil {
		m.RoleSwitches.WithLabelValues(newRole).Inc()
	}
}

func (m *Metrics) RecordUrgencyDecay(count int64) {
	if m != nil && count > 0 {
		m.UrgencyDecays.Add(float64(count))
	}
}

func (m *Metrics) RecordSessionsSwept(count int) {
	if m != nil && count > 0 {
		m.SessionsSwept.Add(float64(count))
	}
}

func (m *Metrics) RecordLogin(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}
