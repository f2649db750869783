package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP and domain instruments. A nil *Metrics is a no-op.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	appointmentTransitions *prometheus.CounterVec
	paymentsRecorded       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		appointmentTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_appointments_transitions_total",
			Help: "Appointment status changes by target status.",
		}, []string{"to"}),
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_payments_recorded_total",
			Help: "Payment writes by method and status.",
		}, []string{"method", "status"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.appointmentTransitions,
		m.paymentsRecorded,
	)
	return m
}

// GinMiddleware records request count and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) AppointmentTransition(to string) {
	if m == nil {
		return
	}
	m.appointmentTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) PaymentRecorded(method, status string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(method, status).Inc()
}
