package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the prometheus collectors the service exports.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	CheckIns     prometheus.Counter
	LeaveDecided *prometheus.CounterVec
}

// New registers collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attendance_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CheckIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "attendance_checkins_total",
			Help: "Successfully recorded check-ins.",
		}),
		LeaveDecided: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_leave_decisions_total",
			Help: "Leave requests decided, by outcome.",
		}, []string{"status"}),
	}
}
