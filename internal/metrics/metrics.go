// Package metrics exposes Prometheus collectors for the dashboard API.
// All methods are safe on a nil *Metrics so tests can skip registration.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics groups the collectors used across the service.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	Logins             *prometheus.CounterVec
	KYCTransitions     *prometheus.CounterVec
	KYCNotes           prometheus.Counter
	AuditWriteFailures prometheus.Counter
	QueryDuration      *prometheus.HistogramVec
}

// New registers every collector with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: latencyBuckets,
		}, []string{"route", "method"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		KYCTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kycdesk_kyc_transitions_total",
			Help: "KYC status transitions by resulting status",
		}, []string{"status"}),
		KYCNotes: f.NewCounter(prometheus.CounterOpts{
			Name: "kycdesk_kyc_notes_total",
			Help: "Notes appended to KYC cases",
		}),
		AuditWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "kycdesk_audit_write_failures_total",
			Help: "Audit entries that could not be persisted",
		}),
		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycdesk_listing_query_duration_seconds",
			Help:    "Listing query latency by collection and strategy",
			Buckets: latencyBuckets,
		}, []string{"collection", "strategy"}),
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// IncrementLogin records a login outcome ("success", "invalid", "error").
func (m *Metrics) IncrementLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementTransition(status string) {
	if m == nil {
		return
	}
	m.KYCTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementNote() {
	if m == nil {
		return
	}
	m.KYCNotes.Inc()
}

func (m *Metrics) IncrementAuditFailure() {
	if m == nil {
		return
	}
	m.AuditWriteFailures.Inc()
}

// ObserveQuery implements query.Observer.
func (m *Metrics) ObserveQuery(collection, strategy string, d time.Duration) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(collection, strategy).Observe(d.Seconds())
}
