package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interview_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	VerifyRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_verify_requests_total",
			Help: "Total number of reference verification requests sent on the bus",
		},
		[]string{"pattern", "outcome"},
	)

	NotificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_notifications_total",
			Help: "Total number of notifications handed to the bus",
		},
		[]string{"pattern", "outcome"},
	)

	EmitQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interview_emit_queue_size",
			Help: "Number of notifications waiting to be published",
		},
	)
)

// Outcome labels.
const (
	OutcomeFound       = "found"
	OutcomeMissing     = "missing"
	OutcomeUnavailable = "unavailable"
	OutcomeSent        = "sent"
	OutcomeFailed      = "failed"
	OutcomeDropped     = "dropped"
)
