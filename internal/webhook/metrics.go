package webhook

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outbound webhook instrumentation. Labels are kept low-cardinality:
//
//   - endpoint: logical endpoint name ("lead_capture", "chatbot")
//   - outcome:  "ok", "validation", "config", "network", "timeout", "webhook"
var (
	webhookReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Total number of outbound webhook calls.",
		},
		[]string{"endpoint", "outcome"},
	)

	webhookLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_request_duration_seconds",
			Help:    "Duration of outbound webhook calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(webhookReqs, webhookLat)
}

// observe records one completed call. outcome classifies the result per the
// error taxonomy in errors.go.
func observe(endpoint, outcome string, start time.Time) {
	webhookReqs.WithLabelValues(endpoint, outcome).Inc()
	webhookLat.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// outcomeFor maps an error (or nil) to its metric label.
func outcomeFor(err error) string {
	switch e := err.(type) {
	case nil:
		return "ok"
	case *ValidationError:
		return "validation"
	case *ConfigError:
		return "config"
	case *NetworkError:
		if e.Timeout {
			return "timeout"
		}
		return "network"
	case *WebhookError:
		return "webhook"
	default:
		return "error"
	}
}
