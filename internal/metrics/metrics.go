// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operations counts engine operations by operation name and result
// ("ok" or the failure kind).
var Operations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stockbot_operations_total",
	Help: "Accounting operations executed, by operation and result.",
}, []string{"operation", "result"})

// OperationDuration observes engine operation latency including storage round trips.
var OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "stockbot_operation_duration_seconds",
	Help:    "Latency of accounting operations.",
	Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"operation"})

// InboundMessages counts WhatsApp messages handled by the webhook, by result.
var InboundMessages = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stockbot_inbound_messages_total",
	Help: "WhatsApp messages received, by handling result.",
}, []string{"result"})

// Result labels. Rejected operations use the failure kind instead.
const (
	ResultOK      = "ok"
	ResultFailed  = "failed"
	ResultIgnored = "ignored"
)
