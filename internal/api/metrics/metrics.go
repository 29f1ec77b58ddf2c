// Package metrics defines and registers all custom Prometheus metrics for the
// tuition payment API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics register with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tuition"

// ── Student metrics ───────────────────────────────────────────────────────────

// StudentsCreatedTotal counts newly registered student records.
// Label:
//   - department: the department the student was enrolled into
var StudentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "students_created_total",
		Help:      "Total number of student records created, by department.",
	},
	[]string{"department"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsInitiatedTotal counts payment initiation attempts.
// Label:
//   - result: "ok", "not_found", or "gateway_error"
var PaymentsInitiatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initiated_total",
		Help:      "Total number of tuition payment initiations, by result.",
	},
	[]string{"result"},
)

// PaymentInitiateDuration measures the end-to-end latency of a payment
// initiation, dominated by the round trip to the gateway.
// Label:
//   - result: "ok" or "gateway_error"
var PaymentInitiateDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_initiate_duration_seconds",
		Help:      "Duration of payment initiation including the gateway call.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookDeliveriesTotal counts incoming gateway deliveries.
// Label:
//   - result: "processed", "ignored", "duplicate", "unknown_reference",
//     "invalid_signature", or "bad_payload"
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of webhook deliveries received, by outcome.",
	},
	[]string{"result"},
)
