// Package metrics defines and registers all custom Prometheus metrics for the
// FieldOps API. It is the single source of truth for metric names, labels, and
// help strings. Vectors are registered with the default registry via promauto
// at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldops"

// ---------------------------------------------------------------------------
// Order metrics
// ---------------------------------------------------------------------------

// OrdersCreatedTotal counts newly created work orders.
// Label:
//   - priority: "CRITICAL", "HIGH", "MEDIUM", or "LOW"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of work orders created, by priority.",
	},
	[]string{"priority"},
)

// OrdersCompletedTotal counts orders completed with photographic evidence.
var OrdersCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_completed_total",
		Help:      "Total number of work orders completed with evidence.",
	},
)

// OrderStatusTransitionsTotal counts status replacements applied to orders.
// Label:
//   - status: the new status applied (e.g. "IN_PROGRESS")
var OrderStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of order status updates, by resulting status.",
	},
	[]string{"status"},
)

// ---------------------------------------------------------------------------
// Auth metrics
// ---------------------------------------------------------------------------

// AuthLoginsTotal counts authentication attempts.
// Label:
//   - result: "ok" or "rejected"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// ---------------------------------------------------------------------------
// Assistant metrics
// ---------------------------------------------------------------------------

// AssistantRequestsTotal counts calls to the assistant gateway.
// Labels:
//   - kind: "chat" or "evidence"
//   - result: "ok", "empty", or "error"
var AssistantRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_requests_total",
		Help:      "Total number of assistant gateway calls, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ---------------------------------------------------------------------------
// Audit pipeline metrics
// ---------------------------------------------------------------------------

// AuditQueueDepth tracks the current number of order events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsTotal counts audit-trail writes.
// Label:
//   - result: "ok" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of order events written to the audit trail, by result.",
	},
	[]string{"result"},
)
