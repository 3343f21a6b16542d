// Package metrics defines and registers all custom Prometheus metrics for the
// society management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto; HTTP request metrics come from the
// echoprometheus middleware installed by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "society"

// ── State machine metrics ─────────────────────────────────────────────────────

// VisitorTransitionsTotal counts committed visitor status writes.
// Labels:
//   - from: the status observed before the write (e.g. "pending")
//   - to:   the status written (e.g. "current")
var VisitorTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visitor_transitions_total",
		Help:      "Total number of visitor status transitions committed.",
	},
	[]string{"from", "to"},
)

// MaintenanceTransitionsTotal counts committed maintenance status writes.
var MaintenanceTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_transitions_total",
		Help:      "Total number of maintenance request status transitions committed.",
	},
	[]string{"from", "to"},
)

// TransitionConflictsTotal counts conditional writes that lost a race.
// Label:
//   - resource: "visitor" or "maintenance"
var TransitionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transition_conflicts_total",
		Help:      "Total number of status updates rejected because the prior status changed.",
	},
	[]string{"resource"},
)

// AuthorizationDeniedTotal counts operations rejected by a role check.
// Label:
//   - operation: short name of the rejected operation (e.g. "visitor_decide")
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of operations rejected for insufficient role.",
	},
	[]string{"operation"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsRecordedTotal counts ledger entries.
// Labels:
//   - type:   "rent" or "maintenance"
//   - method: "manual" or "upi"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by type and capture method.",
	},
	[]string{"type", "method"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts logins.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsProcessedTotal counts notifications recorded by the workers.
var NotificationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_processed_total",
		Help:      "Total number of visitor notifications successfully recorded.",
	},
	[]string{"kind"},
)

// NotificationsErrorsTotal counts notifications that failed processing.
var NotificationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of visitor notifications that failed processing.",
	},
	[]string{"reason"},
)

// NotificationsDedupTotal counts approval-request deduplication decisions.
// Label:
//   - result: "hit" (residents already alerted, skipped) or "miss"
var NotificationsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dedup_total",
		Help:      "Total number of approval-request deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// NotificationsQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationProcessingDuration measures dequeue-to-persistence latency.
var NotificationProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_processing_duration_seconds",
		Help:      "Duration of notification processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)
