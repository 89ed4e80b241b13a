// Package metrics defines and registers all custom Prometheus metrics for
// the quotation system. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry via
// promauto and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quotation"

// ── Authorization metrics ─────────────────────────────────────────────────────

// PermissionChecksTotal counts permission evaluations.
// Labels:
//   - feature: the feature id checked (e.g. "manage_roles")
//   - result: "allow" or "deny"
var PermissionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_checks_total",
		Help:      "Total number of permission evaluations, by feature and result.",
	},
	[]string{"feature", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionDriftTotal counts sessions invalidated by the drift watcher.
// Label:
//   - reason: "role_changed" or "account_deleted"
var SessionDriftTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_drift_total",
		Help:      "Total number of sessions invalidated by the drift watcher, by reason.",
	},
	[]string{"reason"},
)

// ActiveSessions tracks the number of currently registered sessions.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of registered sessions.",
	},
)

// DriftScanDuration measures how long one full drift scan takes.
var DriftScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "drift_scan_duration_seconds",
		Help:      "Duration of one drift-watcher scan over all active sessions.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Quotation metrics ─────────────────────────────────────────────────────────

// QuotationsCreatedTotal counts newly created quotations.
// Label:
//   - origin: "internal" (staff draft) or "external" (client request)
var QuotationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotations_created_total",
		Help:      "Total number of quotations created, by origin.",
	},
	[]string{"origin"},
)

// QuotationTransitionsTotal counts lifecycle transitions.
// Label:
//   - status: the target status applied (e.g. "approved")
var QuotationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotation_transitions_total",
		Help:      "Total number of quotation status transitions, by target status.",
	},
	[]string{"status"},
)
