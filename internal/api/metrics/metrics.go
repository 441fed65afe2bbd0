// Package metrics defines the custom Prometheus metrics of the report
// service. Variables register with the default registry through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reports"

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsMutationsTotal counts successful report writes.
// Label:
//   - op: "create", "update", "delete" or "restore"
var ReportsMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_mutations_total",
		Help:      "Total number of report writes, by operation.",
	},
	[]string{"op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "locked", "inactive", "rate_limited" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDenialsTotal counts requests refused by the capability gate.
// Labels:
//   - capability: the capability the route requires, or "none"
//   - reason: "unauthenticated" or "forbidden"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"capability", "reason"},
)

// RateLimitedTotal counts requests rejected by a rate limiter.
// Label:
//   - limiter: "login" or "register"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"limiter"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityEntriesTotal counts dispatcher outcomes.
// Label:
//   - result: "written", "failed" or "dropped"
var ActivityEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_entries_total",
		Help:      "Total number of activity entries handled by the dispatcher, by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth is the number of activity entries waiting to be written.
var ActivityQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in the dispatcher.",
	},
)

// ActivityObserver feeds dispatcher outcomes into ActivityEntriesTotal.
type ActivityObserver struct{}

func (ActivityObserver) Written() { ActivityEntriesTotal.WithLabelValues("written").Inc() }
func (ActivityObserver) Failed()  { ActivityEntriesTotal.WithLabelValues("failed").Inc() }
func (ActivityObserver) Dropped() { ActivityEntriesTotal.WithLabelValues("dropped").Inc() }

// ── Tool metrics ──────────────────────────────────────────────────────────────

// GoalSeekTotal counts goal seek requests.
// Labels:
//   - mode: "formula" or "simple"
//   - result: "found" or "not_found"
var GoalSeekTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goal_seek_total",
		Help:      "Total number of goal seek requests, by mode and result.",
	},
	[]string{"mode", "result"},
)

// GoalSeekIterations records how many Newton steps a solved formula needed.
var GoalSeekIterations = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "goal_seek_iterations",
		Help:      "Newton-Raphson iterations used by successful goal seeks.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 50},
	},
)
