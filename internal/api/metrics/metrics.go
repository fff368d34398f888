// Package metrics defines and registers all custom Prometheus metrics for
// the bug tracker API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the default
// registry via promauto on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bugtracker"

// BugsCreatedTotal counts newly created bugs.
// Label:
//   - priority: "low", "medium", "high", or "critical"
var BugsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bugs_created_total",
		Help:      "Total number of bugs created, by priority.",
	},
	[]string{"priority"},
)

// BugMutationsTotal counts successful bug mutations.
// Label:
//   - action: "created", "updated", "status_changed", "assigned", "deleted"
var BugMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_mutations_total",
		Help:      "Total number of successful bug mutations, by action.",
	},
	[]string{"action"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token",
//     "invalid_claims", "bad_credentials"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// DashboardCacheTotal counts dashboard stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var DashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_cache_total",
		Help:      "Total number of dashboard stats cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
