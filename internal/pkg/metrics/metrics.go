// Package metrics defines and registers all custom Prometheus metrics for the
// trust score and roadmap engine. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "finlit"

// ── Trust score metrics ───────────────────────────────────────────────────────

// TrustScoreCalculationsTotal counts trust score computations.
// Label:
//   - outcome: "computed", "unknown_user" or "fallback"
var TrustScoreCalculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trust_score_calculations_total",
		Help:      "Total number of trust score calculations, by outcome.",
	},
	[]string{"outcome"},
)

// TrustScoreValue records the distribution of computed scores.
var TrustScoreValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "trust_score_value",
		Help:      "Distribution of computed trust scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10), // 10, 20, … 100
	},
)

// StorageFallbacksTotal counts storage failures that were replaced with a
// default value instead of failing the request.
// Label:
//   - operation: the storage call that failed (e.g. "get_user_queries")
var StorageFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_fallbacks_total",
		Help:      "Total number of storage failures answered with a fallback value.",
	},
	[]string{"operation"},
)

// ── Roadmap metrics ───────────────────────────────────────────────────────────

// RoadmapsCreatedTotal counts default roadmaps persisted for new users.
var RoadmapsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roadmaps_created_total",
		Help:      "Total number of default roadmaps created for users without one.",
	},
)

// RecommendationsGeneratedTotal counts generated recommendations.
// Label:
//   - type: recommendation type (e.g. "loan_management", "emergency_fund")
var RecommendationsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_generated_total",
		Help:      "Total number of recommendations generated, by type.",
	},
	[]string{"type"},
)

// ── Query metrics ─────────────────────────────────────────────────────────────

// QueriesRecordedTotal counts stored user queries.
// Label:
//   - language: the query language code (e.g. "en", "hi")
var QueriesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_recorded_total",
		Help:      "Total number of user queries recorded, by language.",
	},
	[]string{"language"},
)

// QueriesDedupTotal counts duplicate-submission checks.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new query, stored)
var QueriesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_dedup_total",
		Help:      "Total number of duplicate query checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
