// Package metrics defines and registers all custom Prometheus metrics
// for the videotube API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "videotube"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure" (bad password; unknown users 404 earlier)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token rotations by outcome.
// Label:
//   - result: "success", "invalid" (signature/expiry/unknown user) or
//     "reused" (token no longer matches the stored slot, a security
//     signal, not a client retry case)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token rotations, by result.",
	},
	[]string{"result"},
)

// ── View-event metrics ────────────────────────────────────────────────────────

// ViewsProcessedTotal counts view events that completed processing.
var ViewsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_processed_total",
		Help:      "Total number of view events successfully processed.",
	},
)

// ViewsErrorsTotal counts view events that failed processing.
// Label:
//   - reason: "video_not_found" or "history_update_failed"
var ViewsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_errors_total",
		Help:      "Total number of view events that failed processing.",
	},
	[]string{"reason"},
)

// ViewsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new view, processed)
var ViewsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dedup_total",
		Help:      "Total number of view dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewsQueueDepth tracks the number of view events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "views_queue_depth",
		Help:      "Current number of view events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ViewProcessingDuration measures how long a single view event takes from
// dequeue to persistence.
var ViewProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "view_processing_duration_seconds",
		Help:      "Duration of view-event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// VideosPublishedTotal counts newly published videos.
var VideosPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "videos_published_total",
		Help:      "Total number of videos published.",
	},
)
