// Package metrics defines and registers all custom Prometheus metrics for the
// storefront service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Storage metrics ───────────────────────────────────────────────────────────

// StorageReadsTotal counts collection loads by the tier that served them.
// Labels:
//   - collection: the collection name (e.g. "products")
//   - tier: "remote" or "fallback"
var StorageReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_reads_total",
		Help:      "Total number of collection loads, by serving tier.",
	},
	[]string{"collection", "tier"},
)

// StorageWritesTotal counts whole-collection writes by the tier that accepted them.
// Labels:
//   - collection: the collection name
//   - tier: "remote", "fallback" or "none" when every tier failed
var StorageWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_writes_total",
		Help:      "Total number of collection writes, by accepting tier.",
	},
	[]string{"collection", "tier"},
)

// StorageFallbacksTotal counts remote failures that were routed to the fallback store.
// Labels:
//   - collection: the collection name
//   - op: "read" or "write"
var StorageFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_fallbacks_total",
		Help:      "Total number of remote operations that fell back to the local store.",
	},
	[]string{"collection", "op"},
)

// StorageConflictsTotal counts remote writes rejected for a stale version.
var StorageConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_conflicts_total",
		Help:      "Total number of remote writes rejected because the document version moved.",
	},
	[]string{"collection"},
)

// ── Mirror queue metrics ──────────────────────────────────────────────────────

// MirrorQueueDepth tracks the number of mirror jobs waiting in each worker channel.
var MirrorQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mirror_queue_depth",
		Help:      "Current number of pending local mirror jobs per worker.",
	},
	[]string{"worker_id"},
)

// MirrorJobsTotal counts mirror jobs by result ("ok" or "error").
var MirrorJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_jobs_total",
		Help:      "Total number of remote writes mirrored into the local store.",
	},
	[]string{"result"},
)

// ── Storefront metrics ────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts by result ("ok", "invalid", "error").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CartMutationsTotal counts cart reducer actions ("add", "set_quantity", "remove", "clear").
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart actions applied, by action.",
	},
	[]string{"action"},
)

// CheckoutsTotal counts checkouts by result ("created", "replayed", "error").
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkouts, by result.",
	},
	[]string{"result"},
)

// CheckoutAmount observes the total of each created order.
var CheckoutAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_amount",
		Help:      "Order totals handed off at checkout.",
		Buckets:   prometheus.ExponentialBuckets(50, 2, 10),
	},
)
