package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Aggregation
	AggregationPasses      prometheus.Counter
	AggregationLatency     prometheus.Histogram
	AggregationCacheHits   prometheus.Counter
	AggregationCacheMisses prometheus.Counter

	// Snapshot refresh
	SnapshotRefreshes   *prometheus.CounterVec
	SnapshotFetchErrors *prometheus.CounterVec
	SnapshotRecords     *prometheus.GaugeVec

	// Reminder scheduler
	ReminderScans        prometheus.Counter
	ReminderScansSkipped prometheus.Counter
	ReminderScanLatency  prometheus.Histogram
	RemindersFired       prometheus.Counter
	ReminderEvalErrors   prometheus.Counter

	// Notification store
	NotificationOps *prometheus.CounterVec
	UnreadGauge     prometheus.Gauge
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AggregationPasses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_passes_total",
			Help:      "Total number of metric aggregation passes",
		}),
		AggregationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_latency_seconds",
			Help:      "Latency of one aggregation pass",
		}),
		AggregationCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_cache_hits_total",
			Help:      "Aggregation results served from cache",
		}),
		AggregationCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregation_cache_misses_total",
			Help:      "Aggregation results recomputed",
		}),
		SnapshotRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refreshes_total",
			Help:      "Snapshot refresh attempts by result",
		}, []string{"result"}),
		SnapshotFetchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_fetch_errors_total",
			Help:      "Per-collection fetch failures during refresh",
		}, []string{"kind"}),
		SnapshotRecords: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_records",
			Help:      "Records held in the current snapshot per collection",
		}, []string{"kind"}),
		ReminderScans: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_scans_total",
			Help:      "Completed reminder scans",
		}),
		ReminderScansSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_scans_skipped_total",
			Help:      "Reminder ticks skipped because a scan was still running",
		}),
		ReminderScanLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reminder_scan_latency_seconds",
			Help:      "Latency of one reminder scan",
		}),
		RemindersFired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_fired_total",
			Help:      "Reminder alerts fired",
		}),
		ReminderEvalErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_eval_errors_total",
			Help:      "Interviews skipped during a scan due to evaluation errors",
		}),
		NotificationOps: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_ops_total",
			Help:      "Notification store operations by type",
		}, []string{"op"}),
		UnreadGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_unread",
			Help:      "Current unread notification count",
		}),
	}
}
