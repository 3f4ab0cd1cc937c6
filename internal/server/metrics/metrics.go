// Package metrics provides Prometheus metrics for bynderpress.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bynderpress"

const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

var (
	// SyncRunsTotal counts usage sync runs by outcome.
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_sync_runs_total",
			Help:      "Total number of usage sync runs",
		},
		[]string{"status"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "usage_sync_duration_seconds",
			Help:      "Duration of usage sync runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// UsagesReported is the size of the last submitted report.
	UsagesReported = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_sync_usages",
			Help:      "Number of usages in the last submitted report",
		},
	)

	DerivativeFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivative_fetch_total",
			Help:      "Total number of derivative fetches",
		},
		[]string{"status"},
	)

	// SettingsNoticesTotal counts rejected settings fields.
	SettingsNoticesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settings_notices_total",
			Help:      "Total number of settings values rejected on save",
		},
		[]string{"field"},
	)

	ArchiveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_archive_total",
			Help:      "Total number of usage reports written to object storage",
		},
		[]string{"status"},
	)
)

// RecordSync records a finished usage sync run.
func RecordSync(status string, usages int, duration time.Duration) {
	SyncRunsTotal.WithLabelValues(status).Inc()
	if status == StatusSkipped {
		return
	}
	SyncDuration.Observe(duration.Seconds())
	if status == StatusOK {
		UsagesReported.Set(float64(usages))
	}
}

func RecordDerivativeFetch(status string) {
	DerivativeFetchTotal.WithLabelValues(status).Inc()
}

func RecordSettingsNotice(field string) {
	SettingsNoticesTotal.WithLabelValues(field).Inc()
}

func RecordArchive(status string) {
	ArchiveTotal.WithLabelValues(status).Inc()
}
