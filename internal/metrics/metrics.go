// Package metrics exposes Prometheus instrumentation for content sync.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Gateway metrics
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_gateway_requests_total",
			Help: "Total number of content API requests by operation and outcome",
		},
		[]string{"op", "status"},
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitecms_gateway_request_duration_seconds",
			Help:    "Content API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// Sync metrics
	PullsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_pulls_total",
			Help: "Total number of snapshot pulls by result (remote, local)",
		},
		[]string{"result"},
	)

	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_mutations_total",
			Help: "Total number of content mutations by section and sync state",
		},
		[]string{"section", "state"},
	)

	CacheWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_cache_writes_total",
			Help: "Total number of local cache writes by result",
		},
		[]string{"result"},
	)

	NotificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sitecms_notifications_total",
			Help: "Total number of change notifications broadcast",
		},
	)

	// Media metrics
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_uploads_total",
			Help: "Total number of image uploads by result",
		},
		[]string{"result"},
	)

	// Watcher metrics
	ExternalChangesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sitecms_external_cache_changes_total",
			Help: "Total number of cache file changes made by other processes",
		},
	)

	// Background pulls
	BackgroundPulls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitecms_background_pulls_total",
			Help: "Total number of scheduled pulls by job and result",
		},
		[]string{"job", "result"},
	)
)

func init() {
	prometheus.MustRegister(GatewayRequestsTotal)
	prometheus.MustRegister(GatewayRequestDuration)
	prometheus.MustRegister(PullsTotal)
	prometheus.MustRegister(MutationsTotal)
	prometheus.MustRegister(CacheWritesTotal)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(UploadsTotal)
	prometheus.MustRegister(ExternalChangesTotal)
	prometheus.MustRegister(BackgroundPulls)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures an operation for a histogram.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDurationVec records the elapsed time on a labelled histogram.
func (t *Timer) ObserveDurationVec(h *prometheus.HistogramVec, labels ...string) {
	h.WithLabelValues(labels...).Observe(t.Duration().Seconds())
}
