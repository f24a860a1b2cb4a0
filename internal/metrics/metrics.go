// Package metrics provides Prometheus metrics definitions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "securewatch"

var (
	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status_code"},
	)

	dialogsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dialogs",
			Name:      "opened_total",
			Help:      "Dialogs opened by kind",
		},
		[]string{"kind"},
	)

	dialogSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dialogs",
			Name:      "submissions_total",
			Help:      "Dialog submissions by kind and result (ok, invalid, error)",
		},
		[]string{"kind", "result"},
	)

	dialogsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dialogs",
			Name:      "active",
			Help:      "Addressable dialog sessions",
		},
	)

	fixRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fix",
			Name:      "runs_total",
			Help:      "Apply-fix runs by outcome (started, completed)",
		},
		[]string{"outcome"},
	)

	fixRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fix",
			Name:      "run_duration_seconds",
			Help:      "Wall time of completed apply-fix runs",
			Buckets:   []float64{1, 2.5, 5, 7.5, 10, 15, 30, 60},
		},
	)

	notificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "emitted_total",
			Help:      "Notifications appended to the log by type",
		},
		[]string{"type"},
	)
)

// RecordDialogOpened counts an opened dialog.
func RecordDialogOpened(kind string) {
	dialogsOpened.WithLabelValues(kind).Inc()
}

// RecordDialogSubmission counts a submission outcome.
func RecordDialogSubmission(kind, result string) {
	dialogSubmissions.WithLabelValues(kind, result).Inc()
}

// SetActiveDialogs sets the session gauge.
func SetActiveDialogs(n int) {
	dialogsActive.Set(float64(n))
}

// RecordFixStarted counts a started fix run.
func RecordFixStarted() {
	fixRuns.WithLabelValues("started").Inc()
}

// RecordFixCompleted counts a completed fix run and observes its duration.
func RecordFixCompleted(d time.Duration) {
	fixRuns.WithLabelValues("completed").Inc()
	fixRunDuration.Observe(d.Seconds())
}

// RecordNotification counts an emitted notification.
func RecordNotification(typ string) {
	notificationsEmitted.WithLabelValues(typ).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
