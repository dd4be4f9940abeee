package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Capture outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeTimeout = "timeout"
	OutcomeFailure = "failure"
)

var (
	CapturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapper",
		Name:      "captures_total",
		Help:      "Screenshot captures by transport format and outcome.",
	}, []string{"format", "outcome"})

	CaptureDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snapper",
		Name:      "capture_duration_seconds",
		Help:      "Wall-clock time of a capture, browser launch to teardown.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"outcome"})

	BrowsersActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "snapper",
		Name:      "browsers_active",
		Help:      "Browser instances currently alive.",
	})

	GateWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "snapper",
		Name:      "gate_wait_seconds",
		Help:      "Time spent waiting for a browser slot when MaxBrowsers is set.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
