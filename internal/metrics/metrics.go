package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes used as the "outcome" label.
const (
	OutcomeDisplayed = "displayed"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// Recorder tracks pricing submissions on its own registry, so several
// recorders (tests, CLI) never collide on the default one.
type Recorder struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    prometheus.Gauge
}

// New creates a Recorder with Go runtime and process collectors attached.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optionform_submissions_total",
				Help: "Pricing submissions by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "optionform_pricing_request_duration_seconds",
				Help:    "Duration of pricing API exchanges in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "optionform_submissions_in_flight",
			Help: "Pricing submissions awaiting a response",
		}),
	}
	reg.MustRegister(
		r.submissions,
		r.duration,
		r.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Started marks a submission as in flight.
func (r *Recorder) Started() {
	r.inFlight.Inc()
}

// Finished records the outcome and latency of one submission.
func (r *Recorder) Finished(method, outcome string, elapsed time.Duration) {
	r.inFlight.Dec()
	r.submissions.WithLabelValues(method, outcome).Inc()
	r.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
