package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the web client.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	remoteDuration  *prometheus.HistogramVec
	remoteErrors    *prometheus.CounterVec
	formRejections  *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
	sessionRestores *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		remoteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mfweb_remote_request_duration_seconds",
				Help:    "Duration of marketplace API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		remoteErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfweb_remote_errors_total",
				Help: "Total failed marketplace API calls.",
			},
			[]string{"operation"},
		),
		formRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfweb_form_rejections_total",
				Help: "Total form submissions rejected by local validation.",
			},
			[]string{"form"},
		),
		loginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfweb_logins_total",
				Help: "Total login attempts by outcome.",
			},
			[]string{"outcome"},
		),
		sessionRestores: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mfweb_session_restores_total",
				Help: "Total session restores at startup by result.",
			},
			[]string{"result"},
		),
	}
}

// RecordRemoteDuration records the duration of a marketplace API call.
func (m *Metrics) RecordRemoteDuration(operation string, d time.Duration) {
	m.remoteDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrRemoteError increments the remote error counter.
func (m *Metrics) IncrRemoteError(operation string) {
	m.remoteErrors.WithLabelValues(operation).Inc()
}

// IncrFormRejection increments the local validation rejection counter.
func (m *Metrics) IncrFormRejection(form string) {
	m.formRejections.WithLabelValues(form).Inc()
}

// IncrLogin increments the login counter with an outcome label.
func (m *Metrics) IncrLogin(outcome string) {
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

// IncrSessionRestore increments the session restore counter.
func (m *Metrics) IncrSessionRestore(result string) {
	m.sessionRestores.WithLabelValues(result).Inc()
}

// Snapshot is a point-in-time view of the client's counters, read back
// from the registry for the health endpoint.
type Snapshot struct {
	Logins           float64 `json:"logins"`
	LoginFailureRate float64 `json:"loginFailureRate"`
}

// GetSnapshot reads the current counter values.
func (m *Metrics) GetSnapshot() Snapshot {
	success := getCounterValue(m.loginsTotal, "success")
	failure := getCounterValue(m.loginsTotal, "failure")
	return Snapshot{
		Logins:           success + failure,
		LoginFailureRate: m.LoginFailureRate(),
	}
}

// LoginFailureRate returns failed logins over total logins since start.
func (m *Metrics) LoginFailureRate() float64 {
	success := getCounterValue(m.loginsTotal, "success")
	failure := getCounterValue(m.loginsTotal, "failure")
	if success+failure == 0 {
		return 0
	}
	return failure / (success + failure)
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
