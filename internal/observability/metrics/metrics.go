package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "windasset_"

	// ResultSuccess labels a successful step advance.
	ResultSuccess = "success"
	// ResultValidation labels a validation or resolution failure.
	ResultValidation = "validation_error"
	// ResultRepository labels a repository failure.
	ResultRepository = "repository_error"

	// LabelHit labels a successful mailbox label resolution.
	LabelHit = "hit"
	// LabelMiss labels a clean resolution miss (non-fatal).
	LabelMiss = "miss"
	// LabelError labels a resolver/API failure (also non-fatal).
	LabelError = "error"
)

var (
	registerOnce sync.Once

	wizardSteps       *prometheus.CounterVec
	wizardStepLatency *prometheus.HistogramVec
	wizardSessions    prometheus.Gauge
	wizardCancelled   prometheus.Counter

	labelResolutions *prometheus.CounterVec

	fleetExports *prometheus.CounterVec
)

// Init registers the service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		wizardSteps = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "wizard_steps_total",
				Help: "Wizard step advances by step and result",
			},
			[]string{"step", "result"},
		)
		wizardStepLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "wizard_step_seconds",
				Help:    "Wizard step handling latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"step"},
		)
		wizardSessions = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "wizard_sessions_active",
				Help: "Wizard sessions currently in flight",
			},
		)
		wizardCancelled = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "wizard_cancelled_total",
				Help: "Wizard sessions cancelled mid-flow",
			},
		)
		labelResolutions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "label_resolutions_total",
				Help: "Mailbox label resolution attempts by outcome",
			},
			[]string{"outcome"},
		)
		fleetExports = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fleet_exports_total",
				Help: "Fleet register exports by format and result",
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			wizardSteps,
			wizardStepLatency,
			wizardSessions,
			wizardCancelled,
			labelResolutions,
			fleetExports,
		)
	})
}

// WizardStep records a step advance outcome.
func WizardStep(step, result string) {
	if wizardSteps != nil {
		wizardSteps.WithLabelValues(step, result).Inc()
	}
}

// WizardStepObserve records step handling latency.
func WizardStepObserve(step string, started time.Time) {
	if wizardStepLatency != nil {
		wizardStepLatency.WithLabelValues(step).Observe(time.Since(started).Seconds())
	}
}

// SessionStarted bumps the active session gauge.
func SessionStarted() {
	if wizardSessions != nil {
		wizardSessions.Inc()
	}
}

// SessionEnded lowers the active session gauge.
func SessionEnded() {
	if wizardSessions != nil {
		wizardSessions.Dec()
	}
}

// SessionCancelled counts a cancelled session.
func SessionCancelled() {
	if wizardCancelled != nil {
		wizardCancelled.Inc()
	}
}

// LabelResolution records a mailbox label resolution outcome.
func LabelResolution(outcome string) {
	if labelResolutions != nil {
		labelResolutions.WithLabelValues(outcome).Inc()
	}
}

// FleetExport records a fleet export outcome.
func FleetExport(format, result string) {
	if fleetExports != nil {
		fleetExports.WithLabelValues(format, result).Inc()
	}
}
