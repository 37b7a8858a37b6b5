package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts form traffic.
type Metrics struct {
	events       *prometheus.CounterVec
	submissions  prometheus.Counter
	optionsAdded prometheus.Counter
}

// NewMetrics creates the form counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "dynform_events_total", Help: "Field events applied, by action"},
			[]string{"action"},
		),
		submissions: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dynform_submissions_total", Help: "Form submissions"},
		),
		optionsAdded: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "dynform_options_added_total", Help: "Options appended through add-option events"},
		),
	}
	reg.MustRegister(m.events, m.submissions, m.optionsAdded)
	return m
}

func (m *Metrics) recordEvent(action string) { m.events.WithLabelValues(action).Inc() }
func (m *Metrics) recordSubmission() { m.submissions.Inc() }
func (m *Metrics) recordOptionAdded() { m.optionsAdded.Inc() }
