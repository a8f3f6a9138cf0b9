package telemetry

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus counts flow events.
type Prometheus struct {
	events   *prometheus.CounterVec
	answers  *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewPrometheus registers the quiz collectors on a fresh registry.
func NewPrometheus() (*Prometheus, error) {
	reg := prometheus.NewRegistry()
	return NewPrometheusWith(reg, reg)
}

// NewPrometheusWith registers the collectors on reg and serves metrics from gatherer.
func NewPrometheusWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Prometheus, error) {
	p := &Prometheus{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizflow_events_total",
				Help: "Total number of quiz flow events by type",
			},
			[]string{"quiz_id", "event"},
		),
		answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizflow_answers_total",
				Help: "Total number of answered steps",
			},
			[]string{"quiz_id", "step", "correct"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quizflow_outcomes_total",
				Help: "Total number of concluded quizzes by outcome",
			},
			[]string{"quiz_id", "outcome"},
		),
		gatherer: gatherer,
	}
	for _, c := range []prometheus.Collector{p.events, p.answers, p.outcomes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) Track(ctx context.Context, e domain.Event) error {
	p.events.WithLabelValues(e.QuizID, string(e.Type)).Inc()

	switch e.Type {
	case domain.EventChoiceMade:
		correct := e.Correct != nil && *e.Correct
		p.answers.WithLabelValues(e.QuizID, strconv.Itoa(e.StepIndex), strconv.FormatBool(correct)).Inc()
	case domain.EventWon:
		p.outcomes.WithLabelValues(e.QuizID, string(domain.OutcomeWin)).Inc()
	case domain.EventLost:
		p.outcomes.WithLabelValues(e.QuizID, string(domain.OutcomeLose)).Inc()
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
