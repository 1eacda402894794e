package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/fsm/pkg/statemachine"
)

const (
	resultApplied = "applied"
	resultEmpty   = "empty"
)

// Collector holds the Prometheus metrics fed by state machine hooks.
type Collector struct {
	transitions    *prometheus.CounterVec
	history        *prometheus.CounterVec
	historyCleared prometheus.Counter
	rejected       *prometheus.CounterVec
	current        *prometheus.GaugeVec
}

// NewCollector creates unregistered metrics under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Total number of successful state changes",
			},
			[]string{"op", "from", "to"},
		),
		history: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_total",
				Help:      "Total number of undo and redo calls by result",
			},
			[]string{"op", "result"},
		),
		historyCleared: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_cleared_total",
				Help:      "Total number of history clears",
			},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of rejected state changes",
			},
			[]string{"op"},
		),
		current: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "current_state",
				Help:      "Set to 1 for the current state of each machine",
			},
			[]string{"machine_id", "state"},
		),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.transitions, c.history, c.historyCleared, c.rejected, c.current}
}

// Register registers every metric with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	var errs []error
	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MustRegister registers every metric with reg and panics on failure.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.collectors()...)
}

// Hooks returns statemachine hooks that update the metrics.
func (c *Collector) Hooks() statemachine.Hooks {
	return statemachine.Hooks{
		OnTransition: func(e statemachine.TransitionEvent) {
			c.transitions.WithLabelValues(string(e.Op), e.From, e.To).Inc()
			c.move(e)
		},
		OnUndo: func(e statemachine.TransitionEvent, ok bool) {
			c.historyMoved(e, ok)
		},
		OnRedo: func(e statemachine.TransitionEvent, ok bool) {
			c.historyMoved(e, ok)
		},
		OnClearHistory: func(statemachine.TransitionEvent) {
			c.historyCleared.Inc()
		},
		OnError: func(e statemachine.TransitionEvent, _ error) {
			c.rejected.WithLabelValues(string(e.Op)).Inc()
		},
	}
}

// Track records the current state of m so the gauge is set before the first transition.
func (c *Collector) Track(m *statemachine.Machine) {
	c.current.WithLabelValues(m.ID(), m.State()).Set(1)
}

// Forget removes the gauge series of a machine that is no longer used.
func (c *Collector) Forget(machineID string) {
	c.current.DeletePartialMatch(prometheus.Labels{"machine_id": machineID})
}

func (c *Collector) historyMoved(e statemachine.TransitionEvent, ok bool) {
	result := resultEmpty
	if ok {
		result = resultApplied
		c.move(e)
	}
	c.history.WithLabelValues(string(e.Op), result).Inc()
}

func (c *Collector) move(e statemachine.TransitionEvent) {
	if e.From != e.To {
		c.current.DeleteLabelValues(e.MachineID, e.From)
	}
	c.current.WithLabelValues(e.MachineID, e.To).Set(1)
}
