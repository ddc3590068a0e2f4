// Package cp turns coincident-peak billing calendars into an optimizer cost
// signal and attributes the optimizer's result back to avoided dollars.
package cp

import (
	"errors"
	"fmt"
	"time"

	"cp-valuation/internal/logger"
)

// ErrNoEvents is returned when an instance is constructed without events.
var ErrNoEvents = errors.New("cp instance has no events")

// Params describes one configured CP mechanism.
// Units:
// - MonthlyRate: $/kW-month
// - GrowthPercent: percent per year escalation of attributed dollars
type Params struct {
	ID            string
	Label         string
	MonthlyRate   float64
	GrowthPercent float64
	Events        []Event
}

func (p Params) Validate() error {
	if len(p.Events) == 0 {
		return ErrNoEvents
	}
	if p.MonthlyRate < 0 {
		return errors.New("rate_monthly must be >= 0")
	}
	return nil
}

// Instance is one CP value stream. It owns its event list and indicator.
//
// Lifecycle: NewInstance -> GrowDropData (optional) -> Objective (any number
// of times) -> DrillDown / YearlyAvoided. Only GrowDropData mutates state.
type Instance struct {
	id            string
	label         string
	monthlyRate   float64
	growthPercent float64
	events        []Event

	// step is the index resolution; stepHours is step in hours.
	step      time.Duration
	stepHours float64

	indicator Series
}

// NewInstance builds the instance and its indicator over the full simulation index.
func NewInstance(p Params, index []time.Time, step time.Duration, log *logger.Logger) (*Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("cp instance %q: %w", p.ID, err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("cp instance %q: step must be > 0", p.ID)
	}
	if log == nil {
		log = logger.Nop()
	}

	in := &Instance{
		id:            p.ID,
		label:         p.Label,
		monthlyRate:   p.MonthlyRate,
		growthPercent: p.GrowthPercent,
		events:        append([]Event(nil), p.Events...),
		step:          step,
		stepHours:     step.Hours(),
	}
	in.indicator = BuildIndicator(index, in.events)

	log.WithFields(map[string]interface{}{
		"value_stream": in.Name(),
		"events":       len(in.events),
		"timesteps":    in.indicator.Marked(),
	}).Info("cp value stream mapped events onto index")
	return in, nil
}

func (in *Instance) ID() string     { return in.id }
func (in *Instance) Label() string  { return in.label }
func (in *Instance) NumEvents() int { return len(in.events) }

// Events returns a copy of the instance's event list.
func (in *Instance) Events() []Event {
	return append([]Event(nil), in.events...)
}

// Indicator returns a copy of the current indicator series.
func (in *Instance) Indicator() Series {
	return in.indicator.Clone()
}

// StepWeight is the objective coefficient applied to each marked step:
// monthlyRate * 12 * stepHours / numEvents.
//
// Summed over the steps of one event hour this is monthlyRate*12/numEvents, so
// over all N events of a year it reproduces the annualized rate applied to the
// mean demand across those hours, matching YearlyAvoided.
func (in *Instance) StepWeight() float64 {
	return in.monthlyRate * 12.0 * in.stepHours / float64(len(in.events))
}
