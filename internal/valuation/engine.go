// Package valuation wires configured CP instances to the dispatch engine's
// optimization windows and to the post-solve reports.
package valuation

import (
	"fmt"
	"time"

	"cp-valuation/internal/config"
	"cp-valuation/internal/cp"
	"cp-valuation/internal/linear"
	"cp-valuation/internal/logger"
	"cp-valuation/internal/timeseries"
)

type Engine struct {
	log *logger.Logger

	scenario config.ScenarioConfig
	step     time.Duration
	loc      *time.Location

	index     []time.Time
	instances []*cp.Instance
}

// New builds the simulation index and one instance per active CP entry.
// Inactive entries and entries without events are dropped with a warning.
func New(cfg *config.Config, log *logger.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.Nop()
	}
	step, err := cfg.Scenario.Step()
	if err != nil {
		return nil, fmt.Errorf("scenario frequency: %w", err)
	}
	loc, err := cfg.Scenario.Location()
	if err != nil {
		return nil, fmt.Errorf("scenario timezone: %w", err)
	}
	index, err := timeseries.Index(cfg.Scenario.OptYears, step, loc)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	e := &Engine{
		log:      log,
		scenario: cfg.Scenario,
		step:     step,
		loc:      loc,
		index:    index,
	}
	if e.scenario.AnnuityScalar == 0 {
		e.scenario.AnnuityScalar = 1
	}

	for i, c := range cfg.CP {
		entryLog := log.WithField("cp_id", c.ID)
		if !c.IsActive() {
			entryLog.Info("cp instance inactive, skipping")
			continue
		}
		params, err := c.ToParams()
		if err != nil {
			return nil, fmt.Errorf("cp[%d] %q: %w", i, c.ID, err)
		}
		if len(params.Events) == 0 {
			entryLog.Warn("cp instance has no events, dropping")
			continue
		}
		in, err := cp.NewInstance(params, index, step, log)
		if err != nil {
			return nil, err
		}
		e.instances = append(e.instances, in)
	}
	return e, nil
}

func (e *Engine) Instances() []*cp.Instance { return e.instances }
func (e *Engine) Index() []time.Time        { return e.index }
func (e *Engine) Step() time.Duration       { return e.step }

// OptYears are the years currently covered by the index.
func (e *Engine) OptYears() []int {
	return timeseries.Years(e.index)
}

// SetHorizon switches the simulation to exactly years and adapts every instance.
func (e *Engine) SetHorizon(years []int) error {
	index, err := timeseries.Index(years, e.step, e.loc)
	if err != nil {
		return err
	}
	for _, in := range e.instances {
		if err := in.GrowDropData(years, e.step, e.scenario.LoadGrowth); err != nil {
			return fmt.Errorf("%s: %w", in.Name(), err)
		}
	}
	e.index = index
	e.scenario.OptYears = timeseries.UniqueYears(years)
	e.log.WithField("years", e.scenario.OptYears).Info("cp horizon adapted")
	return nil
}

// endYear is the last proforma year, never before the last optimized year.
func (e *Engine) endYear() int {
	ys := e.OptYears()
	last := ys[len(ys)-1]
	if e.scenario.EndYear > last {
		return e.scenario.EndYear
	}
	return last
}

// Windows partitions the current index per the scenario's window setting.
func (e *Engine) Windows() ([]timeseries.Window, error) {
	return timeseries.Windows(e.index, e.scenario.Window)
}

// Objective merges every instance's cost term for one window.
// Instances with no CP hour in the window contribute nothing.
func (e *Engine) Objective(mask []bool, netLoad []linear.Expr) (map[string]linear.Expr, error) {
	out := map[string]linear.Expr{}
	for _, in := range e.instances {
		terms, err := in.Objective(mask, netLoad, e.scenario.AnnuityScalar)
		if err != nil {
			return nil, err
		}
		for name, expr := range terms {
			out[name] = expr
		}
	}
	return out, nil
}

// WindowTerms is the objective contribution for one optimization window.
type WindowTerms struct {
	Window string
	Steps  int
	Terms  map[string]linear.Expr
}

// NetLoadFunc supplies the solver's net-load expressions for a window.
type NetLoadFunc func(w timeseries.Window) ([]linear.Expr, error)

// Plan evaluates the objective contribution for every window, in order.
func (e *Engine) Plan(netLoad NetLoadFunc) ([]WindowTerms, error) {
	windows, err := e.Windows()
	if err != nil {
		return nil, err
	}
	out := make([]WindowTerms, 0, len(windows))
	for _, w := range windows {
		nl, err := netLoad(w)
		if err != nil {
			return nil, fmt.Errorf("window %s: net load: %w", w.Label, err)
		}
		terms, err := e.Objective(w.Mask, nl)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.Label, err)
		}
		out = append(out, WindowTerms{Window: w.Label, Steps: w.Len(), Terms: terms})
	}
	return out, nil
}

// NetLoadVariables names one solver variable per window step,
// "net_load[<position in full index>]".
func NetLoadVariables(w timeseries.Window) ([]linear.Expr, error) {
	out := make([]linear.Expr, 0, w.Len())
	for i, ok := range w.Mask {
		if ok {
			out = append(out, linear.Variable(NetLoadVar(i)))
		}
	}
	return out, nil
}

// NetLoadVar is the variable name used by NetLoadVariables for index position i.
func NetLoadVar(i int) linear.Var {
	return linear.Var(fmt.Sprintf("net_load[%d]", i))
}

// Realize evaluates objective terms at solved variable values.
func Realize(terms map[string]linear.Expr, values map[linear.Var]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(terms))
	for name, expr := range terms {
		v, err := expr.Eval(values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
