package cp

import (
	"fmt"

	"cp-valuation/internal/linear"
)

// Weights returns the per-step objective coefficient over the window:
// StepWeight at marked steps, 0 elsewhere.
func (in *Instance) Weights(mask []bool) ([]float64, error) {
	if len(mask) != in.indicator.Len() {
		return nil, fmt.Errorf("%s: window mask has %d steps, indicator has %d", in.Name(), len(mask), in.indicator.Len())
	}
	sub := in.indicator.Restrict(mask)
	w := in.StepWeight()
	for i, v := range sub {
		sub[i] = v * w
	}
	return sub, nil
}

// Objective returns this instance's cost term for one optimization window,
// keyed by Name(), or an empty map when no step in the window is a CP hour.
//
// netLoad holds one expression per step inside the window, in index order.
// The term is annuityScalar * Σ weight_t * netLoad_t.
func (in *Instance) Objective(mask []bool, netLoad []linear.Expr, annuityScalar float64) (map[string]linear.Expr, error) {
	weights, err := in.Weights(mask)
	if err != nil {
		return nil, err
	}
	if len(netLoad) != len(weights) {
		return nil, fmt.Errorf("%s: net load has %d steps, window has %d", in.Name(), len(netLoad), len(weights))
	}

	if !in.anyMarked(mask) {
		return map[string]linear.Expr{}, nil
	}

	cost, err := linear.Dot(weights, netLoad)
	if err != nil {
		return nil, err
	}
	return map[string]linear.Expr{in.Name(): cost.Scale(annuityScalar)}, nil
}

func (in *Instance) anyMarked(mask []bool) bool {
	for i, ok := range mask {
		if ok && in.indicator.Values[i] > 0 {
			return true
		}
	}
	return false
}
