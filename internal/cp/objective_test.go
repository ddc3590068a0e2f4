package cp

import (
	"fmt"
	"testing"
	"time"

	"cp-valuation/internal/linear"
	"cp-valuation/internal/timeseries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constLoad(n int, kw float64) []linear.Expr {
	out := make([]linear.Expr, n)
	for i := range out {
		out[i] = linear.Const(kw)
	}
	return out
}

func monthMask(t *testing.T, index []time.Time, label string) []bool {
	t.Helper()
	windows, err := timeseries.Windows(index, "month")
	require.NoError(t, err)
	for _, w := range windows {
		if w.Label == label {
			return w.Mask
		}
	}
	t.Fatalf("no window %s", label)
	return nil
}

func TestObjectiveEmptyWhenWindowHasNoEvents(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)
	mask := monthMask(t, in.Indicator().Index, "2025-01")

	terms, err := in.Objective(mask, constLoad(744, 1000), 1)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestObjectiveSingleEventSubHourly(t *testing.T) {
	const rate, load = 10.0, 500.0
	in := newTestInstance(t, "solo", "Solo", rate, "2025-06-23:18", 15*time.Minute, 2025)
	mask := fullMask(in.Indicator().Len())

	terms, err := in.Objective(mask, constLoad(len(mask), load), 1)
	require.NoError(t, err)
	require.Contains(t, terms, "CP-solo")

	term := terms["CP-solo"]
	assert.Empty(t, term.Vars())
	assert.InDelta(t, rate*12*load, term.Constant, 1e-9)
}

func TestObjectiveCoefficientsOnVariables(t *testing.T) {
	const rate = 10.0
	in := newTestInstance(t, "solo", "Solo", rate, "2025-06-23:18", 15*time.Minute, 2025)
	index := in.Indicator().Index
	mask := monthMask(t, index, "2025-06")

	var netLoad []linear.Expr
	var marked []linear.Var
	n := 0
	for i, ok := range mask {
		if !ok {
			continue
		}
		v := linear.Var(fmt.Sprintf("net_load[%d]", n))
		netLoad = append(netLoad, linear.Variable(v))
		if index[i].Day() == 23 && index[i].Hour() == 17 {
			marked = append(marked, v)
		}
		n++
	}
	require.Len(t, marked, 4)

	terms, err := in.Objective(mask, netLoad, 2)
	require.NoError(t, err)
	term := terms["CP-solo"]
	require.Len(t, term.Vars(), 4)
	for _, v := range marked {
		assert.InDelta(t, 2*rate*12*0.25, term.Coeffs[v], 1e-12)
	}

	values := map[linear.Var]float64{}
	for _, v := range marked {
		values[v] = 300
	}
	got, err := term.Eval(values)
	require.NoError(t, err)
	assert.InDelta(t, 2*rate*12*300, got, 1e-9)
}

func TestObjectiveSplitsWeightAcrossEvents(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)
	assert.InDelta(t, 21.186*12/5, in.StepWeight(), 1e-12)

	mask := monthMask(t, in.Indicator().Index, "2025-07")
	terms, err := in.Objective(mask, constLoad(744, 1000), 1)
	require.NoError(t, err)
	// two of the five events fall in July
	assert.InDelta(t, 2*21.186*12/5*1000, terms["CP-pjm"].Constant, 1e-9)
}

func TestObjectiveZeroRateStillReturnsTerm(t *testing.T) {
	in := newTestInstance(t, "free", "Free", 0, "2025-06-23:18", time.Hour, 2025)
	terms, err := in.Objective(fullMask(8760), constLoad(8760, 1000), 1)
	require.NoError(t, err)
	require.Contains(t, terms, "CP-free")
	assert.True(t, terms["CP-free"].IsZero())
}

func TestObjectiveRejectsMismatchedLengths(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)

	_, err := in.Objective(make([]bool, 10), constLoad(10, 1), 1)
	assert.Error(t, err)

	_, err = in.Objective(fullMask(8760), constLoad(100, 1), 1)
	assert.Error(t, err)
}
