package cp

import (
	"testing"
	"time"

	"cp-valuation/internal/logger"
	"cp-valuation/internal/timeseries"

	"github.com/stretchr/testify/require"
)

const pjm2025 = "2025-06-23:18,2025-06-24:18,2025-06-25:15,2025-07-28:18,2025-07-29:18"

func mustEvents(t *testing.T, s string) []Event {
	t.Helper()
	events, err := ParseEvents(s)
	require.NoError(t, err)
	return events
}

func newTestInstance(t *testing.T, id, label string, rate float64, dates string, step time.Duration, years ...int) *Instance {
	t.Helper()
	index, err := timeseries.Index(years, step, time.UTC)
	require.NoError(t, err)
	in, err := NewInstance(Params{
		ID:            id,
		Label:         label,
		MonthlyRate:   rate,
		GrowthPercent: 3,
		Events:        mustEvents(t, dates),
	}, index, step, logger.Nop())
	require.NoError(t, err)
	return in
}

func fullMask(n int) []bool {
	m := make([]bool, n)
	for i := range m {
		m[i] = true
	}
	return m
}
