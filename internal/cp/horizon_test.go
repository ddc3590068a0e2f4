package cp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowDropDataAddsZeroFilledYears(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)
	before := in.Indicator()

	require.NoError(t, in.GrowDropData([]int{2025, 2026}, time.Hour, 0))
	ind := in.Indicator()

	assert.Equal(t, []int{2025, 2026}, ind.Years())
	assert.Len(t, ind.Values, 8760*2)
	assert.Equal(t, 5.0, ind.Year(2025).Sum())
	assert.Equal(t, 0.0, ind.Year(2026).Sum())
	assert.Len(t, ind.Year(2026).Values, 8760)

	// existing year is untouched
	assert.Equal(t, before.Values, ind.Year(2025).Values)
	assert.Equal(t, before.Index, ind.Year(2025).Index)
}

func TestGrowDropDataIsIdempotent(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, 15*time.Minute, 2025)

	require.NoError(t, in.GrowDropData([]int{2026, 2025}, 15*time.Minute, 1.5))
	first := in.Indicator()
	require.NoError(t, in.GrowDropData([]int{2025, 2026}, 15*time.Minute, 1.5))
	second := in.Indicator()

	assert.Equal(t, first, second)
}

func TestGrowDropDataDropsUnrequestedYears(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2024, 2025)

	require.NoError(t, in.GrowDropData([]int{2025}, time.Hour, 0))
	ind := in.Indicator()
	assert.Equal(t, []int{2025}, ind.Years())
	assert.Equal(t, 5.0, ind.Sum())
}

func TestGrowDropDataKeepsTimeOrder(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)

	require.NoError(t, in.GrowDropData([]int{2024, 2025, 2026}, time.Hour, 0))
	ind := in.Indicator()
	require.Len(t, ind.Index, 8784+8760+8760)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ind.Index[0])
	for i := 1; i < len(ind.Index); i++ {
		require.True(t, ind.Index[i-1].Before(ind.Index[i]), "index out of order at %d", i)
	}
}

func TestGrowDropDataRequiresYears(t *testing.T) {
	in := newTestInstance(t, "pjm", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)
	assert.Error(t, in.GrowDropData(nil, time.Hour, 0))
}
