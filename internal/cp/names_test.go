package cp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDerivedNames(t *testing.T) {
	in := newTestInstance(t, "pjm_5cp", "PJM 5CP", 21.186, pjm2025, time.Hour, 2025)

	assert.Equal(t, "CP-pjm_5cp", in.Name())
	assert.Equal(t, "CP-pjm_5cp Indicator", in.IndicatorColumn())
	assert.Equal(t, "Avoided CP Charges (pjm 5cp)", in.ProformaColumn())
	assert.Equal(t, "cp_event_detail_pjm_5cp", in.DetailArtifact())
	assert.True(t, strings.HasPrefix(in.DetailArtifact(), DetailArtifactPrefix()))
}

func TestDerivedNamesWithoutID(t *testing.T) {
	in := newTestInstance(t, "", "Default", 1, pjm2025, time.Hour, 2025)

	assert.Equal(t, "CP", in.Name())
	assert.Equal(t, "CP Indicator", in.IndicatorColumn())
	assert.Equal(t, "cp_event_detail", in.DetailArtifact())
}

func TestNewInstanceRequiresEvents(t *testing.T) {
	_, err := NewInstance(Params{ID: "x", MonthlyRate: 1}, nil, time.Hour, nil)
	assert.ErrorIs(t, err, ErrNoEvents)
}
