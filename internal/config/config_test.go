package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cp-valuation/internal/cp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
scenario:
  opt_years: [2025]
cp:
  - id: pjm
    rate_monthly: 21.186
    cp_dates: "2025-06-23:18,2025-06-24:18"
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "1h", c.Scenario.Frequency)
	assert.Equal(t, "UTC", c.Scenario.Timezone)
	assert.Equal(t, "month", c.Scenario.Window)
	assert.Equal(t, 1.0, c.Scenario.AnnuityScalar)
	assert.Equal(t, 2025, c.Scenario.EndYear)

	step, err := c.Scenario.Step()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, step)

	p, err := c.CP[0].ToParams()
	require.NoError(t, err)
	assert.Equal(t, "pjm", p.Label)
	assert.Len(t, p.Events, 2)
	assert.True(t, c.CP[0].IsActive())
}

func TestLoadMergesCPFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cp/pjm.yaml", `
cp:
  - id: pjm
    label: PJM 5CP
    rate_monthly: 21.186
    cp_dates: "2025-06-23:18"
    growth: 3
  - id: pseg
    rate_monthly: 5
    cp_dates: "2025-06-24:19"
`)
	path := writeFile(t, dir, "config.yaml", `
scenario:
  opt_years: [2025]
  end_year: 2030
cp_file: cp/pjm.yaml
cp:
  - id: pjm
    rate_monthly: 25
  - id: jcpl
    cp_dates: "2025-06-24:18"
    active: false
`)
	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.CP, 3)

	assert.Equal(t, "pjm", c.CP[0].ID)
	assert.Equal(t, 25.0, c.CP[0].RateMonthly)
	assert.Equal(t, "PJM 5CP", c.CP[0].Label)
	assert.Equal(t, 3.0, c.CP[0].Growth)
	assert.Equal(t, "2025-06-23:18", c.CP[0].Dates)

	assert.Equal(t, "pseg", c.CP[1].ID)
	assert.Equal(t, "jcpl", c.CP[2].ID)
	assert.False(t, c.CP[2].IsActive())
}

func TestLoadMissingCPFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
scenario:
  opt_years: [2025]
cp_file: nope.yaml
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no opt years", "scenario: {}\n"},
		{"bad frequency", "scenario: {opt_years: [2025], frequency: 7m}\n"},
		{"sub-minute frequency", "scenario: {opt_years: [2025], frequency: 1ns}\n"},
		{"second frequency", "scenario: {opt_years: [2025], frequency: 1s}\n"},
		{"proforma too long", "scenario: {opt_years: [2025], end_year: 2200}\n"},
		{"bad timezone", "scenario: {opt_years: [2025], timezone: Mars/Olympus}\n"},
		{"end before opt", "scenario: {opt_years: [2025], end_year: 2024}\n"},
		{"duplicate id", "scenario: {opt_years: [2025]}\ncp:\n  - {id: a, cp_dates: '2025-06-23:18'}\n  - {id: a, cp_dates: '2025-06-23:18'}\n"},
		{"negative rate", "scenario: {opt_years: [2025]}\ncp:\n  - {id: a, rate_monthly: -1, cp_dates: '2025-06-23:18'}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			c.ApplyDefaults()
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidateReportsEventFormatErrors(t *testing.T) {
	c, err := Parse([]byte("scenario: {opt_years: [2025]}\ncp:\n  - {id: a, cp_dates: '2025-06-23:25'}\n"))
	require.NoError(t, err)
	c.ApplyDefaults()

	err = c.Validate()
	var fe *cp.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "2025-06-23:25", fe.Entry)
}

func TestEmptyDatesAreNotAnError(t *testing.T) {
	p, err := CPConfig{ID: "later"}.ToParams()
	require.NoError(t, err)
	assert.Empty(t, p.Events)
}

func TestValidateBoundsOptYears(t *testing.T) {
	c := &Config{}
	for y := 2000; y <= 2060; y++ {
		c.Scenario.OptYears = append(c.Scenario.OptYears, y)
	}
	c.ApplyDefaults()
	assert.Error(t, c.Validate())

	c.Scenario.OptYears = c.Scenario.OptYears[:10]
	c.Scenario.EndYear = 2030
	assert.NoError(t, c.Validate())
}
