package models

import "cp-valuation/internal/data"

// ParseRequest asks for a cp_dates string to be parsed.
type ParseRequest struct {
	CPDates string `json:"cp_dates" binding:"required"`
}

// ScenarioConfig mirrors the YAML scenario block.
type ScenarioConfig struct {
	OptYears      []int   `json:"opt_years" binding:"required"`
	EndYear       int     `json:"end_year,omitempty"`
	Frequency     string  `json:"frequency,omitempty"` // default: 1h
	Timezone      string  `json:"timezone,omitempty"`  // default: UTC
	Window        string  `json:"window,omitempty"`    // year | month | hours
	AnnuityScalar float64 `json:"annuity_scalar,omitempty"`
	LoadGrowth    float64 `json:"load_growth,omitempty"`
}

// CPConfig mirrors one YAML cp entry.
type CPConfig struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	RateMonthly float64 `json:"rate_monthly"`
	CPDates     string  `json:"cp_dates"`
	Growth      float64 `json:"growth"`
	Active      *bool   `json:"active,omitempty"`
}

// ObjectiveRequest asks for the per-window objective terms of a scenario.
type ObjectiveRequest struct {
	Scenario ScenarioConfig `json:"scenario" binding:"required"`
	CP       []CPConfig     `json:"cp" binding:"required"`
}

// ReportRequest carries a scenario plus the optimizer's realized loads.
type ReportRequest struct {
	Scenario ScenarioConfig       `json:"scenario" binding:"required"`
	CP       []CPConfig           `json:"cp" binding:"required"`
	Results  data.ResultsDocument `json:"results" binding:"required"`
	// HorizonYears, when set, adapts every instance to these years before reporting.
	HorizonYears []int `json:"horizon_years,omitempty"`
}
