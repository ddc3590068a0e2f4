package models

// EventInfo is one parsed CP event.
type EventInfo struct {
	Date       string `json:"date"` // YYYY-MM-DD
	HourEnding int    `json:"hour_ending"`
}

// ParseResponse is the result of parsing a cp_dates string.
type ParseResponse struct {
	Events    []EventInfo `json:"events"`
	Count     int         `json:"count"`
	Canonical string      `json:"canonical"`
}

// CalendarResponse is one utility's reference CP calendar for a year.
type CalendarResponse struct {
	Year    int         `json:"year"`
	Utility string      `json:"utility"`
	Events  []EventInfo `json:"events"`
	CPDates string      `json:"cp_dates"`
}

// UtilitiesResponse lists the utilities with reference data for a year.
type UtilitiesResponse struct {
	Year      int      `json:"year"`
	Utilities []string `json:"utilities"`
}

// TermSummary describes one objective term without its full coefficient map.
type TermSummary struct {
	Name             string  `json:"name"`
	Constant         float64 `json:"constant"`
	Variables        int     `json:"variables"`
	CoefficientTotal float64 `json:"coefficient_total"`
}

// WindowSummary is the objective contribution of one optimization window.
type WindowSummary struct {
	Window string        `json:"window"`
	Steps  int           `json:"steps"`
	Terms  []TermSummary `json:"terms,omitempty"`
}

// ObjectiveResponse lists every window's contribution.
type ObjectiveResponse struct {
	Windows []WindowSummary `json:"windows"`
}

// DrillDownRow is one CP event's realized load.
type DrillDownRow struct {
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	HourEnding    int     `json:"hour_ending"`
	OriginalLoad  float64 `json:"original_load_kw"`
	OptimizedLoad float64 `json:"optimized_load_kw"`
	Reduction     float64 `json:"reduction_kw"`
}

// ProformaRow is one year of avoided charges keyed by proforma column.
type ProformaRow struct {
	Year    int                `json:"year"`
	Charges map[string]float64 `json:"charges"`
}

// InstanceSummary describes one CP instance in a report.
type InstanceSummary struct {
	Name            string `json:"name"`
	IndicatorColumn string `json:"indicator_column"`
	ProformaColumn  string `json:"proforma_column"`
	DetailArtifact  string `json:"detail_artifact"`
	Events          int    `json:"events"`
	MarkedSteps     int    `json:"marked_steps"`
}

// ReportResponse is the attribution output of a realized run.
type ReportResponse struct {
	Instances []InstanceSummary         `json:"instances"`
	DrillDown map[string][]DrillDownRow `json:"drill_down"`
	Proforma  []ProformaRow             `json:"proforma"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
