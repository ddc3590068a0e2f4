package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cp-valuation/internal/api/models"
	"cp-valuation/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	NewRouter(logger.Nop(), nil).ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	w := do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestParseDates(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/cp/parse", map[string]string{"cp_dates": " 2025-06-23:18, ,2025-06-25:15 "})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ParseResponse](t, w)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "2025-06-23:18,2025-06-25:15", resp.Canonical)
	assert.Equal(t, models.EventInfo{Date: "2025-06-25", HourEnding: 15}, resp.Events[1])
}

func TestParseDatesRejectsBadEntry(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/cp/parse", map[string]string{"cp_dates": "2025-06-23:25"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CP_DATES", decode[models.ErrorResponse](t, w).Error.Code)

	w = do(t, http.MethodPost, "/api/v1/cp/parse", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestCalendar(t *testing.T) {
	w := do(t, http.MethodGet, "/api/v1/cp/calendar/2025/PJM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cal := decode[models.CalendarResponse](t, w)
	assert.Len(t, cal.Events, 5)
	assert.Equal(t, "2025-06-23:18,2025-06-24:18,2025-06-25:15,2025-07-28:18,2025-07-29:18", cal.CPDates)

	w = do(t, http.MethodGet, "/api/v1/cp/calendar/2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[models.UtilitiesResponse](t, w).Utilities, "jcpl_5cp")

	w = do(t, http.MethodGet, "/api/v1/cp/calendar/2023/pjm", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NO_CALENDAR_DATA", decode[models.ErrorResponse](t, w).Error.Code)

	w = do(t, http.MethodGet, "/api/v1/cp/calendar/soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var pjmEntry = models.CPConfig{
	ID:          "pjm_5cp",
	Label:       "PJM 5CP",
	RateMonthly: 21.186,
	CPDates:     "2025-06-23:18,2025-06-24:18,2025-06-25:15,2025-07-28:18,2025-07-29:18",
	Growth:      3,
}

func TestObjective(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/cp/objective", models.ObjectiveRequest{
		Scenario: models.ScenarioConfig{OptYears: []int{2025}},
		CP:       []models.CPConfig{pjmEntry},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ObjectiveResponse](t, w)
	require.Len(t, resp.Windows, 12)
	june := resp.Windows[5]
	require.Len(t, june.Terms, 1)
	assert.Equal(t, "CP-pjm_5cp", june.Terms[0].Name)
	assert.Equal(t, 3, june.Terms[0].Variables)
	assert.InDelta(t, 3*21.186*12/5, june.Terms[0].CoefficientTotal, 1e-9)
	assert.Empty(t, resp.Windows[0].Terms)
}

func TestObjectiveRejectsBadDates(t *testing.T) {
	bad := pjmEntry
	bad.CPDates = "2025-06-23"
	w := do(t, http.MethodPost, "/api/v1/cp/objective", models.ObjectiveRequest{
		Scenario: models.ScenarioConfig{OptYears: []int{2025}},
		CP:       []models.CPConfig{bad},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CP_DATES", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestReport(t *testing.T) {
	body := map[string]interface{}{
		"scenario": map[string]interface{}{"opt_years": []int{2025}, "end_year": 2026},
		"cp":       []models.CPConfig{pjmEntry},
		"results": map[string]interface{}{
			"rows": []map[string]interface{}{
				{"timestamp": "2025-06-23T17:00:00Z", "original_load_kw": 1000, "net_load_kw": 800},
				{"timestamp": "2025-06-24T17:00:00Z", "original_load_kw": 1000, "net_load_kw": 800},
				{"timestamp": "2025-06-25T14:00:00Z", "original_load_kw": 1000, "net_load_kw": 800},
				{"timestamp": "2025-07-28T17:00:00Z", "original_load_kw": 1000, "net_load_kw": 800},
				{"timestamp": "2025-07-29T17:00:00Z", "original_load_kw": 1000, "net_load_kw": 800},
			},
		},
	}
	w := do(t, http.MethodPost, "/api/v1/cp/report", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.ReportResponse](t, w)
	require.Len(t, resp.Instances, 1)
	assert.Equal(t, "cp_event_detail_pjm_5cp", resp.Instances[0].DetailArtifact)
	assert.Equal(t, 5, resp.Instances[0].MarkedSteps)

	rows := resp.DrillDown["cp_event_detail_pjm_5cp"]
	require.Len(t, rows, 5)
	assert.Equal(t, 200.0, rows[0].Reduction)

	require.Len(t, resp.Proforma, 2)
	col := "Avoided CP Charges (pjm 5cp)"
	assert.InDelta(t, 50846.4, resp.Proforma[0].Charges[col], 1e-6)
	assert.InDelta(t, 50846.4*1.03, resp.Proforma[1].Charges[col], 1e-6)
}

func TestReportRejectsBadScenario(t *testing.T) {
	body := map[string]interface{}{
		"scenario":      map[string]interface{}{"opt_years": []int{2025}, "frequency": "fortnightly"},
		"cp":            []models.CPConfig{pjmEntry},
		"results":       map[string]interface{}{"rows": []interface{}{}},
		"horizon_years": []int{2025},
	}
	w := do(t, http.MethodPost, "/api/v1/cp/report", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CONFIG", decode[models.ErrorResponse](t, w).Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cp/parse", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	NewRouter(logger.Nop(), nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestObjectiveRejectsSubMinuteFrequency(t *testing.T) {
	w := do(t, http.MethodPost, "/api/v1/cp/objective", models.ObjectiveRequest{
		Scenario: models.ScenarioConfig{OptYears: []int{2025}, Frequency: "1ns"},
		CP:       []models.CPConfig{pjmEntry},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CONFIG", decode[models.ErrorResponse](t, w).Error.Code)
}
