package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cp-valuation/internal/api/models"
	"cp-valuation/internal/config"
	"cp-valuation/internal/cp"
	"cp-valuation/internal/logger"
	"cp-valuation/internal/registry"
	"cp-valuation/internal/valuation"

	"github.com/gin-gonic/gin"
)

// CPHandler serves the CP parsing, calendar, objective and report endpoints.
type CPHandler struct {
	log *logger.Logger
}

// NewCPHandler creates a new CP handler
func NewCPHandler(log *logger.Logger) *CPHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CPHandler{log: log}
}

// ParseDates handles POST /api/v1/cp/parse
func (h *CPHandler) ParseDates(c *gin.Context) {
	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	events, err := cp.ParseEvents(req.CPDates)
	if err != nil {
		badRequest(c, "INVALID_CP_DATES", err)
		return
	}
	c.JSON(http.StatusOK, models.ParseResponse{
		Events:    eventInfos(events),
		Count:     len(events),
		Canonical: cp.FormatEvents(events),
	})
}

// ListUtilities handles GET /api/v1/cp/calendar/:year
func (h *CPHandler) ListUtilities(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	utils, err := registry.Utilities(year)
	if err != nil {
		calendarError(c, err)
		return
	}
	names := make([]string, 0, len(utils))
	for _, u := range utils {
		names = append(names, string(u))
	}
	c.JSON(http.StatusOK, models.UtilitiesResponse{Year: year, Utilities: names})
}

// GetCalendar handles GET /api/v1/cp/calendar/:year/:utility
func (h *CPHandler) GetCalendar(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	utility := registry.Utility(c.Param("utility"))
	events, err := registry.Lookup(year, utility)
	if err != nil {
		calendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CalendarResponse{
		Year:    year,
		Utility: string(utility),
		Events:  eventInfos(events),
		CPDates: cp.FormatEvents(events),
	})
}

// Objective handles POST /api/v1/cp/objective
func (h *CPHandler) Objective(c *gin.Context) {
	var req models.ObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	engine, ok := h.buildEngine(c, req.Scenario, req.CP)
	if !ok {
		return
	}
	plan, err := engine.Plan(valuation.NetLoadVariables)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "OBJECTIVE_ERROR", Message: err.Error()},
		})
		return
	}

	resp := models.ObjectiveResponse{Windows: make([]models.WindowSummary, 0, len(plan))}
	for _, w := range plan {
		ws := models.WindowSummary{Window: w.Window, Steps: w.Steps}
		for _, s := range valuation.SummarizeTerms(w.Terms) {
			ws.Terms = append(ws.Terms, models.TermSummary{
				Name:             s.Name,
				Constant:         s.Constant,
				Variables:        s.Variables,
				CoefficientTotal: s.CoefficientTotal,
			})
		}
		resp.Windows = append(resp.Windows, ws)
	}
	c.JSON(http.StatusOK, resp)
}

// Report handles POST /api/v1/cp/report
func (h *CPHandler) Report(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	engine, ok := h.buildEngine(c, req.Scenario, req.CP)
	if !ok {
		return
	}
	if len(req.HorizonYears) > 0 {
		if err := engine.SetHorizon(req.HorizonYears); err != nil {
			badRequest(c, "INVALID_HORIZON", err)
			return
		}
	}
	results, err := req.Results.ToResults()
	if err != nil {
		badRequest(c, "INVALID_RESULTS", err)
		return
	}
	res, err := engine.Report(results)
	if err != nil {
		h.log.WithError(err).Error("CPHandler: report failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "REPORT_ERROR", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, buildReportResponse(engine, res))
}

func (h *CPHandler) buildEngine(c *gin.Context, sc models.ScenarioConfig, entries []models.CPConfig) (*valuation.Engine, bool) {
	cfg := buildConfig(sc, entries)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		code := "INVALID_CONFIG"
		var fe *cp.FormatError
		if errors.As(err, &fe) {
			code = "INVALID_CP_DATES"
		}
		badRequest(c, code, err)
		return nil, false
	}
	engine, err := valuation.New(cfg, h.log)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err)
		return nil, false
	}
	return engine, true
}

func buildConfig(sc models.ScenarioConfig, entries []models.CPConfig) *config.Config {
	cfg := &config.Config{
		Scenario: config.ScenarioConfig{
			OptYears:      sc.OptYears,
			EndYear:       sc.EndYear,
			Frequency:     sc.Frequency,
			Timezone:      sc.Timezone,
			Window:        sc.Window,
			AnnuityScalar: sc.AnnuityScalar,
			LoadGrowth:    sc.LoadGrowth,
		},
	}
	for _, e := range entries {
		cfg.CP = append(cfg.CP, config.CPConfig{
			ID:          e.ID,
			Label:       e.Label,
			RateMonthly: e.RateMonthly,
			Dates:       e.CPDates,
			Growth:      e.Growth,
			Active:      e.Active,
		})
	}
	return cfg
}

func buildReportResponse(engine *valuation.Engine, res *valuation.Result) models.ReportResponse {
	resp := models.ReportResponse{
		DrillDown: map[string][]models.DrillDownRow{},
	}
	for _, in := range engine.Instances() {
		ind := in.Indicator()
		resp.Instances = append(resp.Instances, models.InstanceSummary{
			Name:            in.Name(),
			IndicatorColumn: in.IndicatorColumn(),
			ProformaColumn:  in.ProformaColumn(),
			DetailArtifact:  in.DetailArtifact(),
			Events:          in.NumEvents(),
			MarkedSteps:     ind.Marked(),
		})
	}
	for artifact, rows := range res.DrillDown {
		out := make([]models.DrillDownRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, models.DrillDownRow{
				Type:          r.Label,
				Date:          r.Date.String(),
				HourEnding:    r.HourEnding,
				OriginalLoad:  r.OriginalLoad,
				OptimizedLoad: r.OptimizedLoad,
				Reduction:     r.Reduction,
			})
		}
		resp.DrillDown[artifact] = out
	}
	for i, y := range res.Proforma.Years {
		row := models.ProformaRow{Year: y, Charges: map[string]float64{}}
		for _, col := range res.Proforma.Columns {
			row.Charges[col.Name] = col.Values[i]
		}
		resp.Proforma = append(resp.Proforma, row)
	}
	return resp
}

func eventInfos(events []cp.Event) []models.EventInfo {
	out := make([]models.EventInfo, 0, len(events))
	for _, e := range events {
		out = append(out, models.EventInfo{Date: e.Date.String(), HourEnding: e.HourEnding})
	}
	return out
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "INVALID_YEAR", err)
		return 0, false
	}
	return year, true
}

func calendarError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrNoData) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_CALENDAR_DATA", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
	})
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}
