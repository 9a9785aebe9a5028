package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers routes related to financial reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/retained-earnings", h.getRetainedEarnings)
		reportingGroup.POST("/saved", h.saveReport)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account's ending balance in debit and credit columns for the range
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive"
// @Success 200 {object} domain.TrialBalance
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), parseRange(logger, params))
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}

	logger.Info("Trial balance generated", slog.Bool("balanced", report.Balanced))
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Reports revenue, expenses and net income for the range
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive"
// @Success 200 {object} domain.IncomeStatement
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), parseRange(logger, params))
	if err != nil {
		respondError(c, logger, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Reports assets, liabilities and equity with retained earnings folded into equity
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive"
// @Param retainedEarningsOpening query string false "Retained earnings carried into the period" default(0)
// @Success 200 {object} domain.BalanceSheet
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(
		c.Request.Context(),
		parseRange(logger, params.ReportRangeParams),
		domain.ParseMoney(params.RetainedEarningsOpening),
	)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getRetainedEarnings godoc
// @Summary Generate retained earnings statement
// @Description Rolls retained earnings forward: opening plus net income minus dividends
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive"
// @Param opening query string false "Opening retained earnings" default(0)
// @Param dividends query string false "Dividends declared in the period" default(0)
// @Success 200 {object} domain.RetainedEarningsStatement
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/retained-earnings [get]
func (h *reportingHandler) getRetainedEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.RetainedEarningsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.RetainedEarnings(
		c.Request.Context(),
		parseRange(logger, params.ReportRangeParams),
		domain.ParseMoney(params.Opening),
		domain.ParseMoney(params.Dividends),
	)
	if err != nil {
		respondError(c, logger, err, "Failed to generate retained earnings statement")
		return
	}

	c.JSON(http.StatusOK, report)
}

// saveReport godoc
// @Summary Generate and archive a report
// @Description Generates the requested report and stores it unchanged in the report archive
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.SaveReportRequest true "Report kind and inputs"
// @Success 201 {object} dto.SavedReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save report"
// @Failure 501 {object} map[string]string "Report archive not configured"
// @Security BearerAuth
// @Router /reports/saved [post]
func (h *reportingHandler) saveReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	saved, err := h.reportingService.SaveReport(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to save report")
		return
	}

	logger.Info("Report saved", slog.String("report_id", saved.ReportID), slog.String("kind", string(saved.Kind)))
	c.JSON(http.StatusCreated, dto.ToSavedReportResponse(saved))
}
