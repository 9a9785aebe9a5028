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

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// RegisterJournalRoutes registers the journal workflow routes. Approval,
// rejection and posting retries require a reviewer role.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)
	canApprove := middleware.RequireRole(domain.Role.CanApprove)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.submitJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/approve", canApprove, h.approveJournal)
		journals.POST("/:journalID/reject", canApprove, h.rejectJournal)
		journals.POST("/:journalID/retry-posting", canApprove, h.retryPosting)
	}
}

// submitJournal godoc
// @Summary Submit a journal entry
// @Description Validates a draft entry and stores it as pending approval. Accepts either lines[] or the debits[]/credits[] pair.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.SubmitJournalRequest true "Journal entry"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to submit journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) submitJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.SubmitJournal(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit journal")
		return
	}

	logger.Info("Journal submitted", slog.String("journal_id", entry.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

// getJournal godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines and workflow state
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	entry, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// listJournals godoc
// @Summary List journal entries
// @Description Lists journal entries newest first with token-based pagination
// @Tags journals
// @Produce  json
// @Param   status query string false "PENDING, APPROVED or REJECTED"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date, inclusive"
// @Param   accountID query string false "Only entries touching this account"
// @Param   search query string false "Matches the description"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// approveJournal godoc
// @Summary Approve a journal entry
// @Description Approves a pending entry and posts it to the ledger. A second approval is refused.
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Entry no longer balances"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not pending"
// @Failure 502 {object} map[string]string "Approved but ledger posting failed"
// @Security BearerAuth
// @Router /journals/{journalID}/approve [post]
func (h *journalHandler) approveJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.ApproveJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to approve journal")
		return
	}

	logger.Info("Journal approved", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// rejectJournal godoc
// @Summary Reject a journal entry
// @Description Rejects a pending entry with a reason. Rejection is final.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   rejection body dto.RejectJournalRequest true "Rejection reason"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not pending"
// @Security BearerAuth
// @Router /journals/{journalID}/reject [post]
func (h *journalHandler) rejectJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.RejectJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.RejectJournal(c.Request.Context(), journalID, req.Reason, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to reject journal")
		return
	}

	logger.Info("Journal rejected", slog.String("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// retryPosting godoc
// @Summary Retry ledger posting
// @Description Writes the ledger lines still missing for an approved entry
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal is not approved or already posted"
// @Failure 502 {object} map[string]string "Ledger posting failed again"
// @Security BearerAuth
// @Router /journals/{journalID}/retry-posting [post]
func (h *journalHandler) retryPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	userID, ok := actingUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.RetryPosting(c.Request.Context(), journalID, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to retry posting")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}
