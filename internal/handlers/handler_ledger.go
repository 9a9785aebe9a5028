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

// ledgerHandler serves read-only views over posted ledger lines.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ls portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the ledger detail routes under the account
// and journal resources they describe.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/accounts/:accountID/ledger", h.getAccountLedger)
	rg.GET("/journals/:journalID/postings", h.listPostings)
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Lists an account's posted lines in the range with the running balance after each
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "Start date (YYYY-MM-DD or RFC 3339)"
// @Param   to query string false "End date, inclusive"
// @Success 200 {object} domain.AccountLedger
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to load account ledger"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ledger, err := h.ledgerService.AccountLedger(c.Request.Context(), accountID, parseRange(logger, params))
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to load account ledger")
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// listPostings godoc
// @Summary Ledger lines of a journal entry
// @Description Lists the ledger lines posted for one journal entry
// @Tags ledger
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {array} dto.LedgerLineResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load postings"
// @Security BearerAuth
// @Router /journals/{journalID}/postings [get]
func (h *ledgerHandler) listPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	lines, err := h.ledgerService.JournalPostings(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to load postings")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerLineResponses(lines))
}

// parseRange resolves optional date bounds. A malformed bound is logged and
// treated as unbounded.
func parseRange(logger *slog.Logger, params dto.ReportRangeParams) domain.DateRange {
	r, err := domain.ParseDateRange(params.From, params.To)
	if err != nil {
		logger.Warn("Ignoring invalid date range", slog.String("error", err.Error()))
	}
	return r
}
