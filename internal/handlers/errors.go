package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrPosting):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrReference),
		errors.Is(err, apperrors.ErrRange):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &appErr) && appErr.Code > 0:
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Server errors are logged
// and replaced by fallback so storage details never reach the client.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)

	var postingErr *apperrors.PostingError
	if errors.As(err, &postingErr) {
		logger.Error("Ledger posting failed",
			slog.String("journal_id", postingErr.JournalID),
			slog.Any("pending_lines", postingErr.PendingLines),
			slog.String("error", err.Error()))
		c.JSON(status, gin.H{
			"error":        "Ledger posting failed; retry posting to complete it",
			"journalID":    postingErr.JournalID,
			"pendingLines": postingErr.PendingLines,
		})
		return
	}

	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}

	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	body := gin.H{"error": err.Error()}
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		body["rule"] = validationErr.Rule
	}
	var refErr *apperrors.ReferenceError
	if errors.As(err, &refErr) {
		body["rule"] = refErr.Rule
	}
	c.JSON(status, body)
}

// actingUser resolves the authenticated user or aborts with 401.
func actingUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
