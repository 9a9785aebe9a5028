package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportRangeParams are the date bounds shared by every report. Both bounds
// are optional and inclusive.
type ReportRangeParams struct {
	From string `form:"from" json:"from"`
	To   string `form:"to" json:"to"`
}

// BalanceSheetParams adds the retained earnings carried into the period.
type BalanceSheetParams struct {
	ReportRangeParams
	RetainedEarningsOpening string `form:"retainedEarningsOpening" binding:"omitempty,money"`
}

// RetainedEarningsParams carries the caller supplied statement inputs.
// Dividends default to zero.
type RetainedEarningsParams struct {
	ReportRangeParams
	Opening   string `form:"opening" binding:"omitempty,money"`
	Dividends string `form:"dividends" binding:"omitempty,money"`
}

// SaveReportRequest asks for a report to be generated and archived.
type SaveReportRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=TRIAL_BALANCE INCOME_STATEMENT BALANCE_SHEET RETAINED_EARNINGS"`
	From      string `json:"from"`
	To        string `json:"to"`
	Opening   string `json:"opening" binding:"omitempty,money"`   // retained earnings opening
	Dividends string `json:"dividends" binding:"omitempty,money"` // retained earnings statement only
}

// SavedReportResponse is returned once a report has been archived.
type SavedReportResponse struct {
	ReportID string            `json:"reportID"`
	Kind     domain.ReportKind `json:"kind"`
	Range    domain.DateRange  `json:"range"`
	Payload  any               `json:"payload"`
	SavedBy  string            `json:"savedBy"`
	SavedAt  time.Time         `json:"savedAt"`
}

// ToSavedReportResponse converts a domain.SavedReport.
func ToSavedReportResponse(r *domain.SavedReport) SavedReportResponse {
	return SavedReportResponse{
		ReportID: r.ReportID,
		Kind:     r.Kind,
		Range:    r.Range,
		Payload:  r.Payload,
		SavedBy:  r.SavedBy,
		SavedAt:  r.SavedAt,
	}
}
