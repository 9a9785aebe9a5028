package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// ReportingService defines operations for generating financial reports.
// Reports are best-effort point-in-time views; generating one has no side
// effects and can always be repeated.
type ReportingService interface {
	// TrialBalance lists every account's ending balance split into debit and credit columns.
	TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error)

	// IncomeStatement reports revenue, expenses and net income for the range.
	IncomeStatement(ctx context.Context, r domain.DateRange) (*domain.IncomeStatement, error)

	// BalanceSheet reports assets, liabilities and equity, folding
	// retainedEarningsOpening plus the period's net income into equity.
	BalanceSheet(ctx context.Context, r domain.DateRange, retainedEarningsOpening domain.Money) (*domain.BalanceSheet, error)

	// RetainedEarnings rolls retained earnings forward with the period's net income.
	RetainedEarnings(ctx context.Context, r domain.DateRange, opening, dividends domain.Money) (*domain.RetainedEarningsStatement, error)

	// SaveReport generates a report and hands it unchanged to the report archive.
	SaveReport(ctx context.Context, req dto.SaveReportRequest, actingUser string) (*domain.SavedReport, error)
}
