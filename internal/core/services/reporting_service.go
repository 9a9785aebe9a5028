package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
	archive     portsrepo.ReportArchive
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportArchive enables SaveReport.
func WithReportArchive(archive portsrepo.ReportArchive) ReportingServiceOption {
	return func(s *reportingService) {
		s.archive = archive
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// balances loads the chart and the whole ledger and folds them over r.
func (s *reportingService) balances(ctx context.Context, r domain.DateRange) (domain.Balances, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for report")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	lines, err := s.ledgerRepo.ListLedgerLines(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines for report")
		return nil, fmt.Errorf("failed to load ledger lines: %w", err)
	}
	return accounting.ComputeBalances(accounts, lines, r), nil
}

// TrialBalance generates a trial balance over the range. An unbalanced
// result is returned as is and logged.
func (s *reportingService) TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error) {
	b, err := s.balances(ctx, r)
	if err != nil {
		return nil, err
	}
	tb := accounting.TrialBalance(b, r)
	if !tb.Balanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()),
			slog.String("difference", tb.Difference.String()))
	}
	return &tb, nil
}

// IncomeStatement generates an income statement for the range.
func (s *reportingService) IncomeStatement(ctx context.Context, r domain.DateRange) (*domain.IncomeStatement, error) {
	b, err := s.balances(ctx, r)
	if err != nil {
		return nil, err
	}
	is := accounting.IncomeStatement(b, r)
	return &is, nil
}

// BalanceSheet generates a balance sheet, taking net income from the same balances.
func (s *reportingService) BalanceSheet(ctx context.Context, r domain.DateRange, retainedEarningsOpening domain.Money) (*domain.BalanceSheet, error) {
	b, err := s.balances(ctx, r)
	if err != nil {
		return nil, err
	}
	netIncome := accounting.IncomeStatement(b, r).NetIncome
	bs := accounting.BalanceSheet(b, r, retainedEarningsOpening, netIncome)
	if !bs.Assets.Equal(bs.LiabilitiesAndEquity) {
		s.LogDebug(ctx, "Balance sheet sides differ",
			slog.String("assets", bs.Assets.String()),
			slog.String("liabilities_and_equity", bs.LiabilitiesAndEquity.String()))
	}
	return &bs, nil
}

// RetainedEarnings generates a retained earnings statement for the range.
func (s *reportingService) RetainedEarnings(ctx context.Context, r domain.DateRange, opening, dividends domain.Money) (*domain.RetainedEarningsStatement, error) {
	b, err := s.balances(ctx, r)
	if err != nil {
		return nil, err
	}
	netIncome := accounting.IncomeStatement(b, r).NetIncome
	re := accounting.RetainedEarningsStatement(r, opening, netIncome, dividends)
	return &re, nil
}

// SaveReport generates the requested report and archives it unchanged.
func (s *reportingService) SaveReport(ctx context.Context, req dto.SaveReportRequest, actingUser string) (*domain.SavedReport, error) {
	if s.archive == nil {
		return nil, apperrors.NewAppError(http.StatusNotImplemented, "report archive is not configured", nil)
	}
	kind, ok := domain.ParseReportKind(req.Kind)
	if !ok {
		return nil, apperrors.NewValidationError(apperrors.RuleInput, "Unknown report kind %q.", req.Kind)
	}
	r, err := domain.ParseDateRange(req.From, req.To)
	if err != nil {
		s.LogWarn(ctx, "Ignoring malformed report date filter", slog.String("error", err.Error()))
	}
	opening := domain.ParseMoney(req.Opening)
	dividends := domain.ParseMoney(req.Dividends)

	var payload any
	switch kind {
	case domain.ReportTrialBalance:
		payload, err = s.TrialBalance(ctx, r)
	case domain.ReportIncomeStatement:
		payload, err = s.IncomeStatement(ctx, r)
	case domain.ReportBalanceSheet:
		payload, err = s.BalanceSheet(ctx, r, opening)
	case domain.ReportRetainedEarnings:
		payload, err = s.RetainedEarnings(ctx, r, opening, dividends)
	}
	if err != nil {
		return nil, err
	}

	report := domain.SavedReport{
		ReportID: uuid.NewString(),
		Kind:     kind,
		Range:    r,
		Payload:  payload,
		SavedBy:  actingUser,
		SavedAt:  s.now(),
	}
	if err := s.archive.SaveReport(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to archive report", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to archive report: %w", err)
	}
	s.LogInfo(ctx, "Report archived", slog.String("report_id", report.ReportID), slog.String("kind", string(kind)))
	return &report, nil
}
