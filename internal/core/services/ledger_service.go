package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// ledgerService serves read views over posted ledger lines.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewLedgerService creates a new ledger read service.
func NewLedgerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.LedgerSvc {
	return &ledgerService{
		BaseService: newBaseService(),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// AccountLedger returns the account's in-range lines with the running
// balance after each, plus the range snapshot.
func (s *ledgerService) AccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for ledger", slog.String("account_id", accountID))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	lines, err := s.ledgerRepo.ListLedgerLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger lines: %w", err)
	}

	rows := accounting.RunningBalances(*account, lines, r)
	snapshot := accounting.ComputeBalances([]domain.Account{*account}, lines, r)[account.AccountID]

	s.LogDebug(ctx, "Account ledger built", slog.String("account_id", accountID), slog.Int("rows", len(rows)))
	return &domain.AccountLedger{
		Account:  *account,
		Range:    r,
		Rows:     rows,
		Snapshot: snapshot,
	}, nil
}

// JournalPostings returns the ledger lines posted for a journal entry in line order.
func (s *ledgerService) JournalPostings(ctx context.Context, journalID string) ([]domain.LedgerLine, error) {
	lines, err := s.ledgerRepo.FindLedgerLinesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal postings", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to load postings for journal %s: %w", journalID, err)
	}
	return lines, nil
}
