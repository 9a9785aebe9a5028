package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// LedgerSvc defines read operations over posted ledger lines
type LedgerSvc interface {
	// AccountLedger returns an account's lines in range with the running balance after each.
	AccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error)

	// JournalPostings returns the ledger lines posted for one journal entry.
	JournalPostings(ctx context.Context, journalID string) ([]domain.LedgerLine, error)
}
