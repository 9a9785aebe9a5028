package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// LedgerReader defines read operations over posted ledger lines
type LedgerReader interface {
	// ListLedgerLines returns lines in insertion order. An empty accountID means all accounts.
	ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error)

	// FindLedgerLinesByJournalID returns the lines already posted for one entry.
	FindLedgerLinesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerLine, error)
}

// LedgerWriter defines the append-only write path for ledger lines
type LedgerWriter interface {
	// AppendLedgerLines writes lines keyed by (journalID, lineIndex). Lines whose
	// key already exists are skipped, so a retried posting never duplicates.
	// It returns how many lines were newly written.
	AppendLedgerLines(ctx context.Context, lines []domain.LedgerLine) (int, error)
}

// LedgerRepositoryFacade combines ledger read and write operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
