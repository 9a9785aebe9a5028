package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindJournalByID retrieves an entry with its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of entries, newest first, and a token for the next page.
	ListJournals(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// StatusChange describes a workflow transition of a journal entry.
type StatusChange struct {
	From            domain.JournalStatus
	To              domain.JournalStatus
	ActingUser      string
	At              time.Time
	RejectionReason *string
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveJournal persists a new pending entry and its lines.
	SaveJournal(ctx context.Context, entry domain.JournalEntry) error

	// TransitionJournalStatus moves an entry from change.From to change.To.
	// It returns apperrors.ErrConflict when the entry is no longer in change.From,
	// which makes approval at-most-once under concurrent reviewers.
	TransitionJournalStatus(ctx context.Context, journalID string, change StatusChange) error

	// UpdatePostingState records the outcome of posting an approved entry.
	UpdatePostingState(ctx context.Context, journalID string, state domain.PostingState, postedAt *time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
