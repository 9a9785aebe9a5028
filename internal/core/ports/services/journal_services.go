package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal entry by its ID.
	GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of journal entries.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWorkflowSvc defines the submit/approve/reject workflow
type JournalWorkflowSvc interface {
	// SubmitJournal validates a draft entry and stores it as pending.
	SubmitJournal(ctx context.Context, req dto.SubmitJournalRequest, actingUser string) (*domain.JournalEntry, error)

	// ApproveJournal approves a pending entry and posts its ledger lines.
	ApproveJournal(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error)

	// RejectJournal rejects a pending entry. Rejection is terminal.
	RejectJournal(ctx context.Context, journalID string, reason string, actingUser string) (*domain.JournalEntry, error)

	// RetryPosting re-posts the missing ledger lines of an approved entry whose posting failed.
	RetryPosting(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWorkflowSvc
}
