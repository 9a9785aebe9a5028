package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
)

// LedgerPoster turns approved journal entries into ledger lines.
type LedgerPoster struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerPoster creates a poster writing to ledgerRepo.
func NewLedgerPoster(ledgerRepo portsrepo.LedgerRepositoryFacade) *LedgerPoster {
	return &LedgerPoster{BaseService: newBaseService(), ledgerRepo: ledgerRepo}
}

// BuildLedgerLines emits one ledger line per journal line: a debit line
// carries the amount in Debit, a credit line in Credit. Each line is keyed
// by (journal id, line ordinal) and gets the id derived from that key.
// The entry must be approved and balanced.
func BuildLedgerLines(entry domain.JournalEntry, actingUser string, postedAt time.Time) ([]domain.LedgerLine, error) {
	if entry.Status != domain.Approved {
		return nil, fmt.Errorf("%w: journal %s is %s, only approved entries can be posted", apperrors.ErrConflict, entry.JournalID, entry.Status)
	}
	if len(entry.Lines) == 0 {
		return nil, apperrors.NewValidationError(apperrors.RuleBothSides, "A journal entry needs at least one debit and one credit.")
	}
	if debits, credits := entry.Totals(); !debits.Equal(credits) {
		return nil, apperrors.NewValidationError(apperrors.RuleBalanced,
			"Total debits (%s) must equal total credits (%s).", debits.Format(), credits.Format())
	}

	lines := make([]domain.LedgerLine, len(entry.Lines))
	for i, jl := range entry.Lines {
		ll := domain.LedgerLine{
			LedgerLineID: domain.LedgerLineID(entry.JournalID, i),
			AccountID:    jl.AccountID,
			Description:  entry.Description,
			JournalID:    entry.JournalID,
			LineIndex:    i,
			Date:         entry.Date,
			PostedBy:     actingUser,
			PostedAt:     postedAt,
		}
		switch jl.Side {
		case domain.Debit:
			ll.Debit = jl.Amount
		case domain.Credit:
			ll.Credit = jl.Amount
		default:
			return nil, fmt.Errorf("%w: line %d of journal %s", domain.ErrMissingLineSide, i, entry.JournalID)
		}
		lines[i] = ll
	}
	return lines, nil
}

// Post writes the ledger lines of an approved entry that are not already in
// the ledger. Posting an entry a second time writes nothing and returns the
// same lines as the first posting. When the write fails a
// *apperrors.PostingError lists the line ordinals still missing; calling
// Post again retries exactly those.
func (p *LedgerPoster) Post(ctx context.Context, entry domain.JournalEntry, actingUser string) ([]domain.LedgerLine, error) {
	lines, err := BuildLedgerLines(entry, actingUser, p.now())
	if err != nil {
		return nil, err
	}

	existing, err := p.ledgerRepo.FindLedgerLinesByJournalID(ctx, entry.JournalID)
	if err != nil {
		return nil, &apperrors.PostingError{JournalID: entry.JournalID, PendingLines: lineIndexes(lines), Err: err}
	}
	posted := make(map[domain.PostingKey]domain.LedgerLine, len(existing))
	for _, l := range existing {
		posted[l.Key()] = l
	}

	var pending []domain.LedgerLine
	for _, l := range lines {
		if _, ok := posted[l.Key()]; !ok {
			pending = append(pending, l)
		}
	}

	if len(pending) > 0 {
		written, err := p.ledgerRepo.AppendLedgerLines(ctx, pending)
		if err != nil {
			p.LogError(ctx, err, "Failed to post ledger lines",
				slog.String("journal_id", entry.JournalID),
				slog.Int("pending", len(pending)))
			return nil, &apperrors.PostingError{JournalID: entry.JournalID, PendingLines: lineIndexes(pending), Err: err}
		}
		if written < len(pending) {
			p.LogWarn(ctx, "Some ledger lines were already posted",
				slog.String("journal_id", entry.JournalID),
				slog.Int("written", written),
				slog.Int("pending", len(pending)))
		}
	}

	result := make([]domain.LedgerLine, len(lines))
	for i, l := range lines {
		if prior, ok := posted[l.Key()]; ok {
			result[i] = prior
		} else {
			result[i] = l
		}
	}
	p.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", entry.JournalID),
		slog.Int("lines", len(result)),
		slog.Int("newly_written", len(pending)))
	return result, nil
}

func lineIndexes(lines []domain.LedgerLine) []int {
	idx := make([]int, len(lines))
	for i, l := range lines {
		idx[i] = l.LineIndex
	}
	return idx
}
