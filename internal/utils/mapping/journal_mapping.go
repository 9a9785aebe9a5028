package mapping

import (
	"database/sql"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelJournal converts a domain JournalEntry to its header row and line rows.
func ToModelJournal(d domain.JournalEntry) (models.Journal, []models.JournalLine) {
	m := models.Journal{
		JournalID:    d.JournalID,
		JournalDate:  d.Date,
		Description:  d.Description,
		Status:       string(d.Status),
		PostingState: string(d.PostingState),
		PreparedBy:   d.PreparedBy,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.ApprovedBy != nil {
		m.ApprovedBy = nullString(*d.ApprovedBy)
	}
	if d.RejectedBy != nil {
		m.RejectedBy = nullString(*d.RejectedBy)
	}
	if d.RejectionReason != nil {
		m.RejectionReason = nullString(*d.RejectionReason)
	}
	m.ApprovedAt = nullTime(d.ApprovedAt)
	m.PostedAt = nullTime(d.PostedAt)

	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			JournalID:   d.JournalID,
			LineIndex:   i,
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			Amount:      l.Amount.Decimal(),
			Side:        string(l.Side),
		}
	}
	return m, lines
}

// ToDomainJournal converts a journal row and its line rows, ordered by
// line_index, to a domain JournalEntry.
func ToDomainJournal(m models.Journal, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:       m.JournalID,
		Date:            m.JournalDate,
		Description:     m.Description,
		Lines:           make([]domain.JournalLine, len(lines)),
		Status:          domain.JournalStatus(m.Status),
		PostingState:    domain.PostingState(m.PostingState),
		PreparedBy:      m.PreparedBy,
		ApprovedBy:      stringPtr(m.ApprovedBy),
		ApprovedAt:      timePtr(m.ApprovedAt),
		RejectedBy:      stringPtr(m.RejectedBy),
		RejectionReason: stringPtr(m.RejectionReason),
		PostedAt:        timePtr(m.PostedAt),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			Amount:      domain.MoneyFromDecimal(l.Amount),
			Side:        domain.Side(l.Side),
		}
	}
	return d
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
