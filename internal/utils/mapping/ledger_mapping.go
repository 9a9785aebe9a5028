package mapping

import (
	"database/sql"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelLedgerLine converts a domain LedgerLine to a model LedgerLine.
// Seq is assigned by the database and is not carried over.
func ToModelLedgerLine(d domain.LedgerLine) models.LedgerLine {
	m := models.LedgerLine{
		LedgerLineID: d.LedgerLineID,
		JournalID:    d.JournalID,
		LineIndex:    d.LineIndex,
		AccountID:    d.AccountID,
		Debit:        d.Debit.Decimal(),
		Credit:       d.Credit.Decimal(),
		Description:  d.Description,
		PostedBy:     d.PostedBy,
		PostedAt:     d.PostedAt,
	}
	if !d.Date.IsZero() {
		m.EntryDate = sql.NullTime{Time: d.Date, Valid: true}
	}
	return m
}

// ToDomainLedgerLine converts a model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	d := domain.LedgerLine{
		LedgerLineID: m.LedgerLineID,
		AccountID:    m.AccountID,
		Debit:        domain.MoneyFromDecimal(m.Debit),
		Credit:       domain.MoneyFromDecimal(m.Credit),
		Description:  m.Description,
		JournalID:    m.JournalID,
		LineIndex:    m.LineIndex,
		PostedBy:     m.PostedBy,
		PostedAt:     m.PostedAt,
		Seq:          m.Seq,
	}
	if m.EntryDate.Valid {
		d.Date = m.EntryDate.Time
	}
	return d
}

// ToDomainLedgerLineSlice converts a slice of model LedgerLines to a slice of domain LedgerLines
func ToDomainLedgerLineSlice(ms []models.LedgerLine) []domain.LedgerLine {
	ds := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerLine(m)
	}
	return ds
}
