package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of the journals table.
type Journal struct {
	JournalID       string         `db:"journal_id"`
	JournalDate     time.Time      `db:"journal_date"`
	Description     string         `db:"description"`
	Status          string         `db:"status"`
	PostingState    string         `db:"posting_state"`
	PreparedBy      string         `db:"prepared_by"`
	ApprovedBy      sql.NullString `db:"approved_by"`
	ApprovedAt      sql.NullTime   `db:"approved_at"`
	RejectedBy      sql.NullString `db:"rejected_by"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	PostedAt        sql.NullTime   `db:"posted_at"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	JournalID   string          `db:"journal_id"`
	LineIndex   int             `db:"line_index"`
	AccountID   string          `db:"account_id"`
	AccountName string          `db:"account_name"`
	Amount      decimal.Decimal `db:"amount"`
	Side        string          `db:"side"`
}
