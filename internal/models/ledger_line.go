package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is a row of the append-only ledger_lines table.
type LedgerLine struct {
	LedgerLineID string          `db:"ledger_line_id"`
	Seq          int64           `db:"seq"`
	JournalID    string          `db:"journal_id"`
	LineIndex    int             `db:"line_index"`
	AccountID    string          `db:"account_id"`
	Debit        decimal.Decimal `db:"debit"`
	Credit       decimal.Decimal `db:"credit"`
	Description  string          `db:"description"`
	EntryDate    sql.NullTime    `db:"entry_date"`
	PostedBy     string          `db:"posted_by"`
	PostedAt     time.Time       `db:"posted_at"`
}
