package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ledgerLineNamespace seeds deterministic ledger line ids.
var ledgerLineNamespace = uuid.MustParse("6f1c7d2e-3a4b-5c6d-8e9f-0a1b2c3d4e5f")

// LedgerLine is an immutable posted fact attributing a debit or a credit
// to one account. Exactly one of Debit and Credit is non-zero.
type LedgerLine struct {
	LedgerLineID string    `json:"ledgerLineID"`
	AccountID    string    `json:"accountID"`
	Debit        Money     `json:"debit"`
	Credit       Money     `json:"credit"`
	Description  string    `json:"description"`
	JournalID    string    `json:"journalID"`
	LineIndex    int       `json:"lineIndex"` // ordinal of the source line within the entry
	Date         time.Time `json:"date"`      // zero when the source entry had no date
	PostedBy     string    `json:"postedBy"`
	PostedAt     time.Time `json:"postedAt"`
	Seq          int64     `json:"seq"` // insertion order assigned by storage
}

// PostingKey identifies a ledger line by its source: one line of one entry.
type PostingKey struct {
	JournalID string
	LineIndex int
}

// Key returns the idempotency key of the line.
func (l LedgerLine) Key() PostingKey {
	return PostingKey{JournalID: l.JournalID, LineIndex: l.LineIndex}
}

// EffectiveDate is the explicit date when present, else the posting time.
func (l LedgerLine) EffectiveDate() time.Time {
	if !l.Date.IsZero() {
		return l.Date
	}
	return l.PostedAt
}

// Side reports which column carries the amount.
func (l LedgerLine) Side() Side {
	if l.Debit.IsZero() && !l.Credit.IsZero() {
		return Credit
	}
	return Debit
}

// LedgerLineID derives the id of the line posted for (journalID, lineIndex).
// Posting the same source line twice always produces the same id.
func LedgerLineID(journalID string, lineIndex int) string {
	return uuid.NewSHA1(ledgerLineNamespace, []byte(journalID+"#"+strconv.Itoa(lineIndex))).String()
}
