package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates where a journal entry is in the approval workflow.
type JournalStatus string

const (
	Pending  JournalStatus = "PENDING"
	Approved JournalStatus = "APPROVED"
	Rejected JournalStatus = "REJECTED" // terminal
)

// PostingState tracks whether an approved entry's ledger lines were fully
// written. An approved entry is only complete once it reaches PostingPosted.
type PostingState string

const (
	PostingUnposted PostingState = "UNPOSTED"
	PostingPosted   PostingState = "POSTED"
	PostingFailed   PostingState = "FAILED"
)

// JournalLine is one draft line of a journal entry.
type JournalLine struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"` // snapshot taken at submission
	Amount      Money  `json:"amount"`
	Side        Side   `json:"side"`
}

// JournalEntry is a proposed or decided set of balanced lines.
type JournalEntry struct {
	JournalID       string        `json:"journalID"`
	Date            time.Time     `json:"date"`
	Description     string        `json:"description"`
	Lines           []JournalLine `json:"lines"`
	Status          JournalStatus `json:"status"`
	PostingState    PostingState  `json:"postingState"`
	PreparedBy      string        `json:"preparedBy"`
	ApprovedBy      *string       `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time    `json:"approvedAt,omitempty"`
	RejectedBy      *string       `json:"rejectedBy,omitempty"`
	RejectionReason *string       `json:"rejectionReason,omitempty"`
	PostedAt        *time.Time    `json:"postedAt,omitempty"`
	AuditFields
}

// DebitLines returns the debit-side lines in their original order.
func (e JournalEntry) DebitLines() []JournalLine { return e.linesOn(Debit) }

// CreditLines returns the credit-side lines in their original order.
func (e JournalEntry) CreditLines() []JournalLine { return e.linesOn(Credit) }

func (e JournalEntry) linesOn(side Side) []JournalLine {
	var out []JournalLine
	for _, l := range e.Lines {
		if l.Side == side {
			out = append(out, l)
		}
	}
	return out
}

// Totals sums the debit and credit sides.
func (e JournalEntry) Totals() (debits, credits Money) {
	for _, l := range e.Lines {
		switch l.Side {
		case Debit:
			debits = debits.Add(l.Amount)
		case Credit:
			credits = credits.Add(l.Amount)
		}
	}
	return debits, credits
}

// ExactTotals is Totals without the int64 bound, for entries whose lines
// may sum past MaxMoney.
func (e JournalEntry) ExactTotals() (debits, credits decimal.Decimal) {
	for _, l := range e.Lines {
		switch l.Side {
		case Debit:
			debits = debits.Add(l.Amount.Decimal())
		case Credit:
			credits = credits.Add(l.Amount.Decimal())
		}
	}
	return debits, credits
}

// IsBalanced reports whether debits equal credits to the cent.
func (e JournalEntry) IsBalanced() bool {
	d, c := e.Totals()
	return d.Equal(c)
}

// JournalFilter narrows journal listings.
type JournalFilter struct {
	Status    JournalStatus
	AccountID string
	Search    string
	Range     DateRange
}

// SidedAmount is a line in the legacy two-array document shape, where the
// side is implied by the array holding it.
type SidedAmount struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	Amount      Money  `json:"amount"`
}

// JournalDocument is a journal entry as it arrives from a form or storage.
// Older documents carry separate Debits and Credits arrays; newer ones carry a
// single Lines array with an explicit side on each line.
type JournalDocument struct {
	JournalID   string        `json:"journalID,omitempty"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines,omitempty"`
	Debits      []SidedAmount `json:"debits,omitempty"`
	Credits     []SidedAmount `json:"credits,omitempty"`
}

var (
	// ErrMixedJournalShape is returned when a document carries both shapes.
	ErrMixedJournalShape = errors.New("journal document mixes lines with debits/credits")
	// ErrMissingLineSide is returned when a unified line has no usable side.
	ErrMissingLineSide = errors.New("journal line is missing a debit/credit side")
)

// NormalizeLines converts either document shape into JournalLines with an
// explicit side. Legacy documents yield all debits, then all credits, each
// in their original order.
func (d JournalDocument) NormalizeLines() ([]JournalLine, error) {
	legacy := len(d.Debits) > 0 || len(d.Credits) > 0
	if legacy && len(d.Lines) > 0 {
		return nil, ErrMixedJournalShape
	}
	if !legacy {
		lines := make([]JournalLine, 0, len(d.Lines))
		for _, l := range d.Lines {
			side, ok := ParseSide(string(l.Side))
			if !ok {
				return nil, ErrMissingLineSide
			}
			l.Side = side
			lines = append(lines, l)
		}
		return lines, nil
	}

	lines := make([]JournalLine, 0, len(d.Debits)+len(d.Credits))
	for _, a := range d.Debits {
		lines = append(lines, JournalLine{AccountID: a.AccountID, AccountName: a.AccountName, Amount: a.Amount, Side: Debit})
	}
	for _, a := range d.Credits {
		lines = append(lines, JournalLine{AccountID: a.AccountID, AccountName: a.AccountName, Amount: a.Amount, Side: Credit})
	}
	return lines, nil
}

// ToEntry normalizes the document into a draft JournalEntry.
func (d JournalDocument) ToEntry() (JournalEntry, error) {
	lines, err := d.NormalizeLines()
	if err != nil {
		return JournalEntry{}, err
	}
	return JournalEntry{
		JournalID:    d.JournalID,
		Date:         d.Date,
		Description:  d.Description,
		Lines:        lines,
		Status:       Pending,
		PostingState: PostingUnposted,
	}, nil
}
