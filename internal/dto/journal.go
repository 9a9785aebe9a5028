package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// JournalLineRequest is one line of the unified journal shape.
type JournalLineRequest struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	Amount      string `json:"amount"`
	Side        string `json:"side"`
}

// SidedAmountRequest is one line of the legacy debits/credits shape.
type SidedAmountRequest struct {
	AccountID   string `json:"accountID"`
	AccountName string `json:"accountName"`
	Amount      string `json:"amount"`
}

// SubmitJournalRequest carries a draft journal entry. Either Lines or the
// Debits/Credits pair is expected. Content rules (description, amounts,
// accounts, balance) are checked by the journal validator, not by binding.
type SubmitJournalRequest struct {
	Date        string               `json:"date" binding:"required"` // YYYY-MM-DD
	Description string               `json:"description"`
	Lines       []JournalLineRequest `json:"lines"`
	Debits      []SidedAmountRequest `json:"debits"`
	Credits     []SidedAmountRequest `json:"credits"`
}

// ToDocument converts the request into a journal document. Amounts pass
// through domain.ParseMoney, so malformed amounts arrive as zero.
func (r SubmitJournalRequest) ToDocument() (domain.JournalDocument, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return domain.JournalDocument{}, apperrors.NewValidationError(apperrors.RuleInput, "Date must be in YYYY-MM-DD format.")
	}

	doc := domain.JournalDocument{Date: date, Description: r.Description}
	for _, l := range r.Lines {
		doc.Lines = append(doc.Lines, domain.JournalLine{
			AccountID:   l.AccountID,
			AccountName: l.AccountName,
			Amount:      domain.ParseMoney(l.Amount),
			Side:        domain.Side(l.Side),
		})
	}
	for _, d := range r.Debits {
		doc.Debits = append(doc.Debits, domain.SidedAmount{AccountID: d.AccountID, AccountName: d.AccountName, Amount: domain.ParseMoney(d.Amount)})
	}
	for _, c := range r.Credits {
		doc.Credits = append(doc.Credits, domain.SidedAmount{AccountID: c.AccountID, AccountName: c.AccountName, Amount: domain.ParseMoney(c.Amount)})
	}
	return doc, nil
}

// RejectJournalRequest carries the reviewer's reason.
type RejectJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       string               `json:"journalID"`
	Date            string               `json:"date"`
	Description     string               `json:"description"`
	Lines           []domain.JournalLine `json:"lines"`
	TotalDebit      domain.Money         `json:"totalDebit"`
	TotalCredit     domain.Money         `json:"totalCredit"`
	Status          domain.JournalStatus `json:"status"`
	PostingState    domain.PostingState  `json:"postingState"`
	PreparedBy      string               `json:"preparedBy"`
	ApprovedBy      *string              `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time           `json:"approvedAt,omitempty"`
	RejectedBy      *string              `json:"rejectedBy,omitempty"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
	PostedAt        *time.Time           `json:"postedAt,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO
func ToJournalResponse(e *domain.JournalEntry) JournalResponse {
	debits, credits := e.Totals()
	return JournalResponse{
		JournalID:       e.JournalID,
		Date:            e.Date.Format("2006-01-02"),
		Description:     e.Description,
		Lines:           e.Lines,
		TotalDebit:      debits,
		TotalCredit:     credits,
		Status:          e.Status,
		PostingState:    e.PostingState,
		PreparedBy:      e.PreparedBy,
		ApprovedBy:      e.ApprovedBy,
		ApprovedAt:      e.ApprovedAt,
		RejectedBy:      e.RejectedBy,
		RejectionReason: e.RejectionReason,
		PostedAt:        e.PostedAt,
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}

// ListJournalsParams defines query parameters for listing journal entries.
type ListJournalsParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	From      string  `form:"from"`
	To        string  `form:"to"`
	AccountID string  `form:"accountID"`
	Search    string  `form:"search"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journal entries.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// LedgerLineResponse is a posted ledger line.
type LedgerLineResponse struct {
	LedgerLineID string       `json:"ledgerLineID"`
	AccountID    string       `json:"accountID"`
	Debit        domain.Money `json:"debit"`
	Credit       domain.Money `json:"credit"`
	Description  string       `json:"description"`
	JournalID    string       `json:"journalID"`
	LineIndex    int          `json:"lineIndex"`
	Date         time.Time    `json:"date"`
	PostedBy     string       `json:"postedBy"`
	PostedAt     time.Time    `json:"postedAt"`
}

// ToLedgerLineResponses converts posted ledger lines.
func ToLedgerLineResponses(lines []domain.LedgerLine) []LedgerLineResponse {
	res := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		res[i] = LedgerLineResponse{
			LedgerLineID: l.LedgerLineID,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			Description:  l.Description,
			JournalID:    l.JournalID,
			LineIndex:    l.LineIndex,
			Date:         l.Date,
			PostedBy:     l.PostedBy,
			PostedAt:     l.PostedAt,
		}
	}
	return res
}
