package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalDocument_NormalizeLines(t *testing.T) {
	cash := domain.ParseMoney("75.00")
	fee := domain.ParseMoney("25.00")

	tests := []struct {
		name    string
		doc     domain.JournalDocument
		want    []domain.JournalLine
		wantErr error
	}{
		{
			name: "unified lines keep order and side",
			doc: domain.JournalDocument{Lines: []domain.JournalLine{
				{AccountID: "rev", Amount: cash.Add(fee), Side: "credit"},
				{AccountID: "cash", Amount: cash, Side: domain.Debit},
				{AccountID: "fees", Amount: fee, Side: "DEBIT"},
			}},
			want: []domain.JournalLine{
				{AccountID: "rev", Amount: cash.Add(fee), Side: domain.Credit},
				{AccountID: "cash", Amount: cash, Side: domain.Debit},
				{AccountID: "fees", Amount: fee, Side: domain.Debit},
			},
		},
		{
			name: "legacy arrays become debits then credits",
			doc: domain.JournalDocument{
				Debits: []domain.SidedAmount{
					{AccountID: "cash", AccountName: "Cash", Amount: cash},
					{AccountID: "fees", AccountName: "Fees", Amount: fee},
				},
				Credits: []domain.SidedAmount{{AccountID: "rev", AccountName: "Sales", Amount: cash.Add(fee)}},
			},
			want: []domain.JournalLine{
				{AccountID: "cash", AccountName: "Cash", Amount: cash, Side: domain.Debit},
				{AccountID: "fees", AccountName: "Fees", Amount: fee, Side: domain.Debit},
				{AccountID: "rev", AccountName: "Sales", Amount: cash.Add(fee), Side: domain.Credit},
			},
		},
		{
			name: "mixed shapes are refused",
			doc: domain.JournalDocument{
				Lines:  []domain.JournalLine{{AccountID: "cash", Amount: cash, Side: domain.Debit}},
				Debits: []domain.SidedAmount{{AccountID: "cash", Amount: cash}},
			},
			wantErr: domain.ErrMixedJournalShape,
		},
		{
			name:    "line without side is refused",
			doc:     domain.JournalDocument{Lines: []domain.JournalLine{{AccountID: "cash", Amount: cash}}},
			wantErr: domain.ErrMissingLineSide,
		},
		{
			name: "empty document yields no lines",
			doc:  domain.JournalDocument{},
			want: []domain.JournalLine{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.NormalizeLines()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJournalDocument_ToEntry(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := domain.JournalDocument{
		Date:        date,
		Description: "Office rent",
		Debits:      []domain.SidedAmount{{AccountID: "rent", Amount: domain.ParseMoney("900")}},
		Credits:     []domain.SidedAmount{{AccountID: "cash", Amount: domain.ParseMoney("900")}},
	}

	entry, err := doc.ToEntry()
	require.NoError(t, err)
	assert.Equal(t, domain.Pending, entry.Status)
	assert.Equal(t, domain.PostingUnposted, entry.PostingState)
	assert.Equal(t, date, entry.Date)
	assert.Len(t, entry.DebitLines(), 1)
	assert.Len(t, entry.CreditLines(), 1)
	assert.True(t, entry.IsBalanced())
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalLine{
		{AccountID: "a", Amount: domain.ParseMoney("60.00"), Side: domain.Debit},
		{AccountID: "b", Amount: domain.ParseMoney("40.00"), Side: domain.Debit},
		{AccountID: "c", Amount: domain.ParseMoney("99.99"), Side: domain.Credit},
	}}

	debits, credits := entry.Totals()
	assert.Equal(t, "100.00", debits.String())
	assert.Equal(t, "99.99", credits.String())
	assert.False(t, entry.IsBalanced())
}
