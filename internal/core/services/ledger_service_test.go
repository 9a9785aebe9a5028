package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postedLine(journalID string, index int, accountID, debit, credit string, day int) domain.LedgerLine {
	return domain.LedgerLine{
		LedgerLineID: domain.LedgerLineID(journalID, index),
		AccountID:    accountID,
		Debit:        money(debit),
		Credit:       money(credit),
		JournalID:    journalID,
		LineIndex:    index,
		Date:         time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		PostedBy:     "mgr-1",
		PostedAt:     fixedNow,
	}
}

func TestLedgerService_AccountLedger(t *testing.T) {
	accounts := new(MockAccountRepository)
	ledger := &fakeLedger{}
	_, err := ledger.AppendLedgerLines(context.Background(), []domain.LedgerLine{
		postedLine("j-2", 0, "cash", "0", "30.00", 10),
		postedLine("j-1", 0, "cash", "50.00", "0", 5),
		postedLine("j-1", 1, "sales", "0", "50.00", 5),
		postedLine("j-3", 0, "cash", "5.00", "0", 20),
	})
	require.NoError(t, err)
	accounts.On("FindAccountByID", mock.Anything, "cash").Return(findAccount("cash"), nil)

	svc := services.NewLedgerService(accounts, ledger)
	to := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := svc.AccountLedger(context.Background(), "cash", domain.DateRange{To: &to})

	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "j-1", got.Rows[0].Line.JournalID)
	assert.Equal(t, "150.00", got.Rows[0].Balance.String())
	assert.Equal(t, "120.00", got.Rows[1].Balance.String())
	assert.Equal(t, "100.00", got.Snapshot.Begin.String())
	assert.Equal(t, "120.00", got.Snapshot.End.String())
	assert.Equal(t, "50.00", got.Snapshot.DebitTotal.String())
	assert.Equal(t, "30.00", got.Snapshot.CreditTotal.String())
}

func TestLedgerService_AccountLedgerWithoutLines(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("FindAccountByID", mock.Anything, "cash").Return(findAccount("cash"), nil)

	got, err := services.NewLedgerService(accounts, &fakeLedger{}).AccountLedger(context.Background(), "cash", domain.Unbounded())

	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Equal(t, "100.00", got.Snapshot.End.String())
}

func TestLedgerService_AccountLedgerUnknownAccount(t *testing.T) {
	accounts := new(MockAccountRepository)
	accounts.On("FindAccountByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound)

	_, err := services.NewLedgerService(accounts, &fakeLedger{}).AccountLedger(context.Background(), "nope", domain.Unbounded())

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestLedgerService_JournalPostings(t *testing.T) {
	ledger := &fakeLedger{}
	_, err := ledger.AppendLedgerLines(context.Background(), []domain.LedgerLine{
		postedLine("j-1", 0, "cash", "50.00", "0", 5),
		postedLine("j-2", 0, "cash", "0", "30.00", 10),
		postedLine("j-1", 1, "sales", "0", "50.00", 5),
	})
	require.NoError(t, err)

	lines, err := services.NewLedgerService(new(MockAccountRepository), ledger).JournalPostings(context.Background(), "j-1")

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].LineIndex)
	assert.Equal(t, 1, lines[1].LineIndex)
}
