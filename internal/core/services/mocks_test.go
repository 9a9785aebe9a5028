package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Account repository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

// --- Journal repository ---

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var journals []domain.JournalEntry
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return journals, token, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) TransitionJournalStatus(ctx context.Context, journalID string, change portsrepo.StatusChange) error {
	return m.Called(ctx, journalID, change).Error(0)
}

func (m *MockJournalRepository) UpdatePostingState(ctx context.Context, journalID string, state domain.PostingState, postedAt *time.Time) error {
	return m.Called(ctx, journalID, state, postedAt).Error(0)
}

// --- Ledger repository ---

// fakeLedger is an in-memory ledger keyed like the ledger_lines table.
// failNext makes the next append fail after writing failAfter lines.
type fakeLedger struct {
	mu        sync.Mutex
	lines     []domain.LedgerLine
	failNext  error
	failAfter int
	appends   int
}

func (f *fakeLedger) ListLedgerLines(_ context.Context, accountID string) ([]domain.LedgerLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.LedgerLine
	for _, l := range f.lines {
		if accountID == "" || l.AccountID == accountID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLedger) FindLedgerLinesByJournalID(_ context.Context, journalID string) ([]domain.LedgerLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.LedgerLine
	for _, l := range f.lines {
		if l.JournalID == journalID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLedger) AppendLedgerLines(_ context.Context, lines []domain.LedgerLine) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++

	existing := make(map[domain.PostingKey]bool, len(f.lines))
	for _, l := range f.lines {
		existing[l.Key()] = true
	}
	written := 0
	for _, l := range lines {
		if f.failNext != nil && written == f.failAfter {
			err := f.failNext
			f.failNext = nil
			return written, err
		}
		if existing[l.Key()] {
			continue
		}
		l.Seq = int64(len(f.lines) + 1)
		f.lines = append(f.lines, l)
		existing[l.Key()] = true
		written++
	}
	return written, nil
}

// --- Event sinks ---

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) RecordErrorEvent(ctx context.Context, event domain.ErrorEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockEventRepository) SaveReport(ctx context.Context, report domain.SavedReport) error {
	return m.Called(ctx, report).Error(0)
}

var (
	_ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)
	_ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*fakeLedger)(nil)
	_ portsrepo.EventRepositoryFacade   = (*MockEventRepository)(nil)
)

// --- Fixtures ---

func money(s string) domain.Money { return domain.ParseMoney(s) }

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func chartOfAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "cash", Name: "Cash", Number: "1010", Category: domain.Asset, InitialBalance: money("100.00"), IsActive: true},
		{AccountID: "sales", Name: "Sales", Number: "4000", Category: domain.Revenue, IsActive: true},
		{AccountID: "rent", Name: "Rent", Number: "5100", Category: domain.Expense, IsActive: true},
		{AccountID: "old", Name: "Petty Cash", Number: "1090", Category: domain.Asset, IsActive: false},
	}
}

func findAccount(id string) *domain.Account {
	for _, a := range chartOfAccounts() {
		if a.AccountID == id {
			acc := a
			return &acc
		}
	}
	return nil
}
