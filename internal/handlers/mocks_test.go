package handlers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "bookkeeping-test"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUser string) (*domain.Account, error) {
	args := m.Called(ctx, req, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUser string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actingUser string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, journalID))
}

func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) SubmitJournal(ctx context.Context, req dto.SubmitJournalRequest, actingUser string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, actingUser))
}

func (m *MockJournalService) ApproveJournal(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, journalID, actingUser))
}

func (m *MockJournalService) RejectJournal(ctx context.Context, journalID string, reason string, actingUser string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, journalID, reason, actingUser))
}

func (m *MockJournalService) RetryPosting(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, journalID, actingUser))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AccountLedger(ctx context.Context, accountID string, r domain.DateRange) (*domain.AccountLedger, error) {
	args := m.Called(ctx, accountID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}

func (m *MockLedgerService) JournalPostings(ctx context.Context, journalID string) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, r domain.DateRange) (*domain.TrialBalance, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, r domain.DateRange) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, r domain.DateRange, opening domain.Money) (*domain.BalanceSheet, error) {
	args := m.Called(ctx, r, opening)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheet), args.Error(1)
}

func (m *MockReportingService) RetainedEarnings(ctx context.Context, r domain.DateRange, opening, dividends domain.Money) (*domain.RetainedEarningsStatement, error) {
	args := m.Called(ctx, r, opening, dividends)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RetainedEarningsStatement), args.Error(1)
}

func (m *MockReportingService) SaveReport(ctx context.Context, req dto.SaveReportRequest, actingUser string) (*domain.SavedReport, error) {
	args := m.Called(ctx, req, actingUser)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Router helpers ---

type testServices struct {
	accounts  *MockAccountService
	journals  *MockJournalService
	ledger    *MockLedgerService
	reporting *MockReportingService
}

func newTestServices() *testServices {
	return &testServices{
		accounts:  new(MockAccountService),
		journals:  new(MockJournalService),
		ledger:    new(MockLedgerService),
		reporting: new(MockReportingService),
	}
}

// newTestRouter mounts every API route behind the real auth middleware.
func newTestRouter(s *testServices) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			panic(err)
		}
	}

	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testSecret, testIssuer))
	handlers.RegisterAccountRoutes(v1, s.accounts)
	handlers.RegisterJournalRoutes(v1, s.journals)
	handlers.RegisterLedgerRoutes(v1, s.ledger)
	handlers.RegisterReportingRoutes(v1, s.reporting)
	return r
}

// generateTestToken creates a signed JWT for userID with the given role.
func generateTestToken(userID string, role domain.Role) string {
	claims := middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func doRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
