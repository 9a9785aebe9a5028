package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	services *testServices
	admin    string
	clerk    string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.services = newTestServices()
	suite.router = newTestRouter(suite.services)
	suite.admin = generateTestToken("admin-1", domain.RoleAdmin)
	suite.clerk = generateTestToken("clerk-1", domain.RoleAccountant)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func sampleAccount(id string) *domain.Account {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Account{
		AccountID:      id,
		Name:           "Cash",
		Number:         "1010",
		Category:       domain.Asset,
		InitialBalance: domain.ParseMoney("100.00"),
		IsActive:       true,
		AuditFields:    domain.NewAuditFields("admin-1", now),
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	id := uuid.NewString()
	expectedReq := dto.CreateAccountRequest{
		Name:           "Cash",
		Number:         "1010",
		Category:       "ASSET",
		InitialBalance: "100.00",
	}
	suite.services.accounts.On("CreateAccount", mock.Anything, expectedReq, "admin-1").Return(sampleAccount(id), nil).Once()

	body := `{"name":"Cash","number":"1010","category":"ASSET","initialBalance":"100.00"}`
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", body, suite.admin)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(id, resp.AccountID)
	suite.Equal(domain.Debit, resp.NormalSide)
	suite.Equal("100.00", resp.InitialBalance.String())
	suite.services.accounts.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindingValidation() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"number":"1010","category":"ASSET"}`},
		{"number with letters", `{"name":"Cash","number":"10A0","category":"ASSET"}`},
		{"unknown category", `{"name":"Cash","number":"1010","category":"CASHFLOW"}`},
		{"bad amount", `{"name":"Cash","number":"1010","category":"ASSET","initialBalance":"12.3.4"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", tc.body, suite.admin)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.services.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ForbiddenForAccountant() {
	body := `{"name":"Cash","number":"1010","category":"ASSET"}`
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", body, suite.clerk)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.services.accounts.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.services.accounts.On("CreateAccount", mock.Anything, mock.Anything, "admin-1").
		Return(nil, fmt.Errorf("%w: account number 1010 is already in use", apperrors.ErrDuplicate)).Once()

	body := `{"name":"Cash","number":"1010","category":"ASSET"}`
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", body, suite.admin)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Unauthorized() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts", `{}`, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.services.accounts.On("GetAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/missing", "", suite.clerk)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_PassesFilter() {
	filter := domain.AccountFilter{Category: domain.Asset, ActiveOnly: true, Search: "cash"}
	suite.services.accounts.On("ListAccounts", mock.Anything, filter).Return([]domain.Account{*sampleAccount("a-1")}, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts?category=asset&activeOnly=true&search=cash", "", suite.clerk)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.services.accounts.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_ServiceError() {
	suite.services.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(nil, errors.New("connection reset")).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts", "", suite.clerk)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_Success() {
	name := "Cash on Hand"
	updated := sampleAccount("a-1")
	updated.Name = name
	suite.services.accounts.On("UpdateAccount", mock.Anything, "a-1", dto.UpdateAccountRequest{Name: &name}, "admin-1").Return(updated, nil).Once()

	w := doRequest(suite.router, http.MethodPut, "/api/v1/accounts/a-1", `{"name":"Cash on Hand"}`, suite.admin)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), name)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_RefusedWithBalance() {
	suite.services.accounts.On("DeactivateAccount", mock.Anything, "a-1", "admin-1").
		Return(nil, apperrors.NewValidationError(apperrors.RuleInput, "Account Cash still carries a balance of 100.00.")).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/accounts/a-1/deactivate", "", suite.admin)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "still carries a balance")
}

func (suite *AccountHandlerTestSuite) TestAccountLedger_IgnoresMalformedRange() {
	ledger := &domain.AccountLedger{Account: *sampleAccount("a-1")}
	suite.services.ledger.On("AccountLedger", mock.Anything, "a-1", mock.MatchedBy(func(r domain.DateRange) bool {
		return r.From == nil && r.To != nil
	})).Return(ledger, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/accounts/a-1/ledger?from=someday&to=2024-03-31", "", suite.clerk)

	suite.Equal(http.StatusOK, w.Code)
	suite.services.ledger.AssertExpectations(suite.T())
}
