package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	services *testServices
	token    string
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	suite.services = newTestServices()
	suite.router = newTestRouter(suite.services)
	suite.token = generateTestToken("clerk-1", domain.RoleAccountant)
}

func TestReportingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance_PassesRange() {
	report := &domain.TrialBalance{
		Rows: []domain.TrialBalanceRow{
			{AccountID: "cash", AccountNumber: "1010", AccountName: "Cash", Debit: domain.ParseMoney("75.00")},
			{AccountID: "sales", AccountNumber: "4000", AccountName: "Sales", Credit: domain.ParseMoney("75.00")},
		},
		TotalDebit:  domain.ParseMoney("75.00"),
		TotalCredit: domain.ParseMoney("75.00"),
		Balanced:    true,
	}
	suite.services.reporting.On("TrialBalance", mock.Anything, mock.MatchedBy(func(r domain.DateRange) bool {
		return r.From != nil && r.To != nil &&
			r.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			r.To.Format(time.DateOnly) == "2024-01-31"
	})).Return(report, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/reports/trial-balance?from=2024-01-01&to=2024-01-31", "", suite.token)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Balanced   bool   `json:"balanced"`
		TotalDebit string `json:"totalDebit"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
	suite.Equal("75.00", resp.TotalDebit)
	suite.services.reporting.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestIncomeStatement_ServiceError() {
	suite.services.reporting.On("IncomeStatement", mock.Anything, domain.DateRange{}).
		Return(nil, errors.New("pool closed")).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/reports/income-statement", "", suite.token)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "pool closed")
}

func (suite *ReportingHandlerTestSuite) TestBalanceSheet_ParsesOpening() {
	report := &domain.BalanceSheet{
		Assets:               domain.ParseMoney("500.00"),
		RetainedEarnings:     domain.ParseMoney("250.50"),
		LiabilitiesAndEquity: domain.ParseMoney("500.00"),
	}
	suite.services.reporting.On("BalanceSheet", mock.Anything, domain.DateRange{}, domain.ParseMoney("250.50")).
		Return(report, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/reports/balance-sheet?retainedEarningsOpening=250.50", "", suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"retainedEarnings":"250.50"`)
}

func (suite *ReportingHandlerTestSuite) TestBalanceSheet_InvalidOpening() {
	w := doRequest(suite.router, http.MethodGet, "/api/v1/reports/balance-sheet?retainedEarningsOpening=lots", "", suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.services.reporting.AssertNotCalled(suite.T(), "BalanceSheet", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestRetainedEarnings_DefaultsDividendsToZero() {
	opening := domain.ParseMoney("1000.00")
	report := &domain.RetainedEarningsStatement{
		Opening:   opening,
		NetIncome: domain.ParseMoney("40.00"),
		Ending:    domain.ParseMoney("1040.00"),
	}
	suite.services.reporting.On("RetainedEarnings", mock.Anything, domain.DateRange{}, opening, domain.Money{}).
		Return(report, nil).Once()

	w := doRequest(suite.router, http.MethodGet, "/api/v1/reports/retained-earnings?opening=1000", "", suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"ending":"1040.00"`)
	suite.services.reporting.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestSaveReport_Created() {
	req := dto.SaveReportRequest{Kind: "INCOME_STATEMENT", From: "2024-01-01", To: "2024-03-31"}
	saved := &domain.SavedReport{
		ReportID: "r-1",
		Kind:     domain.ReportIncomeStatement,
		Payload:  &domain.IncomeStatement{NetIncome: domain.ParseMoney("12.00")},
		SavedBy:  "clerk-1",
		SavedAt:  time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
	}
	suite.services.reporting.On("SaveReport", mock.Anything, req, "clerk-1").Return(saved, nil).Once()

	body := `{"kind":"INCOME_STATEMENT","from":"2024-01-01","to":"2024-03-31"}`
	w := doRequest(suite.router, http.MethodPost, "/api/v1/reports/saved", body, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.SavedReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("r-1", resp.ReportID)
	suite.Equal(domain.ReportIncomeStatement, resp.Kind)
}

func (suite *ReportingHandlerTestSuite) TestSaveReport_UnknownKind() {
	w := doRequest(suite.router, http.MethodPost, "/api/v1/reports/saved", `{"kind":"CASH_FLOW"}`, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.services.reporting.AssertNotCalled(suite.T(), "SaveReport", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestSaveReport_ArchiveNotConfigured() {
	suite.services.reporting.On("SaveReport", mock.Anything, mock.Anything, "clerk-1").
		Return(nil, apperrors.NewAppError(http.StatusNotImplemented, "report archive is not configured", nil)).Once()

	w := doRequest(suite.router, http.MethodPost, "/api/v1/reports/saved", `{"kind":"TRIAL_BALANCE"}`, suite.token)

	suite.Equal(http.StatusNotImplemented, w.Code)
	suite.Contains(w.Body.String(), "not configured")
}
