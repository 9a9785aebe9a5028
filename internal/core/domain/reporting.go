package domain

import (
	"sort"
	"time"
)

// BalanceSnapshot is an account's activity and balance over a date range.
// Begin is always the account's initial balance; End is Begin plus the
// in-range lines signed by the account's normal side.
type BalanceSnapshot struct {
	Account     Account `json:"account"`
	DebitTotal  Money   `json:"debitTotal"`
	CreditTotal Money   `json:"creditTotal"`
	Begin       Money   `json:"begin"`
	End         Money   `json:"end"`
}

// Balances maps account ids to their snapshot.
type Balances map[string]BalanceSnapshot

// Sorted returns the snapshots ordered by account number, then id.
func (b Balances) Sorted() []BalanceSnapshot {
	out := make([]BalanceSnapshot, 0, len(b))
	for _, s := range b {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Account.Number != out[j].Account.Number {
			return out[i].Account.Number < out[j].Account.Number
		}
		return out[i].Account.AccountID < out[j].Account.AccountID
	})
	return out
}

// RunningBalanceRow is one ledger line with the account balance after it.
type RunningBalanceRow struct {
	Line    LedgerLine `json:"line"`
	Balance Money      `json:"balance"`
}

// AccountLedger is the ledger detail view of one account.
type AccountLedger struct {
	Account  Account             `json:"account"`
	Range    DateRange           `json:"range"`
	Rows     []RunningBalanceRow `json:"rows"`
	Snapshot BalanceSnapshot     `json:"snapshot"`
}

// TrialBalanceRow is one account split into debit and credit columns.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Category      AccountCategory `json:"category"`
	Debit         Money           `json:"debit"`
	Credit        Money           `json:"credit"`
}

// TrialBalance lists every account's ending balance. Balanced is false when
// the columns disagree; Difference is TotalDebit minus TotalCredit.
type TrialBalance struct {
	Range       DateRange         `json:"range"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  Money             `json:"totalDebit"`
	TotalCredit Money             `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
	Difference  Money             `json:"difference"`
}

// AccountAmount is an account with its ending balance for statement line items.
type AccountAmount struct {
	AccountID string `json:"accountID"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	Amount    Money  `json:"amount"`
}

// IncomeStatement summarizes revenue against expenses for a period.
type IncomeStatement struct {
	Range           DateRange       `json:"range"`
	RevenueAccounts []AccountAmount `json:"revenueAccounts"`
	ExpenseAccounts []AccountAmount `json:"expenseAccounts"`
	Revenue         Money           `json:"revenue"`
	Expenses        Money           `json:"expenses"`
	NetIncome       Money           `json:"netIncome"`
}

// BalanceSheet reports assets against liabilities and equity.
type BalanceSheet struct {
	Range                DateRange       `json:"range"`
	AssetAccounts        []AccountAmount `json:"assetAccounts"`
	LiabilityAccounts    []AccountAmount `json:"liabilityAccounts"`
	EquityAccounts       []AccountAmount `json:"equityAccounts"`
	Assets               Money           `json:"assets"`
	Liabilities          Money           `json:"liabilities"`
	Equity               Money           `json:"equity"`
	RetainedEarnings     Money           `json:"retainedEarnings"` // opening + period net income
	EquityTotal          Money           `json:"equityTotal"`
	LiabilitiesAndEquity Money           `json:"liabilitiesAndEquity"`
}

// RetainedEarningsStatement rolls retained earnings forward over a period.
type RetainedEarningsStatement struct {
	Range     DateRange `json:"range"`
	Opening   Money     `json:"opening"`
	NetIncome Money     `json:"netIncome"`
	Dividends Money     `json:"dividends"`
	Ending    Money     `json:"ending"`
}

// ReportKind names one of the four statements.
type ReportKind string

const (
	ReportTrialBalance     ReportKind = "TRIAL_BALANCE"
	ReportIncomeStatement  ReportKind = "INCOME_STATEMENT"
	ReportBalanceSheet     ReportKind = "BALANCE_SHEET"
	ReportRetainedEarnings ReportKind = "RETAINED_EARNINGS"
)

// ParseReportKind validates a report kind.
func ParseReportKind(s string) (ReportKind, bool) {
	switch k := ReportKind(s); k {
	case ReportTrialBalance, ReportIncomeStatement, ReportBalanceSheet, ReportRetainedEarnings:
		return k, true
	}
	return "", false
}

// SavedReport is a generated report handed unchanged to the report archive.
type SavedReport struct {
	ReportID string     `json:"reportID"`
	Kind     ReportKind `json:"kind"`
	Range    DateRange  `json:"range"`
	Payload  any        `json:"payload"`
	SavedBy  string     `json:"savedBy"`
	SavedAt  time.Time  `json:"savedAt"`
}
