package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) domain.Money { return domain.ParseMoney(s) }

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func debitLine(accountID, amount string, date time.Time) domain.LedgerLine {
	return domain.LedgerLine{AccountID: accountID, Debit: money(amount), Date: date, PostedAt: date}
}

func creditLine(accountID, amount string, date time.Time) domain.LedgerLine {
	return domain.LedgerLine{AccountID: accountID, Credit: money(amount), Date: date, PostedAt: date}
}

var (
	cash    = domain.Account{AccountID: "cash", Number: "1010", Name: "Cash", Category: domain.Asset, InitialBalance: money("100.00")}
	sales   = domain.Account{AccountID: "sales", Number: "4000", Name: "Sales", Category: domain.Revenue}
	rent    = domain.Account{AccountID: "rent", Number: "5100", Name: "Rent", Category: domain.Expense}
	loan    = domain.Account{AccountID: "loan", Number: "2100", Name: "Loan", Category: domain.Liability}
	capital = domain.Account{AccountID: "capital", Number: "3000", Name: "Capital", Category: domain.Equity}
)

func TestComputeBalances_PostedSaleScenario(t *testing.T) {
	lines := []domain.LedgerLine{
		debitLine("cash", "50.00", day(5)),
		creditLine("sales", "50.00", day(5)),
	}

	balances := accounting.ComputeBalances([]domain.Account{cash, sales}, lines, domain.Unbounded())

	assert.Equal(t, "150.00", balances["cash"].End.String())
	assert.Equal(t, "100.00", balances["cash"].Begin.String())
	assert.Equal(t, "50.00", balances["cash"].DebitTotal.String())
	assert.Equal(t, "50.00", balances["sales"].End.String())
	assert.Equal(t, "50.00", balances["sales"].CreditTotal.String())

	is := accounting.IncomeStatement(balances, domain.Unbounded())
	assert.Equal(t, "50.00", is.Revenue.String())
	assert.Equal(t, "50.00", is.NetIncome.String())
}

func TestComputeBalances_NoLinesKeepsInitialBalance(t *testing.T) {
	balances := accounting.ComputeBalances([]domain.Account{cash, loan}, nil, domain.Unbounded())

	for _, id := range []string{"cash", "loan"} {
		snap := balances[id]
		assert.Equal(t, snap.Account.InitialBalance, snap.Begin)
		assert.Equal(t, snap.Begin, snap.End)
		assert.True(t, snap.DebitTotal.IsZero())
		assert.True(t, snap.CreditTotal.IsZero())
	}
}

func TestComputeBalances_RangeIsInclusive(t *testing.T) {
	from, to := day(10), day(20)
	r := domain.DateRange{From: &from, To: &to}
	lines := []domain.LedgerLine{
		debitLine("cash", "1.00", day(9)),
		debitLine("cash", "10.00", day(10)),
		debitLine("cash", "100.00", day(20)),
		debitLine("cash", "1000.00", day(21)),
	}

	snap := accounting.ComputeBalances([]domain.Account{cash}, lines, r)["cash"]

	assert.Equal(t, "110.00", snap.DebitTotal.String())
	assert.Equal(t, "100.00", snap.Begin.String(), "begin is the initial balance regardless of range")
	assert.Equal(t, "210.00", snap.End.String())
}

func TestComputeBalances_EffectiveDateFallsBackToPostedAt(t *testing.T) {
	from, to := day(10), day(20)
	r := domain.DateRange{From: &from, To: &to}
	lines := []domain.LedgerLine{
		{AccountID: "cash", Debit: money("5.00"), PostedAt: day(15)},
		{AccountID: "cash", Debit: money("7.00"), PostedAt: day(25)},
		{AccountID: "cash", Debit: money("9.00"), Date: day(12), PostedAt: day(25)},
	}

	snap := accounting.ComputeBalances([]domain.Account{cash}, lines, r)["cash"]
	assert.Equal(t, "14.00", snap.DebitTotal.String())
}

func TestComputeBalances_SkipsUnknownAccounts(t *testing.T) {
	lines := []domain.LedgerLine{
		debitLine("ghost", "999.00", day(1)),
		creditLine("cash", "30.00", day(1)),
	}

	balances := accounting.ComputeBalances([]domain.Account{cash}, lines, domain.Unbounded())

	require.Len(t, balances, 1)
	assert.Equal(t, "70.00", balances["cash"].End.String())
}

func TestComputeBalances_NormalSideSigns(t *testing.T) {
	contra := domain.Account{AccountID: "allowance", Number: "1900", Category: domain.Asset, NormalSide: domain.Credit}
	lines := []domain.LedgerLine{
		debitLine("rent", "40.00", day(2)),
		creditLine("rent", "15.00", day(3)),
		creditLine("loan", "500.00", day(2)),
		debitLine("loan", "100.00", day(3)),
		creditLine("allowance", "12.00", day(4)),
	}

	b := accounting.ComputeBalances([]domain.Account{rent, loan, contra}, lines, domain.Unbounded())

	assert.Equal(t, "25.00", b["rent"].End.String())
	assert.Equal(t, "400.00", b["loan"].End.String())
	assert.Equal(t, "12.00", b["allowance"].End.String())
}

func TestComputeBalances_OrderIndependentTotals(t *testing.T) {
	lines := []domain.LedgerLine{
		debitLine("cash", "10.10", day(3)),
		creditLine("cash", "3.03", day(3)),
		debitLine("cash", "0.01", day(1)),
		creditLine("cash", "99.99", day(2)),
	}
	reversed := make([]domain.LedgerLine, len(lines))
	for i := range lines {
		reversed[len(lines)-1-i] = lines[i]
	}

	a := accounting.ComputeBalances([]domain.Account{cash}, lines, domain.Unbounded())["cash"]
	b := accounting.ComputeBalances([]domain.Account{cash}, reversed, domain.Unbounded())["cash"]

	assert.Equal(t, a, b)
}

func TestRunningBalances(t *testing.T) {
	early := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 3, 17, 0, 0, 0, time.UTC)
	lines := []domain.LedgerLine{
		{AccountID: "cash", Credit: money("20.00"), Date: day(3), PostedAt: late, Seq: 4},
		{AccountID: "cash", Debit: money("50.00"), Date: day(1), PostedAt: day(1), Seq: 1},
		{AccountID: "sales", Credit: money("50.00"), Date: day(1), PostedAt: day(1), Seq: 2},
		{AccountID: "cash", Debit: money("5.00"), Date: day(3), PostedAt: early, Seq: 3},
		{AccountID: "cash", Debit: money("1.00"), Date: day(3), PostedAt: late, Seq: 5},
	}

	rows := accounting.RunningBalances(cash, lines, domain.Unbounded())

	require.Len(t, rows, 4)
	var balances, debits []string
	for _, row := range rows {
		balances = append(balances, row.Balance.String())
		debits = append(debits, row.Line.Debit.String())
	}
	assert.Equal(t, []string{"150.00", "155.00", "135.00", "136.00"}, balances)
	assert.Equal(t, []string{"50.00", "5.00", "0.00", "1.00"}, debits)

	final := accounting.ComputeBalances([]domain.Account{cash}, lines, domain.Unbounded())["cash"]
	assert.Equal(t, final.End, rows[len(rows)-1].Balance)
}

func TestRunningBalances_RespectsRange(t *testing.T) {
	from := day(2)
	lines := []domain.LedgerLine{
		debitLine("cash", "50.00", day(1)),
		debitLine("cash", "5.00", day(2)),
	}

	rows := accounting.RunningBalances(cash, lines, domain.DateRange{From: &from})

	require.Len(t, rows, 1)
	assert.Equal(t, "105.00", rows[0].Balance.String())
}

func TestSortChronologically_TiesKeepInsertionOrder(t *testing.T) {
	lines := []domain.LedgerLine{
		{LedgerLineID: "b", Date: day(1), PostedAt: day(1)},
		{LedgerLineID: "a", Date: day(1), PostedAt: day(1)},
		{LedgerLineID: "z", Date: day(0), PostedAt: day(5)},
	}

	accounting.SortChronologically(lines)

	assert.Equal(t, "z", lines[0].LedgerLineID)
	assert.Equal(t, "b", lines[1].LedgerLineID)
	assert.Equal(t, "a", lines[2].LedgerLineID)
}
