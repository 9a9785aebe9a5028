package accounting

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// TrialBalance splits every account's End into debit and credit columns.
// A balance on the account's normal side lands in that side's column; a
// balance on the wrong side lands, as an absolute value, in the other one.
// Unequal totals are reported through Balanced and Difference, never corrected.
func TrialBalance(b domain.Balances, r domain.DateRange) domain.TrialBalance {
	tb := domain.TrialBalance{Range: r, Rows: []domain.TrialBalanceRow{}}
	for _, snap := range b.Sorted() {
		row := domain.TrialBalanceRow{
			AccountID:     snap.Account.AccountID,
			AccountNumber: snap.Account.Number,
			AccountName:   snap.Account.Name,
			Category:      snap.Account.Category,
		}
		positive := snap.End.Max(domain.Money{})
		negative := snap.End.Neg().Max(domain.Money{})
		if snap.Account.IsDebitNormal() {
			row.Debit, row.Credit = positive, negative
		} else {
			row.Debit, row.Credit = negative, positive
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.Balanced = tb.Difference.IsZero()
	return tb
}

// IncomeStatement sums End over revenue and expense accounts.
func IncomeStatement(b domain.Balances, r domain.DateRange) domain.IncomeStatement {
	is := domain.IncomeStatement{
		Range:           r,
		RevenueAccounts: []domain.AccountAmount{},
		ExpenseAccounts: []domain.AccountAmount{},
	}
	for _, snap := range b.Sorted() {
		switch snap.Account.Category {
		case domain.Revenue:
			is.Revenue = is.Revenue.Add(snap.End)
			is.RevenueAccounts = append(is.RevenueAccounts, lineItem(snap))
		case domain.Expense:
			is.Expenses = is.Expenses.Add(snap.End)
			is.ExpenseAccounts = append(is.ExpenseAccounts, lineItem(snap))
		}
	}
	is.NetIncome = is.Revenue.Sub(is.Expenses)
	return is
}

// BalanceSheet sums End over asset, liability and equity accounts. Net
// income is supplied by the caller so the income statement can be produced
// separately; retained earnings are retainedOpening plus periodNetIncome.
func BalanceSheet(b domain.Balances, r domain.DateRange, retainedOpening, periodNetIncome domain.Money) domain.BalanceSheet {
	bs := domain.BalanceSheet{
		Range:             r,
		AssetAccounts:     []domain.AccountAmount{},
		LiabilityAccounts: []domain.AccountAmount{},
		EquityAccounts:    []domain.AccountAmount{},
	}
	for _, snap := range b.Sorted() {
		switch snap.Account.Category {
		case domain.Asset:
			bs.Assets = bs.Assets.Add(snap.End)
			bs.AssetAccounts = append(bs.AssetAccounts, lineItem(snap))
		case domain.Liability:
			bs.Liabilities = bs.Liabilities.Add(snap.End)
			bs.LiabilityAccounts = append(bs.LiabilityAccounts, lineItem(snap))
		case domain.Equity:
			bs.Equity = bs.Equity.Add(snap.End)
			bs.EquityAccounts = append(bs.EquityAccounts, lineItem(snap))
		}
	}
	bs.RetainedEarnings = retainedOpening.Add(periodNetIncome)
	bs.EquityTotal = bs.Equity.Add(bs.RetainedEarnings)
	bs.LiabilitiesAndEquity = bs.Liabilities.Add(bs.EquityTotal)
	return bs
}

// RetainedEarningsStatement computes ending = opening + netIncome - dividends.
func RetainedEarningsStatement(r domain.DateRange, opening, netIncome, dividends domain.Money) domain.RetainedEarningsStatement {
	return domain.RetainedEarningsStatement{
		Range:     r,
		Opening:   opening,
		NetIncome: netIncome,
		Dividends: dividends,
		Ending:    opening.Add(netIncome).Sub(dividends),
	}
}

func lineItem(snap domain.BalanceSnapshot) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID: snap.Account.AccountID,
		Number:    snap.Account.Number,
		Name:      snap.Account.Name,
		Amount:    snap.End,
	}
}
