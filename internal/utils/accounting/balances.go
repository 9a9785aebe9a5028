package accounting

import (
	"sort"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ComputeBalances folds ledger lines into one snapshot per account.
//
// Begin and End start at the account's initial balance whatever the range,
// since the initial balance is not a dated event. Lines whose effective date
// falls inside r (bounds inclusive) are then folded in. Lines naming an
// account missing from accounts are skipped.
func ComputeBalances(accounts []domain.Account, lines []domain.LedgerLine, r domain.DateRange) domain.Balances {
	balances := make(domain.Balances, len(accounts))
	for _, a := range accounts {
		balances[a.AccountID] = openingSnapshot(a)
	}

	for _, line := range lines {
		snap, ok := balances[line.AccountID]
		if !ok {
			continue
		}
		if !r.Contains(line.EffectiveDate()) {
			continue
		}
		applyLine(&snap, line)
		balances[line.AccountID] = snap
	}
	return balances
}

// RunningBalances returns the account's in-range lines in chronological
// order with the balance after each, seeded with the initial balance.
// The final row's balance equals ComputeBalances' End for the same inputs.
func RunningBalances(account domain.Account, lines []domain.LedgerLine, r domain.DateRange) []domain.RunningBalanceRow {
	own := make([]domain.LedgerLine, 0, len(lines))
	for _, line := range lines {
		if line.AccountID == account.AccountID && r.Contains(line.EffectiveDate()) {
			own = append(own, line)
		}
	}
	SortChronologically(own)

	snap := openingSnapshot(account)
	rows := make([]domain.RunningBalanceRow, 0, len(own))
	for _, line := range own {
		applyLine(&snap, line)
		rows = append(rows, domain.RunningBalanceRow{Line: line, Balance: snap.End})
	}
	return rows
}

// SortChronologically orders lines by effective date, then posting time,
// then storage sequence. Remaining ties keep their input order.
func SortChronologically(lines []domain.LedgerLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if da, db := a.EffectiveDate(), b.EffectiveDate(); !da.Equal(db) {
			return da.Before(db)
		}
		if !a.PostedAt.Equal(b.PostedAt) {
			return a.PostedAt.Before(b.PostedAt)
		}
		return a.Seq < b.Seq
	})
}
