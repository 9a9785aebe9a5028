package accounting

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SignedDelta is the change a ledger line makes to an account's balance.
// Debits increase debit-normal accounts and credits increase credit-normal
// ones; the other side decreases the balance.
func SignedDelta(account domain.Account, debit, credit domain.Money) domain.Money {
	if account.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// applyLine folds one ledger line into a snapshot. It is the single place
// where balance sign conventions are applied.
func applyLine(snap *domain.BalanceSnapshot, line domain.LedgerLine) {
	snap.DebitTotal = snap.DebitTotal.Add(line.Debit)
	snap.CreditTotal = snap.CreditTotal.Add(line.Credit)
	snap.End = snap.End.Add(SignedDelta(snap.Account, line.Debit, line.Credit))
}

// openingSnapshot seeds a snapshot with the account's initial balance.
func openingSnapshot(account domain.Account) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		Account: account,
		Begin:   account.InitialBalance,
		End:     account.InitialBalance,
	}
}
