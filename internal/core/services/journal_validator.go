package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// JournalValidator checks draft journal entries before submission and
// reports every refusal to the error log.
type JournalValidator struct {
	BaseService
	errorLog portsrepo.ErrorLog
}

// NewJournalValidator creates a validator reporting to errorLog.
func NewJournalValidator(errorLog portsrepo.ErrorLog) *JournalValidator {
	return &JournalValidator{BaseService: newBaseService(), errorLog: errorLog}
}

// Validate runs Check and, on failure, hands an ErrorEvent to the error log
// before returning the failure. A failing error log is logged but never
// masks the validation failure.
func (v *JournalValidator) Validate(ctx context.Context, entry domain.JournalEntry, accounts []domain.Account, actingUser string) error {
	err := v.Check(entry, domain.AccountsByID(accounts))
	if err == nil {
		return nil
	}
	v.Report(ctx, err, domain.ContextJournalSubmission, actingUser)
	return err
}

// Report hands a refused action to the error log.
func (v *JournalValidator) Report(ctx context.Context, failure error, tag string, actingUser string) {
	v.LogWarn(ctx, "Journal entry refused", slog.String("user_id", actingUser), slog.String("reason", failure.Error()))
	if v.errorLog == nil {
		return
	}
	event := domain.ErrorEvent{
		EventID:   uuid.NewString(),
		User:      actingUser,
		Message:   failure.Error(),
		Context:   tag,
		Timestamp: v.now(),
	}
	if err := v.errorLog.RecordErrorEvent(ctx, event); err != nil {
		v.LogError(ctx, err, "Failed to record error event", slog.String("context", tag))
	}
}

// Check returns nil or the first violated rule, in this order:
//
//  1. description present
//  2. every line has an account
//  3. debit amounts positive
//  4. debit accounts exist
//  5. debit accounts active
//  6. rules 3-5 for credit lines
//  7. at least one debit and one credit line
//  8. debit total equals credit total to the cent, within MaxMoney
//
// Check has no side effects.
func (v *JournalValidator) Check(entry domain.JournalEntry, accounts map[string]domain.Account) error {
	if err := CheckDescription(entry.Description); err != nil {
		return err
	}

	for _, line := range entry.Lines {
		if strings.TrimSpace(line.AccountID) == "" {
			return apperrors.NewValidationError(apperrors.RuleAccountChosen, "Every line must have an account selected.")
		}
	}

	debits, credits := entry.DebitLines(), entry.CreditLines()
	if err := checkSide(domain.Debit, debits, accounts); err != nil {
		return err
	}
	if err := checkSide(domain.Credit, credits, accounts); err != nil {
		return err
	}

	if len(debits) == 0 || len(credits) == 0 {
		return apperrors.NewValidationError(apperrors.RuleBothSides, "A journal entry needs at least one debit and one credit.")
	}

	debitTotal, creditTotal := entry.ExactTotals()
	limit := domain.MaxMoney.Decimal()
	if debitTotal.GreaterThan(limit) || creditTotal.GreaterThan(limit) {
		return apperrors.NewValidationError(apperrors.RuleBalanced,
			"Journal totals cannot exceed %s.", domain.MaxMoney.Format())
	}
	if !debitTotal.Equal(creditTotal) {
		debits, credits := entry.Totals()
		return apperrors.NewValidationError(apperrors.RuleBalanced,
			"Total debits (%s) must equal total credits (%s).", debits.Format(), credits.Format())
	}
	return nil
}

// CheckDescription is rule 1 on its own, for callers that must report it
// before the entry's lines can be normalized.
func CheckDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError(apperrors.RuleDescription, "Description is required.")
	}
	return nil
}

func checkSide(side domain.Side, lines []domain.JournalLine, accounts map[string]domain.Account) error {
	sideName := "Debit"
	if side == domain.Credit {
		sideName = "Credit"
	}

	for _, line := range lines {
		label := lineLabel(line, accounts)
		if line.Amount.IsNegative() {
			return apperrors.NewValidationError(apperrors.RuleAmountPositive, "%s amount for %s cannot be negative.", sideName, label)
		}
		if line.Amount.IsZero() {
			return apperrors.NewValidationError(apperrors.RuleAmountPositive, "%s amount for %s must be greater than zero.", sideName, label)
		}
	}

	for _, line := range lines {
		if _, ok := accounts[line.AccountID]; !ok {
			return &apperrors.ReferenceError{
				Rule:        apperrors.RuleAccountExists,
				AccountID:   line.AccountID,
				AccountName: line.AccountName,
				Message:     fmt.Sprintf("Account %s does not exist.", lineLabel(line, accounts)),
			}
		}
	}

	for _, line := range lines {
		acc := accounts[line.AccountID]
		if !acc.IsActive {
			return &apperrors.ReferenceError{
				Rule:        apperrors.RuleAccountActive,
				AccountID:   acc.AccountID,
				AccountName: acc.Name,
				Message:     fmt.Sprintf("Account %s is inactive and cannot be used in a journal entry.", acc.Label()),
			}
		}
	}
	return nil
}

// lineLabel names a line's account for messages, preferring the current chart.
func lineLabel(line domain.JournalLine, accounts map[string]domain.Account) string {
	if acc, ok := accounts[line.AccountID]; ok {
		return acc.Label()
	}
	if line.AccountName != "" {
		return line.AccountName
	}
	return line.AccountID
}
