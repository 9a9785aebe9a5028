package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is not in a state that allows the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrForbidden indicates the acting user may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected storage or infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrReference indicates a journal line names a missing or inactive account.
var ErrReference = errors.New("account reference error")

// ErrPosting indicates ledger lines of an approved entry could not be written.
var ErrPosting = errors.New("posting error")

// ErrRange indicates a malformed date range.
var ErrRange = errors.New("invalid date range")

// AppError wraps an infrastructure failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is lets 5xx AppErrors match ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// ValidationRule identifies which journal rule failed.
type ValidationRule string

const (
	RuleDescription    ValidationRule = "description_required"
	RuleAccountChosen  ValidationRule = "account_required"
	RuleAmountPositive ValidationRule = "amount_positive"
	RuleAccountExists  ValidationRule = "account_exists"
	RuleAccountActive  ValidationRule = "account_active"
	RuleBothSides      ValidationRule = "debit_and_credit_required"
	RuleBalanced       ValidationRule = "totals_equal"
	RuleInput          ValidationRule = "input"
)

// ValidationError is a user-correctable input failure.
type ValidationError struct {
	Rule    ValidationRule
	Message string
}

// NewValidationError builds a ValidationError for a rule.
func NewValidationError(rule ValidationRule, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError is a journal line naming an account that does not exist or is inactive.
// It is handled exactly like a ValidationError.
type ReferenceError struct {
	Rule        ValidationRule
	AccountID   string
	AccountName string
	Message     string
}

func (e *ReferenceError) Error() string { return e.Message }

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference || target == ErrValidation
}

// PostingError reports that some ledger lines of an approved entry were not
// written. PendingLines holds the line ordinals still to be posted.
type PostingError struct {
	JournalID    string
	PendingLines []int
	Err          error
}

func (e *PostingError) Error() string {
	idx := make([]string, len(e.PendingLines))
	for i, l := range e.PendingLines {
		idx[i] = fmt.Sprint(l)
	}
	return fmt.Sprintf("posting journal %s failed (pending lines %s): %v", e.JournalID, strings.Join(idx, ","), e.Err)
}

func (e *PostingError) Unwrap() error { return e.Err }

func (e *PostingError) Is(target error) bool { return target == ErrPosting }

// RangeError reports a malformed range bound. It is never fatal: the bound
// is treated as unbounded.
type RangeError struct {
	Field  string
	Value  string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s bound %q: %s", e.Field, e.Value, e.Reason)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }
