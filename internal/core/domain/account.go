package domain

import "strings"

// AccountCategory is the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// categoryPrefix maps each category to the first digit its account numbers must carry.
var categoryPrefix = map[AccountCategory]byte{
	Asset:     '1',
	Liability: '2',
	Equity:    '3',
	Revenue:   '4',
	Expense:   '5',
}

// AllCategories lists the categories in chart-of-accounts order.
var AllCategories = []AccountCategory{Asset, Liability, Equity, Revenue, Expense}

// ParseAccountCategory resolves a category name case-insensitively.
func ParseAccountCategory(s string) (AccountCategory, bool) {
	c := AccountCategory(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryPrefix[c]; ok {
		return c, true
	}
	return "", false
}

// Side is the side of a double-entry posting.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// ParseSide resolves "debit"/"credit" case-insensitively.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Debit:
		return Debit, true
	case Credit:
		return Credit, true
	}
	return "", false
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// Account is a chart-of-accounts entry.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	Number         string          `json:"number"` // unique digit string, prefix tied to Category
	Category       AccountCategory `json:"category"`
	Subcategory    string          `json:"subcategory"`
	NormalSide     Side            `json:"normalSide,omitempty"` // empty means derive from Category
	InitialBalance Money           `json:"initialBalance"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// IsDebitNormal reports whether the account's balance grows with debits.
// An explicit NormalSide wins over the category default.
func (a Account) IsDebitNormal() bool {
	switch a.NormalSide {
	case Debit:
		return true
	case Credit:
		return false
	}
	return DefaultNormalSide(a.Category) == Debit
}

// ResolvedNormalSide returns the effective normal side.
func (a Account) ResolvedNormalSide() Side {
	if a.IsDebitNormal() {
		return Debit
	}
	return Credit
}

// DefaultNormalSide is Debit for assets and expenses, Credit for everything else.
func DefaultNormalSide(c AccountCategory) Side {
	if c == Asset || c == Expense {
		return Debit
	}
	return Credit
}

// Label renders the account for user facing messages, e.g. "Cash (1010)".
func (a Account) Label() string {
	if a.Number == "" {
		return a.Name
	}
	return a.Name + " (" + a.Number + ")"
}

// NumberHasValidPrefix checks the category-to-first-digit mapping.
// Categories without a mapping accept any number.
func NumberHasValidPrefix(category AccountCategory, number string) bool {
	want, ok := categoryPrefix[category]
	if !ok {
		return true
	}
	return len(number) > 0 && number[0] == want
}

// IsDigitsOnly reports whether s is a non-empty run of ASCII digits.
// Signs, decimal points and exponents are rejected.
func IsDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// AccountsByID indexes accounts for lookup.
func AccountsByID(accounts []Account) map[string]Account {
	byID := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID
}

// AccountFilter narrows account listings. Zero values match everything.
type AccountFilter struct {
	Category   AccountCategory
	ActiveOnly bool
	Search     string // matched against name and number
}
