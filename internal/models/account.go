package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	Number         string          `db:"number"`
	Category       string          `db:"category"`
	Subcategory    string          `db:"subcategory"`
	NormalSide     sql.NullString  `db:"normal_side"` // NULL means derived from category
	InitialBalance decimal.Decimal `db:"initial_balance"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
