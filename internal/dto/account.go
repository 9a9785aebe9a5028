package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required"`
	Number         string `json:"number" binding:"required,digits"`
	Category       string `json:"category" binding:"required,category"`
	Subcategory    string `json:"subcategory"`
	NormalSide     string `json:"normalSide" binding:"omitempty,side"` // Optional, derived from category when empty
	InitialBalance string `json:"initialBalance" binding:"omitempty,money"`
	Description    string `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name           *string `json:"name"`
	Number         *string `json:"number" binding:"omitempty,digits"`
	Subcategory    *string `json:"subcategory"`
	NormalSide     *string `json:"normalSide" binding:"omitempty,side"`
	InitialBalance *string `json:"initialBalance" binding:"omitempty,money"`
	Description    *string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                 `json:"accountID"`
	Name           string                 `json:"name"`
	Number         string                 `json:"number"`
	Category       domain.AccountCategory `json:"category"`
	Subcategory    string                 `json:"subcategory"`
	NormalSide     domain.Side            `json:"normalSide"` // resolved, never empty
	InitialBalance domain.Money           `json:"initialBalance"`
	Description    string                 `json:"description"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		Number:         acc.Number,
		Category:       acc.Category,
		Subcategory:    acc.Subcategory,
		NormalSide:     acc.ResolvedNormalSide(),
		InitialBalance: acc.InitialBalance,
		Description:    acc.Description,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Category   string `form:"category" binding:"omitempty,category"`
	ActiveOnly bool   `form:"activeOnly"`
	Search     string `form:"search"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListAccountsParams) ToFilter() domain.AccountFilter {
	category, _ := domain.ParseAccountCategory(p.Category)
	return domain.AccountFilter{Category: category, ActiveOnly: p.ActiveOnly, Search: p.Search}
}
