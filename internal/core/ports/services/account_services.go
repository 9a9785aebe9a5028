package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the accounts matching a filter, ordered by number.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new active account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUser string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUser string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts carrying a
	// positive balance cannot be deactivated.
	DeactivateAccount(ctx context.Context, accountID string, actingUser string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
