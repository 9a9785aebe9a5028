package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves an account by id. Returns apperrors.ErrNotFound when absent.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName and FindAccountByNumber look across active and inactive accounts.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error)

	// ListAccounts returns every account matching the filter, ordered by number.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccount inserts a new account. Name or number collisions return apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount overwrites the mutable fields of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
