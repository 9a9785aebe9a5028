package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, name, number, category, subcategory, normal_side, initial_balance,
	description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Number,
		&m.Category,
		&m.Subcategory,
		&m.NormalSide,
		&m.InitialBalance,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Number,
		m.Category,
		m.Subcategory,
		m.NormalSide,
		m.InitialBalance,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return fmt.Errorf("%w: account violates %s", apperrors.ErrDuplicate, constraint)
		}
		return internalError("failed to save account "+m.AccountID, err)
	}
	return nil
}

// UpdateAccount overwrites the mutable fields of an account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, number = $3, subcategory = $4, normal_side = $5, initial_balance = $6,
		    description = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Number,
		m.Subcategory,
		m.NormalSide,
		m.InitialBalance,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return fmt.Errorf("%w: account violates %s", apperrors.ErrDuplicate, constraint)
		}
		return internalError("failed to update account "+m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where + ` LIMIT 1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find account", err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, "account_id = $1", accountID)
}

// FindAccountByName matches names case-insensitively.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	return r.findOne(ctx, "LOWER(name) = LOWER($1)", name)
}

// FindAccountByNumber retrieves an account by its number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return r.findOne(ctx, "number = $1", number)
}

// ListAccounts retrieves every account matching the filter, ordered by number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query, args := buildAccountListQuery(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, internalError("failed to list accounts", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, internalError("failed to scan account row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func buildAccountListQuery(filter domain.AccountFilter) (string, []any) {
	var where []string
	var args []any
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := strconv.Itoa(len(args))
		where = append(where, "(name ILIKE $"+n+" OR number ILIKE $"+n+")")
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY number, account_id;", args
}
