package pgsql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccountListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args := buildAccountListQuery(domain.AccountFilter{})
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY number, account_id")
		assert.Empty(t, args)
	})

	t.Run("all filters", func(t *testing.T) {
		query, args := buildAccountListQuery(domain.AccountFilter{
			Category:   domain.Asset,
			ActiveOnly: true,
			Search:     " cash ",
		})
		assert.Contains(t, query, "category = $1")
		assert.Contains(t, query, "is_active = TRUE")
		assert.Contains(t, query, "(name ILIKE $2 OR number ILIKE $2)")
		assert.Equal(t, []any{"ASSET", "%cash%"}, args)
	})
}

func TestBuildJournalListQuery(t *testing.T) {
	t.Run("limit only", func(t *testing.T) {
		query, args := buildJournalListQuery(domain.JournalFilter{}, nil, 21)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY journal_date DESC, created_at DESC, journal_id DESC LIMIT $1")
		assert.Equal(t, []any{21}, args)
	})

	t.Run("filters and cursor", func(t *testing.T) {
		r, err := domain.ParseDateRange("2024-01-01", "2024-01-31")
		require.NoError(t, err)
		cursor := &pagination.Cursor{
			JournalDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2024, 1, 20, 9, 30, 0, 0, time.UTC),
			JournalID:   "j-9",
		}

		query, args := buildJournalListQuery(domain.JournalFilter{
			Status:    domain.Pending,
			AccountID: "cash",
			Search:    "rent",
			Range:     r,
		}, cursor, 11)

		assert.Contains(t, query, "status = $1")
		assert.Contains(t, query, "jl.account_id = $2")
		assert.Contains(t, query, "description ILIKE $3")
		assert.Contains(t, query, "journal_date >= $4::date")
		assert.Contains(t, query, "journal_date <= $5::date")
		assert.Contains(t, query, "(journal_date, created_at, journal_id) < ($6, $7, $8)")
		assert.Contains(t, query, "LIMIT $9")
		require.Len(t, args, 9)
		assert.Equal(t, "PENDING", args[0])
		assert.Equal(t, "%rent%", args[2])
		assert.Equal(t, "2024-01-01", args[3])
		assert.Equal(t, "2024-01-31", args[4])
		assert.Equal(t, "j-9", args[7])
		assert.Equal(t, 11, args[8])
	})
}

func TestUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_accounts_number"}

	constraint, ok := uniqueViolation(fmt.Errorf("insert: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "uq_accounts_number", constraint)

	_, ok = uniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = uniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}

func TestInternalError(t *testing.T) {
	err := internalError("failed to list accounts", errors.New("conn reset"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
}

func TestJSONColumn(t *testing.T) {
	b, err := jsonColumn(nil)
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = jsonColumn(map[string]string{"name": "Cash"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Cash"}`, string(b))
}
