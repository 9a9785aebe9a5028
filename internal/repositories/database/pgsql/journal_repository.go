package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, journal_date, description, status, posting_state, prepared_by,
	approved_by, approved_at, rejected_by, rejection_reason, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const defaultJournalPageSize = 20

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&m.Status,
		&m.PostingState,
		&m.PreparedBy,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectedBy,
		&m.RejectionReason,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts the journal header and its lines in one transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry domain.JournalEntry) error {
	m, lines := mapping.ToModelJournal(entry)

	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO journals (`+journalColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
			m.JournalID, m.JournalDate, m.Description, m.Status, m.PostingState, m.PreparedBy,
			m.ApprovedBy, m.ApprovedAt, m.RejectedBy, m.RejectionReason, m.PostedAt,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if _, ok := uniqueViolation(err); ok {
				return fmt.Errorf("%w: journal %s already exists", apperrors.ErrDuplicate, m.JournalID)
			}
			return internalError("failed to insert journal "+m.JournalID, err)
		}

		batch := &pgx.Batch{}
		for _, l := range lines {
			batch.Queue(`INSERT INTO journal_lines (journal_id, line_index, account_id, account_name, amount, side)
				VALUES ($1, $2, $3, $4, $5, $6);`,
				l.JournalID, l.LineIndex, l.AccountID, l.AccountName, l.Amount, l.Side)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return internalError("failed to insert journal lines for "+m.JournalID, err)
		}
		return nil
	})
}

// FindJournalByID retrieves a journal entry and its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	m, err := scanJournal(r.Pool.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1;`, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find journal "+journalID, err)
	}

	lines, err := r.findLines(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournal(m, lines[journalID])
	return &entry, nil
}

// findLines loads the lines of the given journals keyed by journal id, in line order.
func (r *PgxJournalRepository) findLines(ctx context.Context, journalIDs []string) (map[string][]models.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT journal_id, line_index, account_id, account_name, amount, side
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, line_index;`, journalIDs)
	if err != nil {
		return nil, internalError("failed to query journal lines", err)
	}
	defer rows.Close()

	out := make(map[string][]models.JournalLine, len(journalIDs))
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.JournalID, &l.LineIndex, &l.AccountID, &l.AccountName, &l.Amount, &l.Side); err != nil {
			return nil, internalError("failed to scan journal line row", err)
		}
		out[l.JournalID] = append(out[l.JournalID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating journal line rows", err)
	}
	return out, nil
}

// ListJournals retrieves a page of journals, newest first, using token-based pagination.
// It returns the journals, a token for the next page (if any), and an error.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		cursor = &c
	}

	// We fetch one extra item to determine if there's a next page.
	query, args := buildJournalListQuery(filter, cursor, limit+1)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, internalError("failed to query journals", err)
	}
	defer rows.Close()

	headers := make([]models.Journal, 0, limit+1)
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, internalError("failed to scan journal row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, internalError("error iterating journal rows", err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			JournalDate: last.JournalDate,
			CreatedAt:   last.CreatedAt,
			JournalID:   last.JournalID,
		})
		nextTokenVal = &token
		headers = headers[:limit]
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.JournalID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournal(h, lines[h.JournalID])
	}
	return entries, nextTokenVal, nil
}

func buildJournalListQuery(filter domain.JournalFilter, cursor *pagination.Cursor, fetchLimit int) (string, []any) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(string(filter.Status)))
	}
	if filter.AccountID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM journal_lines jl WHERE jl.journal_id = journals.journal_id AND jl.account_id = "+arg(filter.AccountID)+")")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		where = append(where, "description ILIKE "+arg("%"+s+"%"))
	}
	if filter.Range.From != nil {
		where = append(where, "journal_date >= "+arg(filter.Range.From.Format(time.DateOnly))+"::date")
	}
	if filter.Range.To != nil {
		where = append(where, "journal_date <= "+arg(filter.Range.To.Format(time.DateOnly))+"::date")
	}
	if cursor != nil {
		// Tuple comparison keeps the ordering stable across pages.
		where = append(where, "(journal_date, created_at, journal_id) < ("+
			arg(cursor.JournalDate)+", "+arg(cursor.CreatedAt)+", "+arg(cursor.JournalID)+")")
	}

	query := `SELECT ` + journalColumns + ` FROM journals`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY journal_date DESC, created_at DESC, journal_id DESC LIMIT " + arg(fetchLimit) + ";"
	return query, args
}

// TransitionJournalStatus moves a journal from change.From to change.To with
// a conditional update, so only one of several concurrent reviewers wins.
func (r *PgxJournalRepository) TransitionJournalStatus(ctx context.Context, journalID string, change portsrepo.StatusChange) error {
	var query string
	args := []any{journalID, string(change.From), string(change.To), change.ActingUser, change.At}
	switch change.To {
	case domain.Approved:
		query = `
			UPDATE journals
			SET status = $3, approved_by = $4, approved_at = $5, last_updated_by = $4, last_updated_at = $5
			WHERE journal_id = $1 AND status = $2;`
	case domain.Rejected:
		query = `
			UPDATE journals
			SET status = $3, rejected_by = $4, rejection_reason = $6, last_updated_by = $4, last_updated_at = $5
			WHERE journal_id = $1 AND status = $2;`
		args = append(args, change.RejectionReason)
	default:
		return fmt.Errorf("%w: unsupported journal transition to %s", apperrors.ErrValidation, change.To)
	}

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return internalError("failed to update journal status "+journalID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.Pool.QueryRow(ctx, `SELECT status FROM journals WHERE journal_id = $1;`, journalID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return internalError("failed to read journal status "+journalID, err)
	}
	return fmt.Errorf("%w: journal %s is %s, expected %s", apperrors.ErrConflict, journalID, current, change.From)
}

// UpdatePostingState records the posting outcome. A nil postedAt keeps the stored value.
func (r *PgxJournalRepository) UpdatePostingState(ctx context.Context, journalID string, state domain.PostingState, postedAt *time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journals
		SET posting_state = $2, posted_at = COALESCE($3, posted_at)
		WHERE journal_id = $1;`, journalID, string(state), postedAt)
	if err != nil {
		return internalError("failed to update posting state of journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
