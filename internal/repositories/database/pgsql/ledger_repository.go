package pgsql

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerLineColumns = `ledger_line_id, seq, journal_id, line_index, account_id, debit, credit,
	description, entry_date, posted_by, posted_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository over the append-only ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ListLedgerLines returns lines in insertion order. An empty accountID returns every line.
func (r *PgxLedgerRepository) ListLedgerLines(ctx context.Context, accountID string) ([]domain.LedgerLine, error) {
	if accountID == "" {
		return r.query(ctx, `SELECT `+ledgerLineColumns+` FROM ledger_lines ORDER BY seq;`)
	}
	return r.query(ctx, `SELECT `+ledgerLineColumns+` FROM ledger_lines WHERE account_id = $1 ORDER BY seq;`, accountID)
}

// FindLedgerLinesByJournalID returns the lines already posted for one journal.
func (r *PgxLedgerRepository) FindLedgerLinesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerLine, error) {
	return r.query(ctx, `SELECT `+ledgerLineColumns+` FROM ledger_lines WHERE journal_id = $1 ORDER BY line_index;`, journalID)
}

func (r *PgxLedgerRepository) query(ctx context.Context, query string, args ...any) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, internalError("failed to query ledger lines", err)
	}
	defer rows.Close()

	var ms []models.LedgerLine
	for rows.Next() {
		var m models.LedgerLine
		if err := rows.Scan(
			&m.LedgerLineID,
			&m.Seq,
			&m.JournalID,
			&m.LineIndex,
			&m.AccountID,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.EntryDate,
			&m.PostedBy,
			&m.PostedAt,
		); err != nil {
			return nil, internalError("failed to scan ledger line row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("error iterating ledger line rows", err)
	}
	return mapping.ToDomainLedgerLineSlice(ms), nil
}

// AppendLedgerLines writes all lines in one transaction. A line whose
// (journal_id, line_index) is already stored is skipped.
func (r *PgxLedgerRepository) AppendLedgerLines(ctx context.Context, lines []domain.LedgerLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	written := 0
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, line := range lines {
			m := mapping.ToModelLedgerLine(line)
			batch.Queue(`
				INSERT INTO ledger_lines (ledger_line_id, journal_id, line_index, account_id, debit, credit,
					description, entry_date, posted_by, posted_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (journal_id, line_index) DO NOTHING;`,
				m.LedgerLineID, m.JournalID, m.LineIndex, m.AccountID, m.Debit, m.Credit,
				m.Description, m.EntryDate, m.PostedBy, m.PostedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range lines {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return internalError("failed to append ledger line", err)
			}
			written += int(tag.RowsAffected())
		}
		if err := results.Close(); err != nil {
			return internalError("failed to close ledger batch", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
