package pgsql

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxEventRepository stores error events, audit events, notifications and
// saved reports.
type PgxEventRepository struct {
	BaseRepository
}

func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepositoryFacade {
	return &PgxEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EventRepositoryFacade = (*PgxEventRepository)(nil)

func (r *PgxEventRepository) RecordErrorEvent(ctx context.Context, event domain.ErrorEvent) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO error_events (event_id, user_id, message, context, created_at)
		VALUES ($1, $2, $3, $4, $5);`,
		event.EventID, event.User, event.Message, event.Context, event.Timestamp)
	if err != nil {
		return internalError("failed to record error event", err)
	}
	return nil
}

func (r *PgxEventRepository) RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	before, err := jsonColumn(event.Before)
	if err != nil {
		return internalError("failed to encode audit snapshot", err)
	}
	after, err := jsonColumn(event.After)
	if err != nil {
		return internalError("failed to encode audit snapshot", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO audit_events (event_id, entity, entity_id, action, before, after, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		event.EventID, event.Entity, event.EntityID, string(event.Action), before, after, event.User, event.At)
	if err != nil {
		return internalError("failed to record audit event", err)
	}
	return nil
}

func (r *PgxEventRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO notifications (notification_id, recipient, message, type, entry_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		n.NotificationID, n.Recipient, n.Message, string(n.Type), n.EntryID, n.CreatedAt)
	if err != nil {
		return internalError("failed to save notification", err)
	}
	return nil
}

// SaveReport archives the report payload as JSON.
func (r *PgxEventRepository) SaveReport(ctx context.Context, report domain.SavedReport) error {
	payload, err := json.Marshal(report.Payload)
	if err != nil {
		return internalError("failed to encode report payload", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO saved_reports (report_id, kind, range_from, range_to, payload, saved_by, saved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		report.ReportID, string(report.Kind), report.Range.From, report.Range.To, payload, report.SavedBy, report.SavedAt)
	if err != nil {
		return internalError("failed to save report "+report.ReportID, err)
	}
	return nil
}

// jsonColumn encodes v for a nullable JSONB column.
func jsonColumn(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
