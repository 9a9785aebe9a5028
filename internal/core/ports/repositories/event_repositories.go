package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ErrorLog receives refused user actions.
type ErrorLog interface {
	RecordErrorEvent(ctx context.Context, event domain.ErrorEvent) error
}

// AuditLog receives before/after snapshots of changed entities.
type AuditLog interface {
	RecordAuditEvent(ctx context.Context, event domain.AuditEvent) error
}

// NotificationSink receives notification payloads for delivery.
type NotificationSink interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
}

// ReportArchive receives generated reports unchanged.
type ReportArchive interface {
	SaveReport(ctx context.Context, report domain.SavedReport) error
}

// EventRepositoryFacade combines the collaborator sinks backed by one store
type EventRepositoryFacade interface {
	ErrorLog
	AuditLog
	NotificationSink
	ReportArchive
}
