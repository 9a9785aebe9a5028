package domain

import "time"

// ErrorEvent is handed to the error log whenever a user action is refused.
type ErrorEvent struct {
	EventID   string    `json:"eventID"`
	User      string    `json:"user"`
	Message   string    `json:"message"`
	Context   string    `json:"context"` // where the failure happened, e.g. "journal_submission"
	Timestamp time.Time `json:"timestamp"`
}

// Error event contexts.
const (
	ContextJournalSubmission = "journal_submission"
	ContextJournalPosting    = "journal_posting"
)

// NotificationType classifies a notification payload.
type NotificationType string

const (
	NotificationSubmitted NotificationType = "submitted"
	NotificationApproval  NotificationType = "approval"
	NotificationRejection NotificationType = "rejection"
)

// Notification is handed to the notification collaborator for delivery.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	Recipient      string           `json:"recipient"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	EntryID        string           `json:"entryID"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AuditAction is the kind of change recorded in an AuditEvent.
type AuditAction string

const (
	AuditCreate     AuditAction = "create"
	AuditUpdate     AuditAction = "update"
	AuditDeactivate AuditAction = "deactivate"
	AuditSubmit     AuditAction = "submit"
	AuditApprove    AuditAction = "approve"
	AuditReject     AuditAction = "reject"
)

// AuditEvent carries before/after snapshots of a changed entity.
type AuditEvent struct {
	EventID  string      `json:"eventID"`
	Entity   string      `json:"entity"` // "account" or "journal"
	EntityID string      `json:"entityID"`
	Action   AuditAction `json:"action"`
	Before   any         `json:"before"`
	After    any         `json:"after"`
	User     string      `json:"user"`
	At       time.Time   `json:"at"`
}
