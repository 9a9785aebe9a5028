package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // acting user reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same user and time.
func NewAuditFields(actingUser string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actingUser,
		LastUpdatedAt: now,
		LastUpdatedBy: actingUser,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(actingUser string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actingUser
}
