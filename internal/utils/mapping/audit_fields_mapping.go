package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelAuditFields copies the created/updated stamps into their column form.
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

// ToDomainAuditFields is the inverse of ToModelAuditFields.
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
