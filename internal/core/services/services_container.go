package services

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountLedger(repos.LedgerRepo),
		WithAccountAuditLog(repos.EventRepo),
	)

	validator := NewJournalValidator(repos.EventRepo)
	poster := NewLedgerPoster(repos.LedgerRepo)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		validator,
		poster,
		WithNotificationSink(repos.EventRepo),
		WithJournalAuditLog(repos.EventRepo),
		WithApproverRecipient(cfg.ApproverRecipient),
	)

	container.Ledger = NewLedgerService(repos.AccountRepo, repos.LedgerRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.LedgerRepo, WithReportArchive(repos.EventRepo))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
)
