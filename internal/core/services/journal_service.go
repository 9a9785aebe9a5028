package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/google/uuid"
)

// DefaultApproverRecipient receives notifications for newly submitted entries.
const DefaultApproverRecipient = "managers"

type journalService struct {
	BaseService
	journalRepo       portsrepo.JournalRepositoryFacade
	accountRepo       portsrepo.AccountReader
	validator         *JournalValidator
	poster            *LedgerPoster
	notifications     portsrepo.NotificationSink
	auditLog          portsrepo.AuditLog
	approverRecipient string
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithNotificationSink hands approval/rejection payloads to sink.
func WithNotificationSink(sink portsrepo.NotificationSink) JournalServiceOption {
	return func(s *journalService) {
		s.notifications = sink
	}
}

// WithJournalAuditLog records before/after snapshots of workflow transitions.
func WithJournalAuditLog(log portsrepo.AuditLog) JournalServiceOption {
	return func(s *journalService) {
		s.auditLog = log
	}
}

// WithApproverRecipient overrides who is notified of submitted entries.
func WithApproverRecipient(recipient string) JournalServiceOption {
	return func(s *journalService) {
		if recipient != "" {
			s.approverRecipient = recipient
		}
	}
}

// WithClock pins the service clock, and the clock of its validator and poster.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.Now = now
		s.validator.Now = now
		s.poster.Now = now
	}
}

// NewJournalService creates the journal workflow service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	validator *JournalValidator,
	poster *LedgerPoster,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		BaseService:       newBaseService(),
		journalRepo:       journalRepo,
		accountRepo:       accountRepo,
		validator:         validator,
		poster:            poster,
		approverRecipient: DefaultApproverRecipient,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// SubmitJournal normalizes and validates a draft entry, then stores it as pending.
// A refused entry is reported to the error log and nothing is written.
func (s *journalService) SubmitJournal(ctx context.Context, req dto.SubmitJournalRequest, actingUser string) (*domain.JournalEntry, error) {
	doc, err := req.ToDocument()
	if err != nil {
		s.validator.Report(ctx, err, domain.ContextJournalSubmission, actingUser)
		return nil, err
	}
	if err := CheckDescription(doc.Description); err != nil {
		s.validator.Report(ctx, err, domain.ContextJournalSubmission, actingUser)
		return nil, err
	}
	entry, err := doc.ToEntry()
	if err != nil {
		verr := apperrors.NewValidationError(apperrors.RuleInput, "%s", err.Error())
		s.validator.Report(ctx, verr, domain.ContextJournalSubmission, actingUser)
		return nil, verr
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load chart of accounts for validation")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if err := s.validator.Validate(ctx, entry, accounts, actingUser); err != nil {
		return nil, err
	}

	byID := domain.AccountsByID(accounts)
	for i := range entry.Lines {
		entry.Lines[i].AccountName = byID[entry.Lines[i].AccountID].Name
	}
	entry.JournalID = uuid.NewString()
	entry.PreparedBy = actingUser
	entry.AuditFields = domain.NewAuditFields(actingUser, s.now())

	if err := s.journalRepo.SaveJournal(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("journal_id", entry.JournalID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.notify(ctx, s.approverRecipient, domain.NotificationSubmitted, entry,
		fmt.Sprintf("Journal entry %q submitted by %s is awaiting approval.", entry.Description, actingUser))
	s.recordAudit(ctx, domain.AuditSubmit, entry.JournalID, nil, entry, actingUser)

	debits, _ := entry.Totals()
	s.LogInfo(ctx, "Journal entry submitted",
		slog.String("journal_id", entry.JournalID),
		slog.Int("lines", len(entry.Lines)),
		slog.String("amount", debits.String()))
	return &entry, nil
}

// ApproveJournal transitions a pending entry to approved and posts it.
// Approval happens at most once: a second or concurrent approval returns
// apperrors.ErrConflict and never reaches the poster.
func (s *journalService) ApproveJournal(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error) {
	entry, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: journal %s is already %s", apperrors.ErrConflict, journalID, strings.ToLower(string(entry.Status)))
	}
	if !entry.IsBalanced() {
		debits, credits := entry.Totals()
		verr := apperrors.NewValidationError(apperrors.RuleBalanced,
			"Total debits (%s) must equal total credits (%s).", debits.Format(), credits.Format())
		s.validator.Report(ctx, verr, domain.ContextJournalPosting, actingUser)
		return nil, verr
	}

	before := *entry
	now := s.now()
	err = s.journalRepo.TransitionJournalStatus(ctx, journalID, portsrepo.StatusChange{
		From:       domain.Pending,
		To:         domain.Approved,
		ActingUser: actingUser,
		At:         now,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to approve journal entry", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	entry.Status = domain.Approved
	entry.ApprovedBy = &actingUser
	entry.ApprovedAt = &now
	entry.Touch(actingUser, now)
	s.recordAudit(ctx, domain.AuditApprove, journalID, before, *entry, actingUser)

	if err := s.post(ctx, entry, actingUser); err != nil {
		return nil, err
	}

	s.notify(ctx, entry.PreparedBy, domain.NotificationApproval, *entry,
		fmt.Sprintf("Your journal entry %q was approved by %s.", entry.Description, actingUser))
	s.LogInfo(ctx, "Journal entry approved", slog.String("journal_id", journalID))
	return entry, nil
}

// RejectJournal rejects a pending entry with a reason. Rejection is terminal.
func (s *journalService) RejectJournal(ctx context.Context, journalID string, reason string, actingUser string) (*domain.JournalEntry, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError(apperrors.RuleInput, "A rejection reason is required.")
	}

	entry, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Pending {
		return nil, fmt.Errorf("%w: journal %s is already %s", apperrors.ErrConflict, journalID, strings.ToLower(string(entry.Status)))
	}

	before := *entry
	now := s.now()
	err = s.journalRepo.TransitionJournalStatus(ctx, journalID, portsrepo.StatusChange{
		From:            domain.Pending,
		To:              domain.Rejected,
		ActingUser:      actingUser,
		At:              now,
		RejectionReason: &reason,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to reject journal entry", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	entry.Status = domain.Rejected
	entry.RejectedBy = &actingUser
	entry.RejectionReason = &reason
	entry.Touch(actingUser, now)

	s.recordAudit(ctx, domain.AuditReject, journalID, before, *entry, actingUser)
	s.notify(ctx, entry.PreparedBy, domain.NotificationRejection, *entry,
		fmt.Sprintf("Your journal entry %q was rejected by %s: %s", entry.Description, actingUser, reason))
	s.LogInfo(ctx, "Journal entry rejected", slog.String("journal_id", journalID))
	return entry, nil
}

// RetryPosting posts the missing ledger lines of an approved entry that is
// not yet fully posted. Lines already in the ledger are not written again.
func (s *journalService) RetryPosting(ctx context.Context, journalID string, actingUser string) (*domain.JournalEntry, error) {
	entry, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Approved {
		return nil, fmt.Errorf("%w: journal %s is %s, only approved entries can be posted", apperrors.ErrConflict, journalID, strings.ToLower(string(entry.Status)))
	}
	if entry.PostingState == domain.PostingPosted {
		return nil, fmt.Errorf("%w: journal %s is already posted", apperrors.ErrConflict, journalID)
	}

	postedBy := actingUser
	if entry.ApprovedBy != nil {
		postedBy = *entry.ApprovedBy
	}
	if err := s.post(ctx, entry, postedBy); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal posting retried", slog.String("journal_id", journalID), slog.String("user_id", actingUser))
	return entry, nil
}

// post runs the poster and records the outcome on the entry. A failure leaves
// the entry approved with posting state FAILED so it can be retried.
func (s *journalService) post(ctx context.Context, entry *domain.JournalEntry, actingUser string) error {
	if _, err := s.poster.Post(ctx, *entry, actingUser); err != nil {
		s.validator.Report(ctx, err, domain.ContextJournalPosting, actingUser)
		if stateErr := s.journalRepo.UpdatePostingState(ctx, entry.JournalID, domain.PostingFailed, nil); stateErr != nil {
			s.LogError(ctx, stateErr, "Failed to mark journal posting as failed", slog.String("journal_id", entry.JournalID))
		}
		entry.PostingState = domain.PostingFailed
		return err
	}

	postedAt := s.now()
	if err := s.journalRepo.UpdatePostingState(ctx, entry.JournalID, domain.PostingPosted, &postedAt); err != nil {
		s.LogError(ctx, err, "Ledger lines written but posting state not recorded", slog.String("journal_id", entry.JournalID))
		return &apperrors.PostingError{JournalID: entry.JournalID, Err: err}
	}
	entry.PostingState = domain.PostingPosted
	entry.PostedAt = &postedAt
	return nil
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	return entry, nil
}

// ListJournals retrieves a page of journal entries matching the filters.
// A malformed date filter is logged and ignored.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	r, rangeErr := domain.ParseDateRange(params.From, params.To)
	if rangeErr != nil {
		s.LogWarn(ctx, "Ignoring malformed journal date filter", slog.String("error", rangeErr.Error()))
	}
	filter := domain.JournalFilter{
		Status:    domain.JournalStatus(params.Status),
		AccountID: params.AccountID,
		Search:    params.Search,
		Range:     r,
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals from repository")
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	s.LogDebug(ctx, "Journals listed", slog.Int("count", len(journals)))
	return resp, nil
}

func (s *journalService) notify(ctx context.Context, recipient string, kind domain.NotificationType, entry domain.JournalEntry, message string) {
	if s.notifications == nil || recipient == "" {
		return
	}
	n := domain.Notification{
		NotificationID: uuid.NewString(),
		Recipient:      recipient,
		Message:        message,
		Type:           kind,
		EntryID:        entry.JournalID,
		CreatedAt:      s.now(),
	}
	if err := s.notifications.SaveNotification(ctx, n); err != nil {
		s.LogError(ctx, err, "Failed to hand off notification",
			slog.String("journal_id", entry.JournalID),
			slog.String("type", string(kind)))
	}
}

func (s *journalService) recordAudit(ctx context.Context, action domain.AuditAction, journalID string, before, after any, actingUser string) {
	if s.auditLog == nil {
		return
	}
	event := domain.AuditEvent{
		EventID:  uuid.NewString(),
		Entity:   "journal",
		EntityID: journalID,
		Action:   action,
		Before:   before,
		After:    after,
		User:     actingUser,
		At:       s.now(),
	}
	if err := s.auditLog.RecordAuditEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("journal_id", journalID),
			slog.String("action", string(action)))
	}
}
