package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerReader
	auditLog    portsrepo.AuditLog
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountLedger lets deactivation check the account's current balance.
func WithAccountLedger(repo portsrepo.LedgerReader) AccountServiceOption {
	return func(s *accountService) {
		s.ledgerRepo = repo
	}
}

// WithAccountAuditLog records before/after snapshots of account changes.
func WithAccountAuditLog(log portsrepo.AuditLog) AccountServiceOption {
	return func(s *accountService) {
		s.auditLog = log
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		BaseService: newBaseService(),
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actingUser string) (*domain.Account, error) {
	category, ok := domain.ParseAccountCategory(req.Category)
	if !ok {
		return nil, apperrors.NewValidationError(apperrors.RuleInput, "Unknown account category %q.", req.Category)
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Number:      strings.TrimSpace(req.Number),
		Category:    category,
		Subcategory: strings.TrimSpace(req.Subcategory),
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actingUser, s.now()),
	}
	if req.NormalSide != "" {
		side, ok := domain.ParseSide(req.NormalSide)
		if !ok {
			return nil, apperrors.NewValidationError(apperrors.RuleInput, "Normal side must be Debit or Credit.")
		}
		account.NormalSide = side
	} else {
		account.NormalSide = domain.DefaultNormalSide(category)
	}
	initial, err := domain.ParseMoneyStrict(req.InitialBalance)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.RuleInput, "Initial balance is not a valid amount.")
	}
	account.InitialBalance = initial

	if err := s.checkAccountFields(ctx, account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.recordAudit(ctx, domain.AuditCreate, account.AccountID, nil, account, actingUser)
	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("number", account.Number),
		slog.String("category", string(account.Category)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actingUser string) (*domain.Account, error) {
	existing, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	before := *existing
	updated := *existing

	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Number != nil {
		updated.Number = strings.TrimSpace(*req.Number)
	}
	if req.Subcategory != nil {
		updated.Subcategory = strings.TrimSpace(*req.Subcategory)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.NormalSide != nil {
		side, ok := domain.ParseSide(*req.NormalSide)
		if !ok {
			return nil, apperrors.NewValidationError(apperrors.RuleInput, "Normal side must be Debit or Credit.")
		}
		updated.NormalSide = side
	}
	if req.InitialBalance != nil {
		initial, err := domain.ParseMoneyStrict(*req.InitialBalance)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.RuleInput, "Initial balance is not a valid amount.")
		}
		updated.InitialBalance = initial
	}

	if err := s.checkAccountFields(ctx, updated); err != nil {
		return nil, err
	}

	updated.Touch(actingUser, s.now())
	if err := s.accountRepo.UpdateAccount(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.recordAudit(ctx, domain.AuditUpdate, accountID, before, updated, actingUser)
	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actingUser string) (*domain.Account, error) {
	existing, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive {
		return existing, nil
	}

	balance, err := s.currentBalance(ctx, *existing)
	if err != nil {
		return nil, err
	}
	if balance.IsPositive() {
		return nil, apperrors.NewValidationError(apperrors.RuleInput,
			"Account %s has a balance of %s; accounts with a balance greater than zero cannot be deactivated.", existing.Label(), balance.Format())
	}

	before := *existing
	updated := *existing
	updated.IsActive = false
	updated.Touch(actingUser, s.now())
	if err := s.accountRepo.UpdateAccount(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.recordAudit(ctx, domain.AuditDeactivate, accountID, before, updated, actingUser)
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return &updated, nil
}

// checkAccountFields enforces naming, numbering and uniqueness rules.
// Name and number must be unique across active and inactive accounts.
func (s *accountService) checkAccountFields(ctx context.Context, account domain.Account) error {
	if account.Name == "" {
		return apperrors.NewValidationError(apperrors.RuleInput, "Account name is required.")
	}
	if !domain.IsDigitsOnly(account.Number) {
		return apperrors.NewValidationError(apperrors.RuleInput, "Account number must contain digits only.")
	}
	if !domain.NumberHasValidPrefix(account.Category, account.Number) {
		return apperrors.NewValidationError(apperrors.RuleInput,
			"Account number %s does not match the %s category prefix.", account.Number, strings.ToLower(string(account.Category)))
	}

	if other, err := s.accountRepo.FindAccountByName(ctx, account.Name); err == nil && other.AccountID != account.AccountID {
		return fmt.Errorf("%w: an account named %q already exists", apperrors.ErrDuplicate, account.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check account name: %w", err)
	}
	if other, err := s.accountRepo.FindAccountByNumber(ctx, account.Number); err == nil && other.AccountID != account.AccountID {
		return fmt.Errorf("%w: account number %s is already in use", apperrors.ErrDuplicate, account.Number)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check account number: %w", err)
	}
	return nil
}

// currentBalance is the account's all-time ending balance.
func (s *accountService) currentBalance(ctx context.Context, account domain.Account) (domain.Money, error) {
	if s.ledgerRepo == nil {
		return account.InitialBalance, nil
	}
	lines, err := s.ledgerRepo.ListLedgerLines(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines", slog.String("account_id", account.AccountID))
		return domain.Money{}, fmt.Errorf("failed to load ledger lines: %w", err)
	}
	snap := accounting.ComputeBalances([]domain.Account{account}, lines, domain.Unbounded())[account.AccountID]
	return snap.End, nil
}

func (s *accountService) recordAudit(ctx context.Context, action domain.AuditAction, accountID string, before, after any, actingUser string) {
	if s.auditLog == nil {
		return
	}
	event := domain.AuditEvent{
		EventID:  uuid.NewString(),
		Entity:   "account",
		EntityID: accountID,
		Action:   action,
		Before:   before,
		After:    after,
		User:     actingUser,
		At:       s.now(),
	}
	if err := s.auditLog.RecordAuditEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("account_id", accountID),
			slog.String("action", string(action)))
	}
}
