package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
)

var (
	ErrSelfParent  = errors.New("account cannot be its own parent")
	ErrParentCycle = errors.New("parent assignment would create a cycle")
)

// catalogService manages the chart of accounts.
type catalogService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{accountRepo: accountRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// GetOrCreateAccount returns the account with the given code, creating it
// when absent. Idempotent: concurrent callers racing on the same code
// converge on the first writer's row.
func (s *catalogService) GetOrCreateAccount(ctx context.Context, code, name, accountType, actorID string) (*domain.LedgerAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	acctType, err := domain.ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %s: %w", code, err)
	}

	account := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: acctType,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actorID,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a create race; the winner's row is authoritative.
			return s.accountRepo.FindAccountByCode(ctx, code)
		}
		logger.Error("Failed to create ledger account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account %s: %w", code, err)
	}

	logger.Info("Ledger account created", slog.String("code", code), slog.String("account_type", string(acctType)))
	return &account, nil
}

// GetAccountByCode retrieves an account by its chart code.
func (s *catalogService) GetAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

// ListAccounts returns the full chart of accounts ordered by code.
func (s *catalogService) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	return s.accountRepo.ListAccounts(ctx)
}

// SetAccountParent assigns parentCode as the parent of code. Self-parenting
// is rejected outright; the walk up the parent chain rejects cycles.
func (s *catalogService) SetAccountParent(ctx context.Context, code, parentCode string) error {
	if code == parentCode {
		return fmt.Errorf("%w: %s", ErrSelfParent, code)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return err
	}
	parent, err := s.accountRepo.FindAccountByCode(ctx, parentCode)
	if err != nil {
		return err
	}

	// Walk the ancestor chain of the proposed parent; finding the child
	// there means the assignment closes a loop.
	cursor := parent
	for cursor.ParentAccountID != nil {
		if *cursor.ParentAccountID == account.AccountID {
			return fmt.Errorf("%w: %s -> %s", ErrParentCycle, code, parentCode)
		}
		ancestors, err := s.accountRepo.FindAccountsByIDs(ctx, []string{*cursor.ParentAccountID})
		if err != nil {
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		next, ok := ancestors[*cursor.ParentAccountID]
		if !ok {
			break
		}
		cursor = &next
	}

	account.ParentAccountID = &parent.AccountID
	return s.accountRepo.UpdateAccount(ctx, *account)
}

// UpdateAccount changes the mutable fields of an account (name, active flag).
func (s *catalogService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", code, err)
	}
	return account, nil
}

// DeleteAccount removes an unused account. Accounts referenced by posted
// journal lines are protected.
func (s *catalogService) DeleteAccount(ctx context.Context, code string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return err
	}

	referenced, err := s.accountRepo.HasJournalLines(ctx, account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check journal references for account %s: %w", code, err)
	}
	if referenced {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountReferenced, code)
	}

	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID); err != nil {
		logger.Error("Failed to delete ledger account", slog.String("code", code), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}
	logger.Info("Ledger account deleted", slog.String("code", code))
	return nil
}
