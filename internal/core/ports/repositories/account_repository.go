package repositories

import (
	"context"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the ledger
// catalog (chart of accounts).
type AccountRepositoryFacade interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate if
	// the code is already taken.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error
	FindAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.LedgerAccount, error)
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
	// UpdateAccount persists mutable fields (name, active flag, parent).
	UpdateAccount(ctx context.Context, account domain.LedgerAccount) error
	// HasJournalLines reports whether any posted line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
	// DeleteAccount removes an account; callers must enforce protect-on-delete.
	DeleteAccount(ctx context.Context, accountID string) error
}
