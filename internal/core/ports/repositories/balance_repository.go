package repositories

import (
	"context"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceRepositoryFacade defines persistence for materialized balances.
// Incremental updates happen inside JournalRepositoryFacade.SaveEntry; this
// interface covers reads and the rebuild path.
type BalanceRepositoryFacade interface {
	// TrialBalanceRows joins balances with their accounts, ordered by code.
	TrialBalanceRows(ctx context.Context) ([]domain.TrialBalanceRow, error)

	// AggregateLineSums aggregates all historical journal lines per account
	// in one pass. An empty accountIDs slice scopes to every account that
	// has lines or a balance row.
	AggregateLineSums(ctx context.Context, accountIDs []string) (map[string]domain.LineSums, error)

	// ResetBalances zeroes the balances for the given accounts (all balances
	// when the slice is empty).
	ResetBalances(ctx context.Context, accountIDs []string) error

	// ApplyComputedBalance writes the authoritative balance for an account,
	// creating the row if needed, under the same row-locking discipline as
	// incremental updates. Returns whether the stored value changed.
	ApplyComputedBalance(ctx context.Context, accountID string, balance decimal.Decimal) (bool, error)

	GetBalance(ctx context.Context, accountID string) (*domain.LedgerBalance, error)
}
