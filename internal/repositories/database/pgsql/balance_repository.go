package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBalanceRepository implements BalanceRepositoryFacade using pgxpool.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// TrialBalanceRows joins balances with their accounts, ordered by code.
func (r *PgxBalanceRepository) TrialBalanceRows(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.code, a.name, a.account_type, b.balance
		FROM ledger_balances b
		JOIN ledger_accounts a ON a.account_id = b.account_id
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance rows: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &row.AccountType, &row.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// AggregateLineSums sums all journal lines per account in one pass.
func (r *PgxBalanceRepository) AggregateLineSums(ctx context.Context, accountIDs []string) (map[string]domain.LineSums, error) {
	query := `
		SELECT account_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_lines
		WHERE cardinality($1::text[]) = 0 OR account_id = ANY($1)
		GROUP BY account_id;
	`
	if accountIDs == nil {
		accountIDs = []string{}
	}
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal lines: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]domain.LineSums)
	for rows.Next() {
		var accountID string
		var s domain.LineSums
		if err := rows.Scan(&accountID, &s.Debits, &s.Credits); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		sums[accountID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", err)
	}
	return sums, nil
}

// ResetBalances zeroes the given accounts' balances, or all when empty.
func (r *PgxBalanceRepository) ResetBalances(ctx context.Context, accountIDs []string) error {
	if accountIDs == nil {
		accountIDs = []string{}
	}
	query := `
		UPDATE ledger_balances SET balance = 0, updated_at = now()
		WHERE cardinality($1::text[]) = 0 OR account_id = ANY($1);
	`
	if _, err := r.Pool.Exec(ctx, query, accountIDs); err != nil {
		return fmt.Errorf("failed to reset balances: %w", err)
	}
	return nil
}

// ApplyComputedBalance upserts the authoritative balance for an account and
// reports whether the stored value actually changed.
func (r *PgxBalanceRepository) ApplyComputedBalance(ctx context.Context, accountID string, balance decimal.Decimal) (bool, error) {
	query := `
		INSERT INTO ledger_balances (account_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (account_id) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = now()
		WHERE ledger_balances.balance IS DISTINCT FROM EXCLUDED.balance;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, balance)
	if err != nil {
		return false, fmt.Errorf("failed to apply balance for account %s: %w", accountID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxBalanceRepository) GetBalance(ctx context.Context, accountID string) (*domain.LedgerBalance, error) {
	query := `SELECT account_id, balance, updated_at FROM ledger_balances WHERE account_id = $1;`
	var balance domain.LedgerBalance
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(&balance.AccountID, &balance.Balance, &balance.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for account %s: %w", accountID, err)
	}
	return &balance, nil
}
