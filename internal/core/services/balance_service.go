package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
	"github.com/hawwa-platform/ledgercore/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService rebuilds the materialized balance cache from journal
// history. The journal is the source of truth; balances may be discarded
// and recomputed at any time without semantic loss.
type balanceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// Rebuild recomputes balances from journal history in one aggregation pass
// per run. Only accounts whose computed balance differs from the stored one
// are written; dry-run reports the deltas without writing. Reset zeroes
// in-scope balances first so no stale balance survives for accounts that
// no longer have lines. Re-running converges: a second pass reports zero
// changed accounts.
func (s *balanceService) Rebuild(ctx context.Context, req dto.RebuildRequest) (*domain.RebuildReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	scope, err := s.resolveScope(ctx, req.Accounts)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(scope))
	for _, account := range scope {
		accountIDs = append(accountIDs, account.AccountID)
	}

	if req.Reset && !req.DryRun {
		if err := s.balanceRepo.ResetBalances(ctx, accountIDs); err != nil {
			return nil, fmt.Errorf("failed to reset balances: %w", err)
		}
	}

	sums, err := s.balanceRepo.AggregateLineSums(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal lines: %w", err)
	}

	report := &domain.RebuildReport{DryRun: req.DryRun}
	for _, account := range scope {
		report.Examined++

		computed, err := accounting.SumDelta(account.AccountType, sums[account.AccountID])
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance for account %s: %w", account.Code, err)
		}

		if req.DryRun {
			stored := decimal.Zero
			current, err := s.balanceRepo.GetBalance(ctx, account.AccountID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to read balance for account %s: %w", account.Code, err)
			}
			if err == nil {
				stored = current.Balance
			}
			if !stored.Equal(computed) {
				report.Changed++
				report.Deltas = append(report.Deltas, domain.RebuildDelta{
					AccountCode: account.Code,
					Stored:      stored,
					Computed:    computed,
				})
			}
			continue
		}

		changed, err := s.balanceRepo.ApplyComputedBalance(ctx, account.AccountID, computed)
		if err != nil {
			return nil, fmt.Errorf("failed to write balance for account %s: %w", account.Code, err)
		}
		if changed {
			report.Changed++
		}
	}

	logger.Info("Balance rebuild finished",
		slog.Bool("dry_run", report.DryRun),
		slog.Int("examined", report.Examined),
		slog.Int("changed", report.Changed),
	)
	return report, nil
}

// resolveScope maps requested account codes to accounts, defaulting to the
// whole chart when no codes are given.
func (s *balanceService) resolveScope(ctx context.Context, codes []string) ([]domain.LedgerAccount, error) {
	if len(codes) == 0 {
		return s.accountRepo.ListAccounts(ctx)
	}
	scope := make([]domain.LedgerAccount, 0, len(codes))
	for _, code := range codes {
		account, err := s.accountRepo.FindAccountByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account %q: %w", code, err)
		}
		scope = append(scope, *account)
	}
	return scope, nil
}
