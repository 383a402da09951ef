package services

import (
	"context"
	"io"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/events"
	"github.com/shopspring/decimal"
)

// CatalogSvcFacade manages the chart of accounts.
type CatalogSvcFacade interface {
	// GetOrCreateAccount is idempotent by code. Fails with
	// apperrors.ErrInvalidAccountType for types outside the closed enum.
	GetOrCreateAccount(ctx context.Context, code, name, accountType, actorID string) (*domain.LedgerAccount, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.LedgerAccount, error)
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
	// SetAccountParent assigns a parent, rejecting self-parenting and cycles.
	SetAccountParent(ctx context.Context, code, parentCode string) error
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest) (*domain.LedgerAccount, error)
	// DeleteAccount enforces protect-on-delete for referenced accounts.
	DeleteAccount(ctx context.Context, code string) error
}

// RatesSvcFacade provides point-in-time currency conversion and rate
// maintenance.
type RatesSvcFacade interface {
	// GetRate never fails on missing data: identity for same pair, direct
	// effective-dated match, reverse-pair inverse, then 1.0 fail-open with
	// the source reporting the fallback.
	GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, domain.RateSource, error)
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
	CreateRate(ctx context.Context, req dto.CreateRateRequest, actorID string) (*domain.CurrencyRate, error)
	ListRates(ctx context.Context, from, to *string) ([]domain.CurrencyRate, error)
	// ImportRatesCSV bulk-loads rates from a CSV source; commit=false
	// previews without persisting.
	ImportRatesCSV(ctx context.Context, r io.Reader, commit bool, actorID string) (*dto.RateImportSummary, error)
}

// JournalSvcFacade owns the append-only journal.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error)
	// ReverseEntry posts a mirror entry under a fresh reference; the original
	// is never mutated.
	ReverseEntry(ctx context.Context, entryID, reference, actorID string) (*domain.JournalEntry, error)
	// AccountCodes resolves account IDs referenced by an entry's lines to
	// their chart codes, for response mapping.
	AccountCodes(ctx context.Context, entry *domain.JournalEntry) (map[string]string, error)
}

// BalanceSvcFacade maintains the materialized balance cache.
type BalanceSvcFacade interface {
	Rebuild(ctx context.Context, req dto.RebuildRequest) (*domain.RebuildReport, error)
}

// PostingSvcFacade translates domain events into balanced journal entries,
// idempotently keyed by source event.
type PostingSvcFacade interface {
	PostPaymentJournal(ctx context.Context, ev events.PaymentCompleted) (*domain.JournalEntry, error)
	PostExpenseJournal(ctx context.Context, ev events.ExpensePaid) (*domain.JournalEntry, error)
}

// ReportingSvcFacade computes the reporting surface.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error)
	ProfitAndLoss(ctx context.Context, start, end time.Time, baseCurrency string) (*domain.PnLReport, error)
	CashFlow(ctx context.Context, start, end time.Time) (*domain.CashFlowReport, error)
}

// ServiceContainer bundles the service facades for handler injection.
type ServiceContainer struct {
	Catalog   CatalogSvcFacade
	Rates     RatesSvcFacade
	Journal   JournalSvcFacade
	Balance   BalanceSvcFacade
	Posting   PostingSvcFacade
	Reporting ReportingSvcFacade
}
