package repositories

import (
	"context"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
)

// RateRepositoryFacade defines persistence for effective-dated currency rates.
type RateRepositoryFacade interface {
	// SaveRate upserts a rate keyed by (from, to, valid_from).
	SaveRate(ctx context.Context, rate domain.CurrencyRate) error

	// FindEffectiveRate returns the rate current for the given date:
	// valid_from <= date and (valid_to null or >= date), preferring the most
	// recent valid_from, ties broken by latest created row.
	FindEffectiveRate(ctx context.Context, from, to string, date time.Time) (*domain.CurrencyRate, error)

	// FindLatestRate returns the most recent rate for the pair regardless of
	// validity window. Used for the reverse-pair fallback.
	FindLatestRate(ctx context.Context, from, to string) (*domain.CurrencyRate, error)

	ListRates(ctx context.Context, from, to *string) ([]domain.CurrencyRate, error)
}
