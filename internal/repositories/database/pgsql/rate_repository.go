package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements RateRepositoryFacade using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

const rateColumns = `rate_id, from_currency, to_currency, rate, valid_from, valid_to, created_at, created_by`

// SaveRate upserts a rate keyed by (from, to, valid_from).
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.CurrencyRate) error {
	query := `
		INSERT INTO currency_rates (rate_id, from_currency, to_currency, rate, valid_from, valid_to, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (from_currency, to_currency, valid_from) DO UPDATE
		SET rate = EXCLUDED.rate, valid_to = EXCLUDED.valid_to, created_at = EXCLUDED.created_at, created_by = EXCLUDED.created_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.RateID,
		rate.FromCurrency,
		rate.ToCurrency,
		rate.Rate,
		rate.ValidFrom,
		rate.ValidTo,
		rate.CreatedAt,
		rate.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rate %s->%s: %w", rate.FromCurrency, rate.ToCurrency, err)
	}
	return nil
}

// FindEffectiveRate returns the rate current for the given date, preferring
// the most recent valid_from and the latest created row on ties.
func (r *PgxRateRepository) FindEffectiveRate(ctx context.Context, from, to string, date time.Time) (*domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE from_currency = $1 AND to_currency = $2
		  AND valid_from <= $3
		  AND (valid_to IS NULL OR valid_to >= $3)
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, from, to, date)
}

// FindLatestRate returns the most recent rate for the pair regardless of
// validity window.
func (r *PgxRateRepository) FindLatestRate(ctx context.Context, from, to string) (*domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, from, to)
}

func (r *PgxRateRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.CurrencyRate, error) {
	var rate domain.CurrencyRate
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&rate.RateID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.ValidFrom,
		&rate.ValidTo,
		&rate.CreatedAt,
		&rate.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency rate: %w", err)
	}
	return &rate, nil
}

func (r *PgxRateRepository) ListRates(ctx context.Context, from, to *string) ([]domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE ($1::text IS NULL OR from_currency = $1)
		  AND ($2::text IS NULL OR to_currency = $2)
		ORDER BY from_currency, to_currency, valid_from DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list currency rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.CurrencyRate{}
	for rows.Next() {
		var rate domain.CurrencyRate
		err := rows.Scan(
			&rate.RateID,
			&rate.FromCurrency,
			&rate.ToCurrency,
			&rate.Rate,
			&rate.ValidFrom,
			&rate.ValidTo,
			&rate.CreatedAt,
			&rate.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rate rows: %w", err)
	}
	return rates, nil
}
