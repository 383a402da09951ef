package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
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
	"github.com/shopspring/decimal"
)

// ratesService resolves point-in-time currency rates with a deliberate
// fail-open policy: reports must never crash on missing rate data.
type ratesService struct {
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRatesService creates a new rates service.
func NewRatesService(rateRepo portsrepo.RateRepositoryFacade) portssvc.RatesSvcFacade {
	return &ratesService{rateRepo: rateRepo}
}

var _ portssvc.RatesSvcFacade = (*ratesService)(nil)

// GetRate returns the multiplier converting from -> to effective at date.
// Fallback order: identity for same pair (no lookup), direct effective-dated
// match, reverse-pair inverse, then identity 1.0. A FALLBACK source is a
// data-quality signal and is logged as a warning, never an error.
func (s *ratesService) GetRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, domain.RateSource, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return decimal.NewFromInt(1), domain.RateSourceIdentity, nil
	}

	direct, err := s.rateRepo.FindEffectiveRate(ctx, from, to, date)
	if err == nil {
		return direct.Rate, domain.RateSourceDirect, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, "", fmt.Errorf("failed to look up rate %s->%s: %w", from, to, err)
	}

	reverse, err := s.rateRepo.FindLatestRate(ctx, to, from)
	if err == nil && !reverse.Rate.IsZero() {
		return decimal.NewFromInt(1).Div(reverse.Rate), domain.RateSourceInverse, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, "", fmt.Errorf("failed to look up reverse rate %s->%s: %w", to, from, err)
	}

	logger.Warn("No currency rate found, falling back to identity",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("date", date.Format("2006-01-02")),
	)
	return decimal.NewFromInt(1), domain.RateSourceFallback, nil
}

// ConvertAmount converts amount from one currency to another using the rate
// effective at date. High-precision decimal arithmetic throughout.
func (s *ratesService) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	rate, _, err := s.GetRate(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// CreateRate records one effective-dated rate.
func (s *ratesService) CreateRate(ctx context.Context, req dto.CreateRateRequest, actorID string) (*domain.CurrencyRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	from := strings.ToUpper(strings.TrimSpace(req.FromCurrency))
	to := strings.ToUpper(strings.TrimSpace(req.ToCurrency))
	if from == to {
		return nil, fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}
	if req.ValidTo != nil && req.ValidTo.Before(req.ValidFrom) {
		return nil, fmt.Errorf("%w: valid_to precedes valid_from", apperrors.ErrValidation)
	}

	rate := domain.CurrencyRate{
		RateID:       uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         req.Rate,
		ValidFrom:    req.ValidFrom,
		ValidTo:      req.ValidTo,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    actorID,
	}
	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save currency rate: %w", err)
	}
	return &rate, nil
}

// ListRates returns rates, optionally filtered by pair sides.
func (s *ratesService) ListRates(ctx context.Context, from, to *string) ([]domain.CurrencyRate, error) {
	return s.rateRepo.ListRates(ctx, from, to)
}

// ImportRatesCSV bulk-loads rates from a CSV source with header
// from_currency,to_currency,rate,valid_from,valid_to. Dates are YYYY-MM-DD;
// valid_to may be blank for open-ended. With commit=false the import is a
// dry-run preview: rows are validated and counted but nothing persists.
func (s *ratesService) ImportRatesCSV(ctx context.Context, r io.Reader, commit bool, actorID string) (*dto.RateImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read CSV header: %v", apperrors.ErrValidation, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"from_currency", "to_currency", "rate", "valid_from"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: missing CSV column %q", apperrors.ErrValidation, required)
		}
	}

	summary := &dto.RateImportSummary{DryRun: !commit}
	now := time.Now().UTC()

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: err.Error()})
			continue
		}

		field := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		from := strings.ToUpper(field("from_currency"))
		to := strings.ToUpper(field("to_currency"))
		rateStr := field("rate")
		if from == "" || to == "" || rateStr == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: "missing required fields"})
			continue
		}

		rateVal, err := decimal.NewFromString(rateStr)
		if err != nil || rateVal.LessThanOrEqual(decimal.Zero) {
			summary.Skipped++
			summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: "rate must be a positive decimal"})
			continue
		}

		validFrom, err := time.Parse("2006-01-02", field("valid_from"))
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: "invalid valid_from date"})
			continue
		}

		var validTo *time.Time
		if vt := field("valid_to"); vt != "" {
			parsed, err := time.Parse("2006-01-02", vt)
			if err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: "invalid valid_to date"})
				continue
			}
			validTo = &parsed
		}

		if commit {
			rate := domain.CurrencyRate{
				RateID:       uuid.NewString(),
				FromCurrency: from,
				ToCurrency:   to,
				Rate:         rateVal,
				ValidFrom:    validFrom,
				ValidTo:      validTo,
				CreatedAt:    now,
				CreatedBy:    actorID,
			}
			if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, dto.RateImportRowError{Line: line, Reason: err.Error()})
				continue
			}
		}
		summary.Imported++
	}

	logger.Info("Currency rate import finished",
		slog.Bool("dry_run", summary.DryRun),
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}
