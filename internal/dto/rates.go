package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRateRequest is the payload for recording one currency rate.
type CreateRateRequest struct {
	FromCurrency string          `json:"fromCurrency" binding:"required"`
	ToCurrency   string          `json:"toCurrency" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	ValidFrom    time.Time       `json:"validFrom" binding:"required"`
	ValidTo      *time.Time      `json:"validTo"`
}

// RateImportRowError records one rejected row of a bulk rate import.
type RateImportRowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// RateImportSummary reports the outcome of a bulk CSV rate import.
// In dry-run mode nothing is persisted and Imported counts would-be rows.
type RateImportSummary struct {
	DryRun   bool                 `json:"dryRun"`
	Imported int                  `json:"imported"`
	Skipped  int                  `json:"skipped"`
	Errors   []RateImportRowError `json:"errors,omitempty"`
}

// ConversionResponse is the API shape of a currency conversion.
type ConversionResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Converted    decimal.Decimal `json:"converted"`
	RateSource   string          `json:"rateSource"`
}
