package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is an effective-dated conversion rate: Rate converts 1 unit
// of FromCurrency into ToCurrency. ValidTo nil means open-ended. Multiple
// rates may exist per pair over time; lookups pick the one current for the
// requested date.
type CurrencyRate struct {
	RateID       string          `json:"rateID"` // Primary Key (UUID)
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"` // High-precision multiplier
	ValidFrom    time.Time       `json:"validFrom"`
	ValidTo      *time.Time      `json:"validTo"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// RateSource identifies how a conversion rate was obtained. Fallback to the
// identity rate is a data-quality signal, not a real rate.
type RateSource string

const (
	RateSourceIdentity RateSource = "IDENTITY" // same-currency pair, no lookup
	RateSourceDirect   RateSource = "DIRECT"   // effective-dated table match
	RateSourceInverse  RateSource = "INVERSE"  // reverse pair, inverted
	RateSourceFallback RateSource = "FALLBACK" // no rate found, defaulted to 1.0
)
