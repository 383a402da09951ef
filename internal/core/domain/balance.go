package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerBalance is the materialized running balance for one account.
// It is a derived cache: at any time it must equal the replay of all
// journal lines for the account, and it may be discarded and rebuilt
// without semantic loss. The journal is the source of truth.
type LedgerBalance struct {
	AccountID string          `json:"accountID"` // 1:1 with LedgerAccount
	Balance   decimal.Decimal `json:"balance"`   // Signed, per sign convention
	UpdatedAt time.Time       `json:"updatedAt"`
}

// LineSums holds the one-pass aggregation of an account's journal lines.
type LineSums struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// RebuildDelta records one account whose materialized balance diverged
// from the journal-derived value.
type RebuildDelta struct {
	AccountCode string          `json:"accountCode"`
	Stored      decimal.Decimal `json:"stored"`
	Computed    decimal.Decimal `json:"computed"`
}

// RebuildReport summarises a balance rebuild run.
type RebuildReport struct {
	Examined int            `json:"examined"`
	Changed  int            `json:"changed"`
	DryRun   bool           `json:"dryRun"`
	Deltas   []RebuildDelta `json:"deltas,omitempty"`
}
