package dto

import (
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
)

// Trial balance sort keys.
const (
	TrialBalanceSortCode    = "code"
	TrialBalanceSortName    = "name"
	TrialBalanceSortBalance = "balance"
)

// TrialBalanceParams filters, sorts and paginates the trial balance surface.
// Limit 0 means unpaginated (the export path).
type TrialBalanceParams struct {
	AccountType *domain.AccountType
	SortBy      string // code (default), name or balance
	Descending  bool
	Limit       int
	Offset      int
}

// RebuildRequest scopes a balance rebuild run.
type RebuildRequest struct {
	Accounts []string `json:"accounts"` // account codes; empty = all
	Reset    bool     `json:"reset"`
	DryRun   bool     `json:"dryRun"`
}
