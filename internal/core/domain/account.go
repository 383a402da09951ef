package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
)

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// ParseAccountType validates a string against the closed account type enum.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(strings.ToUpper(strings.TrimSpace(s))) {
	case Asset:
		return Asset, nil
	case Liability:
		return Liability, nil
	case Equity:
		return Equity, nil
	case Revenue:
		return Revenue, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidAccountType, s)
	}
}

// LedgerAccount is a chart-of-accounts entry. Once referenced by posted
// lines only Name and IsActive may change.
type LedgerAccount struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique chart-of-accounts code
	Name            string      `json:"name"`            // User-facing name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID *string     `json:"parentAccountID"` // Nullable self-reference
	IsActive        bool        `json:"isActive"`
	CreatedAt       time.Time   `json:"createdAt"`
	CreatedBy       string      `json:"createdBy"`
}
