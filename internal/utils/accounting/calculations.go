package accounting

import (
	"fmt"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineDelta computes a journal line's signed contribution to its account's
// balance. This is used by both incremental materialization and rebuild so
// the sign convention is applied uniformly everywhere balances are computed.
//
// ASSET/EXPENSE accounts accumulate debit - credit.
// LIABILITY/EQUITY/REVENUE accounts accumulate credit - debit.
func LineDelta(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// SumDelta applies the sign convention once to an account's aggregated
// debit/credit sums, yielding the authoritative balance for rebuild.
func SumDelta(accountType domain.AccountType, sums domain.LineSums) (decimal.Decimal, error) {
	return LineDelta(accountType, sums.Debits, sums.Credits)
}

// ValidateLine checks a single journal line: amounts must be non-negative
// and a line may not carry both a positive debit and a positive credit.
func ValidateLine(line domain.JournalLine) error {
	if line.Debit.IsNegative() {
		return fmt.Errorf("debit must be non-negative, got %s", line.Debit)
	}
	if line.Credit.IsNegative() {
		return fmt.Errorf("credit must be non-negative, got %s", line.Credit)
	}
	if line.Debit.IsPositive() && line.Credit.IsPositive() {
		return fmt.Errorf("line may not have both debit (%s) and credit (%s) set", line.Debit, line.Credit)
	}
	return nil
}
