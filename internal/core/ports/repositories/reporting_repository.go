package repositories

import (
	"context"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade reads the source invoice/payment/expense records
// feeding P&L and cash-flow reports. These tables are owned by the booking
// subsystem; the ledger consumes them read-only.
type ReportingRepositoryFacade interface {
	// InvoiceLinesInRange returns invoice lines whose invoice date falls in
	// [start, end], with category code and COGS flag joined in.
	InvoiceLinesInRange(ctx context.Context, start, end time.Time) ([]domain.InvoiceLine, error)

	// OperatingExpenseTotal sums standalone expenses dated in range.
	OperatingExpenseTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// CompletedPaymentsTotal sums payments with status completed and payment
	// date in range.
	CompletedPaymentsTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// PaidExpensesTotal sums expenses marked paid with payment date in range.
	PaidExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}
