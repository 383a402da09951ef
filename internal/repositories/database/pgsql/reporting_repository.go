package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository reads the source invoice, payment and expense
// tables feeding the reports. The booking subsystem owns these rows.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// InvoiceLinesInRange returns invoice lines dated in [start, end] with their
// category joined in.
func (r *PgxReportingRepository) InvoiceLinesInRange(ctx context.Context, start, end time.Time) ([]domain.InvoiceLine, error) {
	query := `
		SELECT l.line_id, l.invoice_id, l.invoice_date, c.code, c.name, c.is_cogs, l.amount, l.cost_amount, l.cost_currency
		FROM invoice_lines l
		JOIN accounting_categories c ON c.category_id = l.category_id
		WHERE l.invoice_date >= $1 AND l.invoice_date <= $2
		ORDER BY l.invoice_date, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.InvoiceLine{}
	for rows.Next() {
		var line domain.InvoiceLine
		err := rows.Scan(
			&line.LineID,
			&line.InvoiceID,
			&line.InvoiceDate,
			&line.CategoryCode,
			&line.CategoryName,
			&line.CategoryCOGS,
			&line.Amount,
			&line.CostAmount,
			&line.CostCurrency,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return lines, nil
}

// OperatingExpenseTotal sums standalone expenses dated in range.
func (r *PgxReportingRepository) OperatingExpenseTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE expense_date >= $1 AND expense_date <= $2;
	`
	return r.sum(ctx, query, start, end)
}

// CompletedPaymentsTotal sums completed payments dated in range.
func (r *PgxReportingRepository) CompletedPaymentsTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE status = $1 AND payment_date >= $2 AND payment_date <= $3;
	`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, domain.PaymentCompleted, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed payments: %w", err)
	}
	return total, nil
}

// PaidExpensesTotal sums expenses marked paid with payment date in range.
func (r *PgxReportingRepository) PaidExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE is_paid AND payment_date >= $1 AND payment_date <= $2;
	`
	return r.sum(ctx, query, start, end)
}

func (r *PgxReportingRepository) sum(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute total: %w", err)
	}
	return total, nil
}
