package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService computes the trial balance, profit and loss and cash
// flow surfaces. P&L and cash flow read the source invoice, payment and
// expense records rather than the journal, so they stay comparable with
// the upstream subsystem's own numbers.
type reportingService struct {
	balanceRepo   portsrepo.BalanceRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	ratesSvc      portssvc.RatesSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(balanceRepo portsrepo.BalanceRepositoryFacade, reportingRepo portsrepo.ReportingRepositoryFacade, ratesSvc portssvc.RatesSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		balanceRepo:   balanceRepo,
		reportingRepo: reportingRepo,
		ratesSvc:      ratesSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists materialized balances with signed amounts. The total is
// computed over every account regardless of filter or page, so a non-zero
// total always surfaces as the integrity alarm it is.
func (s *reportingService) TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error) {
	rows, err := s.balanceRepo.TrialBalanceRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance rows: %w", err)
	}

	report := &domain.TrialBalanceReport{Total: decimal.Zero}
	for _, row := range rows {
		report.Total = report.Total.Add(signedTotalContribution(row))
	}

	filtered := rows
	if params.AccountType != nil {
		filtered = make([]domain.TrialBalanceRow, 0, len(rows))
		for _, row := range rows {
			if row.AccountType == *params.AccountType {
				filtered = append(filtered, row)
			}
		}
	}

	sortTrialBalanceRows(filtered, params.SortBy, params.Descending)

	if params.Limit > 0 {
		start := params.Offset
		if start > len(filtered) {
			start = len(filtered)
		}
		end := start + params.Limit
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[start:end]
	}

	report.Rows = filtered
	return report, nil
}

// signedTotalContribution expresses a row's balance with a debit-positive
// sign so that a consistent ledger sums to zero: balances of credit-normal
// accounts are negated.
func signedTotalContribution(row domain.TrialBalanceRow) decimal.Decimal {
	switch row.AccountType {
	case domain.Liability, domain.Equity, domain.Revenue:
		return row.Balance.Neg()
	default:
		return row.Balance
	}
}

func sortTrialBalanceRows(rows []domain.TrialBalanceRow, sortBy string, descending bool) {
	less := func(a, b domain.TrialBalanceRow) bool { return a.AccountCode < b.AccountCode }
	switch sortBy {
	case dto.TrialBalanceSortName:
		less = func(a, b domain.TrialBalanceRow) bool { return a.AccountName < b.AccountName }
	case dto.TrialBalanceSortBalance:
		less = func(a, b domain.TrialBalanceRow) bool { return a.Balance.LessThan(b.Balance) }
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// ProfitAndLoss computes revenue, COGS and operating expenses for invoice
// lines dated within [start, end]. Each line's cost is converted to the base
// currency at that line's invoice date before summation, so lines from
// different rate periods each get their own rate.
func (s *reportingService) ProfitAndLoss(ctx context.Context, start, end time.Time, baseCurrency string) (*domain.PnLReport, error) {
	lines, err := s.reportingRepo.InvoiceLinesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice lines: %w", err)
	}

	report := &domain.PnLReport{
		BaseCurrency: baseCurrency,
		Revenue:      decimal.Zero,
		Costs:        decimal.Zero,
	}

	type categoryAccum struct {
		revenue decimal.Decimal
		costs   decimal.Decimal
	}
	byCategory := make(map[string]*categoryAccum)
	categoryOrder := make([]string, 0)

	for _, line := range lines {
		accum, ok := byCategory[line.CategoryName]
		if !ok {
			accum = &categoryAccum{revenue: decimal.Zero, costs: decimal.Zero}
			byCategory[line.CategoryName] = accum
			categoryOrder = append(categoryOrder, line.CategoryName)
		}

		report.Revenue = report.Revenue.Add(line.Amount)
		accum.revenue = accum.revenue.Add(line.Amount)

		if !line.CategoryCOGS {
			continue
		}
		cost, err := s.ratesSvc.ConvertAmount(ctx, line.CostAmount, line.CostCurrency, baseCurrency, line.InvoiceDate)
		if err != nil {
			return nil, fmt.Errorf("failed to convert cost for invoice line %s: %w", line.LineID, err)
		}
		report.Costs = report.Costs.Add(cost)
		accum.costs = accum.costs.Add(cost)
	}

	expenses, err := s.reportingRepo.OperatingExpenseTotal(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to total operating expenses: %w", err)
	}
	report.Expenses = expenses

	report.GrossProfit = report.Revenue.Sub(report.Costs)
	report.GrossMarginPct = marginPct(report.GrossProfit, report.Revenue)
	report.NetProfit = report.GrossProfit.Sub(report.Expenses)

	sort.Strings(categoryOrder)
	for _, name := range categoryOrder {
		accum := byCategory[name]
		gross := accum.revenue.Sub(accum.costs)
		report.Breakdown = append(report.Breakdown, domain.PnLCategoryBreakdown{
			Category:       name,
			Revenue:        accum.revenue,
			Costs:          accum.costs,
			Gross:          gross,
			GrossMarginPct: marginPct(gross, accum.revenue),
		})
	}
	return report, nil
}

// marginPct guards division by zero: zero revenue reports a zero margin.
func marginPct(gross, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return gross.Div(revenue).Mul(oneHundred)
}

// CashFlow sums completed payments against paid expenses directly from the
// source records, independent of the journal.
func (s *reportingService) CashFlow(ctx context.Context, start, end time.Time) (*domain.CashFlowReport, error) {
	cashIn, err := s.reportingRepo.CompletedPaymentsTotal(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to total completed payments: %w", err)
	}
	cashOut, err := s.reportingRepo.PaidExpensesTotal(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to total paid expenses: %w", err)
	}
	return &domain.CashFlowReport{
		CashIn:      cashIn,
		CashOut:     cashOut,
		NetCashFlow: cashIn.Sub(cashOut),
	}, nil
}
