package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's materialized balance in the trial balance.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceReport lists all account balances. Total is the signed sum
// across accounts and equals zero for a consistent ledger; a non-zero total
// is a data-integrity alarm, never silently rounded away.
type TrialBalanceReport struct {
	Rows  []TrialBalanceRow `json:"rows"`
	Total decimal.Decimal   `json:"total"`
}

// PnLCategoryBreakdown is one accounting category's slice of the P&L.
type PnLCategoryBreakdown struct {
	Category       string          `json:"category"`
	Revenue        decimal.Decimal `json:"revenue"`
	Costs          decimal.Decimal `json:"costs"`
	Gross          decimal.Decimal `json:"gross"`
	GrossMarginPct decimal.Decimal `json:"grossMarginPct"`
}

// PnLReport is a profit and loss summary over a date range, with COGS
// converted to the base currency at each line's invoice date.
type PnLReport struct {
	BaseCurrency   string                 `json:"baseCurrency"`
	Revenue        decimal.Decimal        `json:"revenue"`
	Costs          decimal.Decimal        `json:"costs"`
	Expenses       decimal.Decimal        `json:"expenses"`
	GrossProfit    decimal.Decimal        `json:"grossProfit"`
	GrossMarginPct decimal.Decimal        `json:"grossMarginPct"`
	NetProfit      decimal.Decimal        `json:"netProfit"`
	Breakdown      []PnLCategoryBreakdown `json:"breakdown"`
}

// CashFlowReport summarises cash movement from source payment and expense
// records, independent of the journal tables.
type CashFlowReport struct {
	CashIn      decimal.Decimal `json:"cashIn"`
	CashOut     decimal.Decimal `json:"cashOut"`
	NetCashFlow decimal.Decimal `json:"netCashFlow"`
}
