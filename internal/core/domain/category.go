package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingCategory groups invoice lines and expenses for reporting.
// IsCOGS marks categories whose line costs count against gross profit.
type AccountingCategory struct {
	CategoryID string    `json:"categoryID"`
	Code       string    `json:"code"` // Unique
	Name       string    `json:"name"`
	IsCOGS     bool      `json:"isCOGS"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InvoiceLine is the read model for a recorded invoice line item. The
// invoicing subsystem owns these rows; reporting consumes them read-only.
// CostAmount is recorded in CostCurrency and converted to the report base
// currency at the invoice date.
type InvoiceLine struct {
	LineID       string          `json:"lineID"`
	InvoiceID    string          `json:"invoiceID"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	CategoryCode string          `json:"categoryCode"`
	CategoryName string          `json:"categoryName"`
	CategoryCOGS bool            `json:"categoryCOGS"`
	Amount       decimal.Decimal `json:"amount"`
	CostAmount   decimal.Decimal `json:"costAmount"`
	CostCurrency string          `json:"costCurrency"`
}

// PaymentStatus values mirror the payments subsystem's state machine.
// Only Completed payments reach the ledger.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment is the read model for a payment record from the bookings
// subsystem; cash-flow reporting reads these directly as a cross-check
// independent of the journal.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      PaymentStatus   `json:"status"`
	PaymentDate time.Time       `json:"paymentDate"`
}

// OperatingExpense is the read model for a standalone business expense.
type OperatingExpense struct {
	ExpenseID   string          `json:"expenseID"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	IsPaid      bool            `json:"isPaid"`
	PaymentDate *time.Time      `json:"paymentDate"`
}
