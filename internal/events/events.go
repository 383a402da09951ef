// Package events defines the typed inbound event contract consumed from the
// booking/payments subsystem. The ledger does not own those state machines;
// it only reacts to their terminal transitions.
package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentCompleted is emitted when a payment reaches completed status.
type PaymentCompleted struct {
	PaymentID   string          `json:"paymentID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	ActorID     string          `json:"actorID"`
}

// ExpensePaid is emitted when an expense reaches paid status with a payment
// date set.
type ExpensePaid struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	ActorID     string          `json:"actorID"`
}

// InvoiceLineRecorded feeds P&L computation. It has no posting side effect;
// reporting reads the invoice tables directly.
type InvoiceLineRecorded struct {
	InvoiceID      string          `json:"invoiceID"`
	InvoiceDate    time.Time       `json:"invoiceDate"`
	CategoryID     string          `json:"categoryID"`
	CategoryIsCOGS bool            `json:"categoryIsCOGS"`
	Amount         decimal.Decimal `json:"amount"`
	CostAmount     decimal.Decimal `json:"costAmount"`
	CostCurrency   string          `json:"costCurrency"`
}
