package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus tracks a journal entry through its lifecycle. Draft and
// Balanced exist in memory only; persisted entries are always Posted.
// There is no reversed or voided state: corrections are new entries.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Balanced EntryStatus = "BALANCED"
	Posted   EntryStatus = "POSTED"
)

// JournalEntry is an atomic, balanced group of debit/credit lines
// representing one business transaction. Entries are append-only.
type JournalEntry struct {
	EntryID   string      `json:"entryID"`   // Primary Key (UUID)
	Reference string      `json:"reference"` // Idempotency key per source event
	Date      time.Time   `json:"date"`      // Date the event occurred
	Narration string      `json:"narration"`
	Status    EntryStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy string      `json:"createdBy"` // Optional actor reference

	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single debit/credit amount against one ledger account.
// A line never carries both a positive debit and a positive credit.
// Amounts are in the ledger base currency.
type JournalLine struct {
	LineID    string          `json:"lineID"`  // Primary Key (UUID)
	EntryID   string          `json:"entryID"` // FK -> JournalEntry
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TotalDebits sums the debit side of a set of lines.
func TotalDebits(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of a set of lines.
func TotalCredits(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits exactly. Exact decimal
// equality, never an epsilon comparison.
func IsBalanced(lines []JournalLine) bool {
	return TotalDebits(lines).Equal(TotalCredits(lines))
}
