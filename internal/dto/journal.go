package dto

import (
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineInput is one debit/credit line of a journal entry request.
// Accounts are referenced by chart-of-accounts code.
type EntryLineInput struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Narration   string          `json:"narration"`
}

// CreateEntryRequest is the payload for creating a journal entry.
type CreateEntryRequest struct {
	Reference string           `json:"reference"`
	Date      time.Time        `json:"date" binding:"required"`
	Narration string           `json:"narration"`
	Lines     []EntryLineInput `json:"lines"`
}

// ReverseEntryRequest carries the fresh reference for a reversing entry.
type ReverseEntryRequest struct {
	Reference string `json:"reference" binding:"required"`
}

// JournalLineResponse is the API shape of a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Narration   string          `json:"narration"`
}

// JournalEntryResponse is the API shape of a journal entry.
type JournalEntryResponse struct {
	EntryID   string                `json:"entryID"`
	Reference string                `json:"reference"`
	Date      time.Time             `json:"date"`
	Narration string                `json:"narration"`
	Status    domain.EntryStatus    `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
	CreatedBy string                `json:"createdBy,omitempty"`
	Lines     []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse maps a domain entry to its API shape. Account codes
// on lines must already be resolved by the caller.
func ToJournalEntryResponse(entry *domain.JournalEntry, accountCodes map[string]string) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:   entry.EntryID,
		Reference: entry.Reference,
		Date:      entry.Date,
		Narration: entry.Narration,
		Status:    entry.Status,
		CreatedAt: entry.CreatedAt,
		CreatedBy: entry.CreatedBy,
	}
	for _, line := range entry.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:      line.LineID,
			AccountCode: accountCodes[line.AccountID],
			Debit:       line.Debit,
			Credit:      line.Credit,
			Narration:   line.Narration,
		})
	}
	return resp
}
