package repositories

import (
	"context"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalRepositoryFacade defines persistence for the append-only journal.
type JournalRepositoryFacade interface {
	// SaveEntry persists the entry and all its lines and applies the given
	// per-account balance deltas, all within a single database transaction.
	// Balance rows are locked FOR UPDATE for the duration of the update and
	// created lazily at zero on first posting. On failure nothing remains
	// visible to other operations.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceDeltas map[string]decimal.Decimal) error

	// FindEntryByID retrieves an entry with its lines populated.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the entry carrying the given idempotency
	// reference, lines populated. apperrors.ErrNotFound when absent.
	FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)

	// ListEntries returns entries newest-first without lines.
	ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error)
}
