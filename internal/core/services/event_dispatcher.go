package services

import (
	"context"
	"log/slog"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/events"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
)

// EventDispatcher routes inbound domain events to the posting service.
// Posting is a side effect of the event, not its system of record: a
// posting failure is logged and the event is still acknowledged, so the
// upstream subsystem never rolls back a completed payment because the
// ledger hiccuped. The missed entry is recoverable by re-delivery.
type EventDispatcher struct {
	posting portssvc.PostingSvcFacade
}

// NewEventDispatcher creates a new event dispatcher.
func NewEventDispatcher(posting portssvc.PostingSvcFacade) *EventDispatcher {
	return &EventDispatcher{posting: posting}
}

// DispatchPaymentCompleted posts the journal for a completed payment.
// Returns the entry when posting succeeded, nil when it was logged and
// skipped.
func (d *EventDispatcher) DispatchPaymentCompleted(ctx context.Context, ev events.PaymentCompleted) *domain.JournalEntry {
	entry, err := d.posting.PostPaymentJournal(ctx, ev)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Posting failed for payment event",
			slog.String("payment_id", ev.PaymentID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return entry
}

// DispatchExpensePaid posts the journal for a paid expense.
func (d *EventDispatcher) DispatchExpensePaid(ctx context.Context, ev events.ExpensePaid) *domain.JournalEntry {
	entry, err := d.posting.PostExpenseJournal(ctx, ev)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Posting failed for expense event",
			slog.String("expense_id", ev.ExpenseID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return entry
}
