package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/events"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
)

// PostingAccounts names the system accounts automatic posting books against.
// Codes are configurable; the defaults follow the standard chart.
type PostingAccounts struct {
	CashCode    string
	CashName    string
	RevenueCode string
	RevenueName string
	ExpenseCode string
	ExpenseName string
}

// DefaultPostingAccounts returns the standard system account assignment.
func DefaultPostingAccounts() PostingAccounts {
	return PostingAccounts{
		CashCode:    "1000",
		CashName:    "Cash",
		RevenueCode: "4000",
		RevenueName: "Revenue",
		ExpenseCode: "5000",
		ExpenseName: "Expenses",
	}
}

// postingService translates payment and expense events into balanced journal
// entries. Posting is idempotent by event reference: re-delivery of the same
// event finds the original entry and returns it unchanged.
type postingService struct {
	catalogSvc portssvc.CatalogSvcFacade
	journalSvc portssvc.JournalSvcFacade
	accounts   PostingAccounts
}

// NewPostingService creates a new posting service.
func NewPostingService(catalogSvc portssvc.CatalogSvcFacade, journalSvc portssvc.JournalSvcFacade, accounts PostingAccounts) portssvc.PostingSvcFacade {
	return &postingService{
		catalogSvc: catalogSvc,
		journalSvc: journalSvc,
		accounts:   accounts,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostPaymentJournal records a completed payment as debit cash, credit
// revenue under the reference "payment:<id>".
func (s *postingService) PostPaymentJournal(ctx context.Context, ev events.PaymentCompleted) (*domain.JournalEntry, error) {
	reference := fmt.Sprintf("payment:%s", ev.PaymentID)

	if existing, ok, err := s.findExisting(ctx, reference); err != nil {
		return nil, err
	} else if ok {
		return existing, nil
	}

	cash, err := s.catalogSvc.GetOrCreateAccount(ctx, s.accounts.CashCode, s.accounts.CashName, string(domain.Asset), ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cash account: %w", err)
	}
	revenue, err := s.catalogSvc.GetOrCreateAccount(ctx, s.accounts.RevenueCode, s.accounts.RevenueName, string(domain.Revenue), ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revenue account: %w", err)
	}

	narration := fmt.Sprintf("Payment %s completed", ev.PaymentID)
	req := dto.CreateEntryRequest{
		Reference: reference,
		Date:      ev.PaymentDate,
		Narration: narration,
		Lines: []dto.EntryLineInput{
			{AccountCode: cash.Code, Debit: ev.Amount, Narration: narration},
			{AccountCode: revenue.Code, Credit: ev.Amount, Narration: narration},
		},
	}
	return s.createOrReturnExisting(ctx, req, reference, ev.ActorID)
}

// PostExpenseJournal records a paid expense as debit expenses, credit cash
// under the reference "expense:<id>".
func (s *postingService) PostExpenseJournal(ctx context.Context, ev events.ExpensePaid) (*domain.JournalEntry, error) {
	reference := fmt.Sprintf("expense:%s", ev.ExpenseID)

	if existing, ok, err := s.findExisting(ctx, reference); err != nil {
		return nil, err
	} else if ok {
		return existing, nil
	}

	expense, err := s.catalogSvc.GetOrCreateAccount(ctx, s.accounts.ExpenseCode, s.accounts.ExpenseName, string(domain.Expense), ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve expense account: %w", err)
	}
	cash, err := s.catalogSvc.GetOrCreateAccount(ctx, s.accounts.CashCode, s.accounts.CashName, string(domain.Asset), ev.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cash account: %w", err)
	}

	narration := fmt.Sprintf("Expense %s paid", ev.ExpenseID)
	req := dto.CreateEntryRequest{
		Reference: reference,
		Date:      ev.PaymentDate,
		Narration: narration,
		Lines: []dto.EntryLineInput{
			{AccountCode: expense.Code, Debit: ev.Amount, Narration: narration},
			{AccountCode: cash.Code, Credit: ev.Amount, Narration: narration},
		},
	}
	return s.createOrReturnExisting(ctx, req, reference, ev.ActorID)
}

// findExisting checks whether the reference has already been posted.
func (s *postingService) findExisting(ctx context.Context, reference string) (*domain.JournalEntry, bool, error) {
	existing, err := s.journalSvc.GetEntryByReference(ctx, reference)
	if err == nil {
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Info("Duplicate posting skipped", slog.String("reference", reference), slog.String("entry_id", existing.EntryID))
		return existing, true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("failed to check reference %q: %w", reference, err)
}

// createOrReturnExisting posts the entry, resolving the race where a
// concurrent delivery posted the same reference first.
func (s *postingService) createOrReturnExisting(ctx context.Context, req dto.CreateEntryRequest, reference, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.journalSvc.CreateEntry(ctx, req, actorID)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		existing, ok, findErr := s.findExisting(ctx, reference)
		if findErr != nil {
			return nil, findErr
		}
		if ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("failed to post journal for %q: %w", reference, err)
}
