package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/hawwa-platform/ledgercore/internal/middleware"
	"github.com/hawwa-platform/ledgercore/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// journalService owns journal entry creation and posting. Entries move
// Draft -> Balanced in memory and are persisted already Posted; a Balanced
// entry that fails persistence simply never transitions.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and atomically posts a journal entry. Validation
// order: non-empty, per-line amounts, aggregate balance (exact decimal
// equality), account resolution. Nothing persists on any failure.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) == 0 {
		return nil, apperrors.ErrEmptyEntry
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	codes := make([]string, 0, len(req.Lines))
	for i, in := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			Debit:     in.Debit,
			Credit:    in.Credit,
			Narration: in.Narration,
			CreatedAt: now,
		}
		if err := accounting.ValidateLine(lines[i]); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i+1, err)
		}
		codes = append(codes, strings.TrimSpace(in.AccountCode))
	}

	debits := domain.TotalDebits(lines)
	credits := domain.TotalCredits(lines)
	if !debits.Equal(credits) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedEntry, debits, credits)
	}

	// Resolve account codes and compute per-account balance deltas.
	accounts := make(map[string]*domain.LedgerAccount, len(codes))
	deltas := make(map[string]decimal.Decimal)
	for i, code := range codes {
		account, ok := accounts[code]
		if !ok {
			var err error
			account, err = s.accountRepo.FindAccountByCode(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve account %q: %w", code, err)
			}
			if !account.IsActive {
				return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
			}
			accounts[code] = account
		}
		lines[i].AccountID = account.AccountID

		delta, err := accounting.LineDelta(account.AccountType, lines[i].Debit, lines[i].Credit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance delta for account %s: %w", code, err)
		}
		deltas[account.AccountID] = deltas[account.AccountID].Add(delta)
	}

	entry := domain.JournalEntry{
		EntryID:   entryID,
		Reference: req.Reference,
		Date:      req.Date,
		Narration: req.Narration,
		Status:    domain.Posted,
		CreatedAt: now,
		CreatedBy: actorID,
		Lines:     lines,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, deltas); err != nil {
		logger.Error("Failed to save journal entry",
			slog.String("reference", req.Reference),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("reference", req.Reference),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

// GetEntryByReference retrieves the entry carrying an idempotency reference.
func (s *journalService) GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByReference(ctx, reference)
}

// ListEntries returns entries newest-first without line detail.
func (s *journalService) ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.journalRepo.ListEntries(ctx, limit, offset)
}

// ReverseEntry posts a mirror image of an existing entry under a fresh
// reference. The original is never mutated; this is the only correction
// mechanism for an append-only journal.
func (s *journalService) ReverseEntry(ctx context.Context, entryID, reference, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reference == "" {
		return nil, fmt.Errorf("%w: reversal reference is required", apperrors.ErrValidation)
	}
	if _, err := s.journalRepo.FindEntryByReference(ctx, reference); err == nil {
		return nil, fmt.Errorf("%w: reference %q already used", apperrors.ErrDuplicate, reference)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check reversal reference: %w", err)
	}

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	accountIDs := make([]string, 0, len(original.Lines))
	for _, line := range original.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for reversal: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	deltas := make(map[string]decimal.Decimal)
	for i, orig := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   reversalID,
			AccountID: orig.AccountID,
			Debit:     orig.Credit, // sides swap
			Credit:    orig.Debit,
			Narration: orig.Narration,
			CreatedAt: now,
		}
		account, ok := accounts[orig.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by entry %s", apperrors.ErrNotFound, orig.AccountID, entryID)
		}
		delta, err := accounting.LineDelta(account.AccountType, lines[i].Debit, lines[i].Credit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute reversal delta: %w", err)
		}
		deltas[orig.AccountID] = deltas[orig.AccountID].Add(delta)
	}

	reversal := domain.JournalEntry{
		EntryID:   reversalID,
		Reference: reference,
		Date:      original.Date,
		Narration: fmt.Sprintf("Reversal of %s", original.Reference),
		Status:    domain.Posted,
		CreatedAt: now,
		CreatedBy: actorID,
		Lines:     lines,
	}

	if err := s.journalRepo.SaveEntry(ctx, reversal, deltas); err != nil {
		logger.Error("Failed to save reversing entry",
			slog.String("original_entry_id", entryID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", reversalID))
	return &reversal, nil
}

// AccountCodes maps the account IDs on an entry's lines to chart codes.
func (s *journalService) AccountCodes(ctx context.Context, entry *domain.JournalEntry) (map[string]string, error) {
	ids := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		ids = append(ids, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]string, len(accounts))
	for id, account := range accounts {
		codes[id] = account.Code
	}
	return codes, nil
}
