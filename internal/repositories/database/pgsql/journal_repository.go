package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxJournalRepository implements JournalRepositoryFacade using pgxpool.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, reference, entry_date, narration, status, created_at, created_by`

// SaveEntry persists the entry, its lines and the balance deltas in one
// database transaction. Balance rows for the touched accounts are created
// at zero if absent, then locked FOR UPDATE in a stable order before the
// deltas are applied.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceDeltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	entryQuery := `
		INSERT INTO journal_entries (entry_id, reference, entry_date, narration, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.Reference,
		entry.Date,
		entry.Narration,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on reference
			return fmt.Errorf("reference %q: %w", entry.Reference, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	// Stable ordering avoids deadlocks between concurrent entries touching
	// overlapping account sets.
	accountIDs := make([]string, 0, len(balanceDeltas))
	for accountID := range balanceDeltas {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	for _, accountID := range accountIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO ledger_balances (account_id, balance, updated_at)
			VALUES ($1, 0, now())
			ON CONFLICT (account_id) DO NOTHING;
		`, accountID)
		if err != nil {
			return fmt.Errorf("failed to ensure balance row for account %s: %w", accountID, err)
		}
	}

	rows, err := tx.Query(ctx, `
		SELECT account_id FROM ledger_balances WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;
	`, accountIDs)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "55P03" { // lock_not_available
			return fmt.Errorf("%w: entry %s", apperrors.ErrBalanceConflict, entry.EntryID)
		}
		return fmt.Errorf("failed to lock balance rows: %w", err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked balance row: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error locking balance rows: %w", err)
	}
	if locked != len(accountIDs) {
		return fmt.Errorf("expected %d balance rows, locked %d", len(accountIDs), locked)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, narration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Narration,
			line.CreatedAt,
		)
	}
	for _, accountID := range accountIDs {
		batch.Queue(`
			UPDATE ledger_balances SET balance = balance + $2, updated_at = now() WHERE account_id = $1;
		`, accountID, balanceDeltas[accountID])
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to apply lines and balances for entry %s: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry with its lines populated.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return r.findEntry(ctx, query, entryID)
}

// FindEntryByReference retrieves the entry carrying the idempotency reference.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE reference = $1;`
	return r.findEntry(ctx, query, reference)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, query string, arg any) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&entry.EntryID,
		&entry.Reference,
		&entry.Date,
		&entry.Narration,
		&entry.Status,
		&entry.CreatedAt,
		&entry.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry: %w", err)
	}

	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, narration, created_at
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&line.Narration,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return lines, nil
}

// ListEntries returns entries newest-first without lines.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var entry domain.JournalEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.Reference,
			&entry.Date,
			&entry.Narration,
			&entry.Status,
			&entry.CreatedAt,
			&entry.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}
