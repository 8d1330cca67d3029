package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/apperrors"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	"github.com/jangbu-app/jangbu_backend/internal/models"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		Date:        m.EntryDate,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// FindEntryByID retrieves a non-deleted entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, description, is_deleted, created_at, last_updated_at
		FROM journal_entries
		WHERE entry_id = $1 AND NOT is_deleted;
	`
	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %d: %w", entryID, err)
	}

	entry := toDomainEntry(m)
	lines, err := r.findLinesForEntries(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// ListEntries retrieves a page of non-deleted entries, newest first, with
// their lines and the total count.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, int64, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := "NOT is_deleted"
	args := []any{}
	if params.From != nil {
		args = append(args, *params.From)
		where += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if params.To != nil {
		args = append(args, *params.To)
		where += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE ` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT entry_id, entry_date, description, is_deleted, created_at, last_updated_at
		FROM journal_entries
		WHERE %s
		ORDER BY entry_date DESC, entry_id DESC
		LIMIT $%d OFFSET $%d;
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []int64{}
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.Description, &m.IsDeleted, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	linesByEntry, err := r.findLinesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, total, nil
}

// FindLiveEntriesThrough retrieves all non-deleted entries dated on or before
// the given day, with lines, in posting order.
func (r *PgxJournalRepository) FindLiveEntriesThrough(ctx context.Context, through time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, entry_date, description, is_deleted, created_at, last_updated_at
		FROM journal_entries
		WHERE NOT is_deleted AND entry_date <= $1
		ORDER BY entry_date, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, through)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries through %s: %w", through.Format("2006-01-02"), err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []int64{}
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.EntryID, &m.EntryDate, &m.Description, &m.IsDeleted, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
		entryIDs = append(entryIDs, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	linesByEntry, err := r.findLinesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

// findLinesForEntries loads the lines of the given entries, enriched with the
// account name, keyed by entry ID and kept in insertion order.
func (r *PgxJournalRepository) findLinesForEntries(ctx context.Context, entryIDs []int64) (map[int64][]domain.JournalLine, error) {
	result := make(map[int64][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT jl.line_id, jl.entry_id, jl.account_id, a.name, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN accounts a ON a.account_id = jl.account_id
		WHERE jl.entry_id = ANY($1)
		ORDER BY jl.entry_id, jl.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.LineID, &line.EntryID, &line.AccountID, &line.AccountName, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		result[line.EntryID] = append(result[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return result, nil
}

// SaveEntry inserts an entry with its lines and applies account balance
// deltas within one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (entry_date, description, is_deleted, created_at, last_updated_at)
		VALUES ($1, $2, FALSE, $3, $4)
		RETURNING entry_id;
	`
	if err := tx.QueryRow(ctx, entryQuery,
		entry.Date,
		entry.Description,
		entry.CreatedAt,
		entry.LastUpdatedAt,
	).Scan(&entry.EntryID); err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	if err := insertLinesInTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := updateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReplaceEntry overwrites the entry header and replaces its lines wholesale,
// applying the combined balance delta in the same transaction.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, last_updated_at = $4
		WHERE entry_id = $1 AND NOT is_deleted;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery, entry.EntryID, entry.Date, entry.Description, entry.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %d: %w", entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of journal entry %d: %w", entry.EntryID, err)
	}

	if err := insertLinesInTx(ctx, tx, entry); err != nil {
		return err
	}

	if err := updateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SoftDeleteEntry flags the entry deleted and reverses its balance impact in
// one transaction. The line rows stay untouched.
func (r *PgxJournalRepository) SoftDeleteEntry(ctx context.Context, entryID int64, balanceChanges map[int64]decimal.Decimal, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET is_deleted = TRUE, last_updated_at = $2
		WHERE entry_id = $1 AND NOT is_deleted;
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete journal entry %d: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := updateAccountBalancesInTx(ctx, tx, balanceChanges, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLinesInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, debit, credit)
		VALUES ($1, $2, $3, $4)
		RETURNING line_id;
	`
	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
		if err := tx.QueryRow(ctx, lineQuery,
			entry.EntryID,
			entry.Lines[i].AccountID,
			entry.Lines[i].Debit,
			entry.Lines[i].Credit,
		).Scan(&entry.Lines[i].LineID); err != nil {
			return fmt.Errorf("failed to insert journal line for entry %d: %w", entry.EntryID, err)
		}
	}
	return nil
}
