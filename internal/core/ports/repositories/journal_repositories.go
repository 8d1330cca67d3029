package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// ListEntriesParams carries pagination and optional inclusive date bounds for
// listing journal entries.
type ListEntriesParams struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// JournalEntryReader defines read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves a non-deleted entry with its lines.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves non-deleted entries ordered by date descending,
	// together with the total count for pagination.
	ListEntries(ctx context.Context, params ListEntriesParams) ([]domain.JournalEntry, int64, error)

	// FindLiveEntriesThrough retrieves all non-deleted entries dated on or
	// before the given day, with lines, ordered by date then entry ID.
	FindLiveEntriesThrough(ctx context.Context, through time.Time) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries. Balance
// deltas are applied to the referenced accounts within the same transaction.
type JournalEntryWriter interface {
	// SaveEntry persists a new entry with its lines and fills in generated IDs.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error

	// ReplaceEntry overwrites an entry's header and replaces its lines wholesale.
	ReplaceEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error

	// SoftDeleteEntry marks an entry deleted without removing its rows.
	SoftDeleteEntry(ctx context.Context, entryID int64, balanceChanges map[int64]decimal.Decimal, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
