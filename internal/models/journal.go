package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry row. Deleted entries stay in the
// table with is_deleted set; every balance query filters them out.
type JournalEntry struct {
	EntryID     int64     `db:"entry_id"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	IsDeleted   bool      `db:"is_deleted"`
	AuditFields
}

// JournalLine represents one line of a journal entry.
type JournalLine struct {
	LineID    int64           `db:"line_id"`
	EntryID   int64           `db:"entry_id"`
	AccountID int64           `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
}
