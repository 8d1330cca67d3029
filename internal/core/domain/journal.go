package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event composed of at
// least two lines. An entry owns its lines exclusively; editing replaces the
// entire line set. Deletion is soft: a flagged entry stays in storage but is
// excluded from every balance computation.
type JournalEntry struct {
	EntryID     int64         `json:"entryID"`
	Date        time.Time     `json:"date"` // Calendar date, no time component
	Description string        `json:"description"`
	IsDeleted   bool          `json:"isDeleted"`
	Lines       []JournalLine `json:"lines"` // Insertion order preserved for display
	AuditFields
}

// TotalDebit sums the debit side of all lines.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// JournalLine is a single row inside a journal entry, affecting one account.
// Exactly one of Debit/Credit is positive; amounts are whole won.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	AccountID   int64           `json:"accountID"`
	AccountName string          `json:"accountName,omitempty"` // Filled by joins on read paths
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
