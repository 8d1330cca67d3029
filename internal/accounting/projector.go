package accounting

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// ErrInvalidDateRange signals a report period whose start falls after its
// end. Callers must reject such ranges before computing anything.
var ErrInvalidDateRange = errors.New("from date must not be after to date")

// postedLine pairs a journal line with its parent entry's metadata, the unit
// every balance computation works over.
type postedLine struct {
	entryID     int64
	seq         int // insertion order within the entry
	date        time.Time
	description string
	debit       decimal.Decimal
	credit      decimal.Decimal
}

// collectLines gathers every line touching accountID across the given live
// entries, ordered by date ascending, entry id ascending, then insertion
// order. Entries are assumed already filtered for soft deletion at the
// materialization boundary.
func collectLines(accountID int64, entries []domain.JournalEntry) []postedLine {
	var lines []postedLine
	for _, entry := range entries {
		for seq, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			lines = append(lines, postedLine{
				entryID:     entry.EntryID,
				seq:         seq,
				date:        dateOnly(entry.Date),
				description: entry.Description,
				debit:       line.Debit,
				credit:      line.Credit,
			})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].date.Equal(lines[j].date) {
			return lines[i].date.Before(lines[j].date)
		}
		if lines[i].entryID != lines[j].entryID {
			return lines[i].entryID < lines[j].entryID
		}
		return lines[i].seq < lines[j].seq
	})
	return lines
}

// dateOnly strips any time component so balance math keys on calendar dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProjectLedger computes the general ledger view for one account: the
// opening balance carried from all activity before the period, each in-range
// posting with its signed running balance, and the closing balance.
func ProjectLedger(account domain.Account, from, to time.Time, entries []domain.JournalEntry) (domain.LedgerProjection, error) {
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return domain.LedgerProjection{}, ErrInvalidDateRange
	}

	lines := collectLines(account.AccountID, entries)

	openingSigned := decimal.Zero
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	ledgerEntries := []domain.LedgerEntry{}

	running := decimal.Zero
	for _, line := range lines {
		switch {
		case line.date.Before(from):
			openingSigned = openingSigned.Add(line.debit).Sub(line.credit)
		case !line.date.After(to):
			totalDebit = totalDebit.Add(line.debit)
			totalCredit = totalCredit.Add(line.credit)
		}
	}

	running = openingSigned
	for _, line := range lines {
		if line.date.Before(from) || line.date.After(to) {
			continue
		}
		running = running.Add(line.debit).Sub(line.credit)
		ledgerEntries = append(ledgerEntries, domain.LedgerEntry{
			EntryID:        line.entryID,
			Date:           line.date,
			Description:    line.description,
			Debit:          line.debit,
			Credit:         line.credit,
			RunningBalance: running,
		})
	}

	closingSigned := openingSigned
	if n := len(ledgerEntries); n > 0 {
		closingSigned = ledgerEntries[n-1].RunningBalance
	}

	return domain.LedgerProjection{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		Period:         domain.ReportPeriod{From: from, To: to},
		OpeningBalance: ResolveBalance(openingSigned),
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		ClosingBalance: ResolveBalance(closingSigned),
		Entries:        ledgerEntries,
	}, nil
}
