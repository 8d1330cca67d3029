package accounting

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// recentEntryLimit bounds the per-row activity preview. Presentation only,
// never part of balance math.
const recentEntryLimit = 5

// BuildTrialBalance computes the trial balance for the inclusive period
// [from, to]. One row is produced per account that is active or historically
// referenced by any live line. Row computations are independent, so they fan
// out across goroutines and join before the totals are summed.
func BuildTrialBalance(from, to time.Time, accounts []domain.Account, entries []domain.JournalEntry) (domain.TrialBalance, error) {
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return domain.TrialBalance{}, ErrInvalidDateRange
	}

	used := make(map[int64]bool)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			used[line.AccountID] = true
		}
	}

	included := make([]domain.Account, 0, len(accounts))
	for _, account := range accounts {
		if account.IsActive || used[account.AccountID] {
			included = append(included, account)
		}
	}

	rows := make([]domain.TrialBalanceRow, len(included))
	var g errgroup.Group
	for i, account := range included {
		g.Go(func() error {
			rows[i] = buildRow(account, from, to, entries)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.TrialBalance{}, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compareAccountCodes(rows[i].AccountCode, rows[j].AccountCode) < 0
	})

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.TotalDebit)
		totalCredit = totalCredit.Add(row.TotalCredit)
	}

	return domain.TrialBalance{
		Period: domain.ReportPeriod{From: from, To: to},
		Rows:   rows,
		Total: domain.TrialBalanceTotal{
			Debit:      totalDebit,
			Credit:     totalCredit,
			IsBalanced: totalDebit.Equal(totalCredit),
		},
	}, nil
}

func buildRow(account domain.Account, from, to time.Time, entries []domain.JournalEntry) domain.TrialBalanceRow {
	lines := collectLines(account.AccountID, entries)

	openingSigned := decimal.Zero
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	var inRange []postedLine

	for _, line := range lines {
		switch {
		case line.date.Before(from):
			openingSigned = openingSigned.Add(line.debit).Sub(line.credit)
		case !line.date.After(to):
			totalDebit = totalDebit.Add(line.debit)
			totalCredit = totalCredit.Add(line.credit)
			inRange = append(inRange, line)
		}
	}

	endingSigned := openingSigned.Add(totalDebit).Sub(totalCredit)
	ending := ResolveBalance(endingSigned)

	return domain.TrialBalanceRow{
		AccountID:        account.AccountID,
		AccountCode:      account.Code,
		AccountName:      account.Name,
		AccountType:      account.Type,
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		OpeningBalance:   ResolveBalance(openingSigned),
		EndingBalance:    ending,
		TransactionCount: len(inRange),
		AbnormalBalance:  IsAbnormal(ending, account.Type),
		RecentEntries:    recentEntries(inRange),
	}
}

// recentEntries returns the newest in-range lines, newest first.
func recentEntries(inRange []postedLine) []domain.RecentEntry {
	recent := make([]domain.RecentEntry, 0, recentEntryLimit)
	for i := len(inRange) - 1; i >= 0 && len(recent) < recentEntryLimit; i-- {
		line := inRange[i]
		recent = append(recent, domain.RecentEntry{
			Date:        line.date,
			Description: line.description,
			Debit:       line.debit,
			Credit:      line.credit,
		})
	}
	return recent
}

// compareAccountCodes orders codes numerically when both are plain numbers
// ("99" before "101") and lexicographically otherwise.
func compareAccountCodes(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
