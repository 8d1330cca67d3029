package accounting_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

func rowFor(t *testing.T, tb domain.TrialBalance, accountID int64) domain.TrialBalanceRow {
	t.Helper()
	for _, row := range tb.Rows {
		if row.AccountID == accountID {
			return row
		}
	}
	t.Fatalf("no row for account %d", accountID)
	return domain.TrialBalanceRow{}
}

func TestBuildTrialBalance_SingleSale(t *testing.T) {
	// Debit Cash 1000 / credit Revenue 1000 on Jan 15.
	accounts := []domain.Account{cashAccount, revenueAccount}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-15", "cash sale", debitLine(1, 1000), creditLine(2, 1000)),
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 2)

	cash := rowFor(t, tb, 1)
	assert.True(t, cash.TotalDebit.Equal(won(1000)))
	assert.True(t, cash.TotalCredit.IsZero())
	assert.True(t, cash.EndingBalance.Amount.Equal(won(1000)))
	assert.Equal(t, domain.DirectionDebit, cash.EndingBalance.Direction)
	assert.False(t, cash.AbnormalBalance)
	assert.Equal(t, 1, cash.TransactionCount)

	revenue := rowFor(t, tb, 2)
	assert.True(t, revenue.TotalDebit.IsZero())
	assert.True(t, revenue.TotalCredit.Equal(won(1000)))
	assert.True(t, revenue.EndingBalance.Amount.Equal(won(1000)))
	assert.Equal(t, domain.DirectionCredit, revenue.EndingBalance.Direction)
	assert.False(t, revenue.AbnormalBalance)

	assert.True(t, tb.Total.Debit.Equal(won(1000)))
	assert.True(t, tb.Total.Credit.Equal(won(1000)))
	assert.True(t, tb.Total.IsBalanced)
}

func TestBuildTrialBalance_ClosureOverBalancedEntries(t *testing.T) {
	// Any set of individually balanced entries yields a balanced report.
	accounts := []domain.Account{cashAccount, revenueAccount, payableAccount}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-03", "sale", debitLine(1, 800), creditLine(2, 800)),
		entry(2, "2025-01-09", "purchase on credit", debitLine(1, 120), creditLine(3, 120)),
		entry(3, "2025-01-21", "split settlement", creditLine(1, 500), debitLine(3, 300), debitLine(3, 200)),
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)
	assert.True(t, tb.Total.IsBalanced)
	assert.True(t, tb.Total.Debit.Equal(tb.Total.Credit))
}

func TestBuildTrialBalance_MatchesLedgerClosing(t *testing.T) {
	accounts := []domain.Account{cashAccount, revenueAccount, payableAccount}
	entries := []domain.JournalEntry{
		entry(1, "2024-12-28", "prior period sale", debitLine(1, 900), creditLine(2, 900)),
		entry(2, "2025-01-05", "sale", debitLine(1, 450), creditLine(2, 450)),
		entry(3, "2025-01-19", "payment", creditLine(1, 300), debitLine(3, 300)),
	}
	from, to := day("2025-01-01"), day("2025-01-31")

	tb, err := accounting.BuildTrialBalance(from, to, accounts, entries)
	require.NoError(t, err)

	for _, account := range accounts {
		proj, err := accounting.ProjectLedger(account, from, to, entries)
		require.NoError(t, err)
		row := rowFor(t, tb, account.AccountID)
		assert.Equal(t, proj.ClosingBalance, row.EndingBalance, "account %s", account.Code)
		assert.Equal(t, proj.OpeningBalance, row.OpeningBalance, "account %s", account.Code)
	}
}

func TestBuildTrialBalance_InactiveButUsedAccountAppears(t *testing.T) {
	dormant := domain.Account{AccountID: 9, Code: "109", Name: "단기대여금", Type: domain.Asset, IsActive: false}
	accounts := []domain.Account{cashAccount, dormant}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-10", "loan issued", debitLine(9, 600), creditLine(1, 600)),
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)

	row := rowFor(t, tb, 9)
	assert.True(t, row.EndingBalance.Amount.Equal(won(600)))
	assert.Equal(t, domain.DirectionDebit, row.EndingBalance.Direction)
}

func TestBuildTrialBalance_InactiveUnusedAccountOmitted(t *testing.T) {
	dormant := domain.Account{AccountID: 9, Code: "109", Name: "단기대여금", Type: domain.Asset, IsActive: false}
	accounts := []domain.Account{cashAccount, dormant}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, nil)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 1)
	assert.Equal(t, int64(1), tb.Rows[0].AccountID)
}

func TestBuildTrialBalance_EmptyAccounts(t *testing.T) {
	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.Total.Debit.IsZero())
	assert.True(t, tb.Total.Credit.IsZero())
	assert.True(t, tb.Total.IsBalanced, "an empty report is vacuously balanced")
}

func TestBuildTrialBalance_RejectsInvertedRange(t *testing.T) {
	_, err := accounting.BuildTrialBalance(day("2025-02-01"), day("2025-01-01"), nil, nil)
	assert.ErrorIs(t, err, accounting.ErrInvalidDateRange)
}

func TestBuildTrialBalance_RowsSortedByNumericCode(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: 1, Code: "501", Name: "급여", Type: domain.Expense, IsActive: true},
		{AccountID: 2, Code: "99", Name: "가계정", Type: domain.Asset, IsActive: true},
		{AccountID: 3, Code: "101", Name: "현금", Type: domain.Asset, IsActive: true},
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, nil)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 3)
	assert.Equal(t, "99", tb.Rows[0].AccountCode)
	assert.Equal(t, "101", tb.Rows[1].AccountCode)
	assert.Equal(t, "501", tb.Rows[2].AccountCode)
}

func TestBuildTrialBalance_RecentEntriesNewestFirstCapped(t *testing.T) {
	accounts := []domain.Account{cashAccount, revenueAccount}
	entries := make([]domain.JournalEntry, 0, 7)
	for i := 1; i <= 7; i++ {
		entries = append(entries, entry(
			int64(i),
			fmt.Sprintf("2025-01-%02d", i),
			fmt.Sprintf("sale %d", i),
			debitLine(1, int64(i*100)),
			creditLine(2, int64(i*100)),
		))
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)

	cash := rowFor(t, tb, 1)
	assert.Equal(t, 7, cash.TransactionCount)
	require.Len(t, cash.RecentEntries, 5)
	assert.Equal(t, "sale 7", cash.RecentEntries[0].Description)
	assert.Equal(t, "sale 3", cash.RecentEntries[4].Description)
}

func TestBuildTrialBalance_AbnormalBalanceFlagged(t *testing.T) {
	// Overdrawn cash: credit exceeds all debits.
	accounts := []domain.Account{cashAccount, payableAccount}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-07", "overdraft payment", creditLine(1, 400), debitLine(3, 400)),
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)

	cash := rowFor(t, tb, 1)
	assert.Equal(t, domain.DirectionCredit, cash.EndingBalance.Direction)
	assert.True(t, cash.AbnormalBalance)

	payable := rowFor(t, tb, 3)
	assert.Equal(t, domain.DirectionDebit, payable.EndingBalance.Direction)
	assert.True(t, payable.AbnormalBalance)
}

func TestBuildTrialBalance_Idempotent(t *testing.T) {
	accounts := []domain.Account{cashAccount, revenueAccount, payableAccount}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-03", "sale", debitLine(1, 800), creditLine(2, 800)),
		entry(2, "2025-01-09", "purchase", debitLine(1, 120), creditLine(3, 120)),
	}

	first, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)
	second, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildTrialBalance_ZeroNetRowKeepsPeriodTotals(t *testing.T) {
	accounts := []domain.Account{cashAccount, revenueAccount, payableAccount}
	entries := []domain.JournalEntry{
		entry(1, "2025-01-02", "in", debitLine(1, 500), creditLine(2, 500)),
		entry(2, "2025-01-20", "out", creditLine(1, 500), debitLine(3, 500)),
	}

	tb, err := accounting.BuildTrialBalance(day("2025-01-01"), day("2025-01-31"), accounts, entries)
	require.NoError(t, err)

	cash := rowFor(t, tb, 1)
	assert.True(t, cash.TotalDebit.Equal(won(500)))
	assert.True(t, cash.TotalCredit.Equal(won(500)))
	assert.True(t, cash.EndingBalance.Amount.Equal(decimal.Zero))
	assert.Equal(t, domain.DirectionNone, cash.EndingBalance.Direction)
}
