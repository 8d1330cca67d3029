package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is the inclusive date range a report covers.
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// RecentEntry is a bounded lookback line shown alongside a trial balance row.
// It previews recent activity and plays no part in balance math.
type RecentEntry struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceRow holds one account's period totals and balances.
type TrialBalanceRow struct {
	AccountID        int64           `json:"accountID"`
	AccountCode      string          `json:"accountCode"`
	AccountName      string          `json:"accountName"`
	AccountType      AccountType     `json:"accountType"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	OpeningBalance   BalanceAmount   `json:"openingBalance"`
	EndingBalance    BalanceAmount   `json:"endingBalance"`
	TransactionCount int             `json:"transactionCount"`
	AbnormalBalance  bool            `json:"abnormalBalance"`
	RecentEntries    []RecentEntry   `json:"recentEntries"`
}

// TrialBalanceTotal carries the report-wide debit/credit sums and the
// balanced verdict. An unbalanced report is still a valid report.
type TrialBalanceTotal struct {
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	IsBalanced bool            `json:"isBalanced"`
}

// TrialBalance is the full trial balance report, recomputed fresh per query.
type TrialBalance struct {
	Period ReportPeriod      `json:"period"`
	Rows   []TrialBalanceRow `json:"rows"`
	Total  TrialBalanceTotal `json:"total"`
}

// LedgerEntry is one posting in a general ledger view, carrying the signed
// running balance after the posting is applied.
type LedgerEntry struct {
	EntryID        int64           `json:"entryID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerProjection is the per-account general ledger for a period.
type LedgerProjection struct {
	AccountID      int64           `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	Period         ReportPeriod    `json:"period"`
	OpeningBalance BalanceAmount   `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance BalanceAmount   `json:"closingBalance"`
	Entries        []LedgerEntry   `json:"entries"`
}
