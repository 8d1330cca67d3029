package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// ReportPeriodParams defines the date range query parameters shared by the
// reporting endpoints. Both bounds are required; there is no implicit default.
type ReportPeriodParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// GeneralLedgerParams extends the period with an optional line filter.
type GeneralLedgerParams struct {
	ReportPeriodParams
	Search string `form:"search"`
}

// BalanceResponse is a directional amount as rendered in reports.
type BalanceResponse struct {
	Amount    decimal.Decimal         `json:"amount"`
	Direction domain.BalanceDirection `json:"direction,omitempty"`
}

func toBalanceResponse(b domain.BalanceAmount) BalanceResponse {
	return BalanceResponse{Amount: b.Amount, Direction: b.Direction}
}

// RecentEntryResponse is a lookback line shown under a trial balance row.
type RecentEntryResponse struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceRowResponse represents one account's row in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID        int64                 `json:"accountID"`
	AccountCode      string                `json:"accountCode"`
	AccountName      string                `json:"accountName"`
	AccountType      domain.AccountType    `json:"accountType"`
	TotalDebit       decimal.Decimal       `json:"totalDebit"`
	TotalCredit      decimal.Decimal       `json:"totalCredit"`
	OpeningBalance   BalanceResponse       `json:"openingBalance"`
	EndingBalance    BalanceResponse       `json:"endingBalance"`
	TransactionCount int                   `json:"transactionCount"`
	AbnormalBalance  bool                  `json:"abnormalBalance"`
	RecentEntries    []RecentEntryResponse `json:"recentEntries"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	FromDate string                    `json:"fromDate"`
	ToDate   string                    `json:"toDate"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit      decimal.Decimal `json:"debit"`
		Credit     decimal.Decimal `json:"credit"`
		IsBalanced bool            `json:"isBalanced"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		FromDate: tb.Period.From.Format(accounting.DateLayout),
		ToDate:   tb.Period.To.Format(accounting.DateLayout),
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
	}

	for i, row := range tb.Rows {
		recent := make([]RecentEntryResponse, len(row.RecentEntries))
		for j, re := range row.RecentEntries {
			recent[j] = RecentEntryResponse{
				Date:        re.Date.Format(accounting.DateLayout),
				Description: re.Description,
				Debit:       re.Debit,
				Credit:      re.Credit,
			}
		}
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:        row.AccountID,
			AccountCode:      row.AccountCode,
			AccountName:      row.AccountName,
			AccountType:      row.AccountType,
			TotalDebit:       row.TotalDebit,
			TotalCredit:      row.TotalCredit,
			OpeningBalance:   toBalanceResponse(row.OpeningBalance),
			EndingBalance:    toBalanceResponse(row.EndingBalance),
			TransactionCount: row.TransactionCount,
			AbnormalBalance:  row.AbnormalBalance,
			RecentEntries:    recent,
		}
	}

	response.Totals.Debit = tb.Total.Debit
	response.Totals.Credit = tb.Total.Credit
	response.Totals.IsBalanced = tb.Total.IsBalanced

	return response
}

// LedgerEntryResponse is one posting in the general ledger view.
type LedgerEntryResponse struct {
	EntryID        int64           `json:"entryID"`
	Date           string          `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerResponse represents the per-account general ledger response.
type GeneralLedgerResponse struct {
	AccountID      int64                 `json:"accountID"`
	AccountCode    string                `json:"accountCode"`
	AccountName    string                `json:"accountName"`
	FromDate       string                `json:"fromDate"`
	ToDate         string                `json:"toDate"`
	OpeningBalance BalanceResponse       `json:"openingBalance"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	ClosingBalance BalanceResponse       `json:"closingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
}

// ToGeneralLedgerResponse converts a domain ledger projection to a DTO response.
func ToGeneralLedgerResponse(lp *domain.LedgerProjection) GeneralLedgerResponse {
	entries := make([]LedgerEntryResponse, len(lp.Entries))
	for i, e := range lp.Entries {
		entries[i] = LedgerEntryResponse{
			EntryID:        e.EntryID,
			Date:           e.Date.Format(accounting.DateLayout),
			Description:    e.Description,
			Debit:          e.Debit,
			Credit:         e.Credit,
			RunningBalance: e.RunningBalance,
		}
	}
	return GeneralLedgerResponse{
		AccountID:      lp.AccountID,
		AccountCode:    lp.AccountCode,
		AccountName:    lp.AccountName,
		FromDate:       lp.Period.From.Format(accounting.DateLayout),
		ToDate:         lp.Period.To.Format(accounting.DateLayout),
		OpeningBalance: toBalanceResponse(lp.OpeningBalance),
		TotalDebit:     lp.TotalDebit,
		TotalCredit:    lp.TotalCredit,
		ClosingBalance: toBalanceResponse(lp.ClosingBalance),
		Entries:        entries,
	}
}
