package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five closed account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a single account in the chart of accounts.
// Code is unique and immutable after creation; Type changes only through an
// explicit update, never inferred from usage.
type Account struct {
	AccountID       int64           `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            AccountType     `json:"type"`
	ParentAccountID *int64          `json:"parentAccountID"` // Nullable self-reference, no cycles
	IsActive        bool            `json:"isActive"`
	Balance         decimal.Decimal `json:"balance"` // Persisted signed net (debits - credits)
	AuditFields
}
