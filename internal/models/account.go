package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a financial account row in the chart of accounts.
// ParentAccountID is a nullable self-reference.
type Account struct {
	AccountID       int64           `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	ParentAccountID *int64          `db:"parent_account_id"`
	Description     string          `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"` // Persisted signed balance (debits minus credits)
	AuditFields
}
