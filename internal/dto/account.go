package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=20"`
	Name            string             `json:"name" binding:"required,max=100"`
	Type            domain.AccountType `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *int64             `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description" binding:"max=500"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Code and Type are immutable once the account exists. Pointers distinguish
// zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=100"`
	Description     *string `json:"description" binding:"omitempty,max=500"`
	ParentAccountID *int64  `json:"parentAccountID"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        int64                   `json:"accountID"`
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	Type             domain.AccountType      `json:"type"`
	ParentAccountID  *int64                  `json:"parentAccountID"`
	Description      string                  `json:"description"`
	IsActive         bool                    `json:"isActive"`
	Balance          decimal.Decimal         `json:"balance"`
	BalanceDirection domain.BalanceDirection `json:"balanceDirection,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account, balance domain.BalanceAmount) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		Type:             acc.Type,
		ParentAccountID:  acc.ParentAccountID,
		Description:      acc.Description,
		IsActive:         acc.IsActive,
		Balance:          balance.Amount,
		BalanceDirection: balance.Direction,
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
