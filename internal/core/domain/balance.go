package domain

import "github.com/shopspring/decimal"

// BalanceDirection names the side a balance sits on. The zero value means no
// side is asserted, which is the convention for an exact-zero balance.
type BalanceDirection string

const (
	DirectionDebit  BalanceDirection = "DEBIT"
	DirectionCredit BalanceDirection = "CREDIT"
	DirectionNone   BalanceDirection = ""
)

// BalanceAmount is the canonical directional representation of a signed
// balance: a non-negative amount plus the side it falls on.
type BalanceAmount struct {
	Amount    decimal.Decimal  `json:"amount"`
	Direction BalanceDirection `json:"direction,omitempty"`
}

// IsZero reports whether the balance carries no amount.
func (b BalanceAmount) IsZero() bool {
	return b.Amount.IsZero()
}
