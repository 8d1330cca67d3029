package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// ResolveBalance converts a signed net amount into its directional form.
// A positive amount sits on the debit side, a negative amount on the credit
// side. An exact-zero balance asserts no direction at all.
func ResolveBalance(signed decimal.Decimal) domain.BalanceAmount {
	switch signed.Sign() {
	case 1:
		return domain.BalanceAmount{Amount: signed, Direction: domain.DirectionDebit}
	case -1:
		return domain.BalanceAmount{Amount: signed.Neg(), Direction: domain.DirectionCredit}
	default:
		return domain.BalanceAmount{Amount: decimal.Zero, Direction: domain.DirectionNone}
	}
}

// NormalDirection returns the side on which an account type is expected to
// carry a positive balance.
// ASSET/EXPENSE -> DEBIT; LIABILITY/EQUITY/REVENUE -> CREDIT.
func NormalDirection(accountType domain.AccountType) (domain.BalanceDirection, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return domain.DirectionDebit, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return domain.DirectionCredit, nil
	default:
		return domain.DirectionNone, fmt.Errorf("unknown account type %q", accountType)
	}
}

// IsAbnormal reports whether a nonzero balance sits opposite its account
// type's normal side. An abnormal balance (e.g. a contra-asset) is valid
// double-entry accounting, just noteworthy.
func IsAbnormal(balance domain.BalanceAmount, accountType domain.AccountType) bool {
	if balance.Direction == domain.DirectionNone {
		return false
	}
	normal, err := NormalDirection(accountType)
	if err != nil {
		return false
	}
	return balance.Direction != normal
}
