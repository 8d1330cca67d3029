package services

import (
	"context"
	"time"

	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
)

// ReportingService defines the derived-report computations. Reports are
// recomputed from live journal entries on every call; nothing is cached.
type ReportingService interface {
	// TrialBalance computes the trial balance for the inclusive date range.
	TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error)

	// GeneralLedger computes one account's ledger for the inclusive date
	// range. A non-empty search filters the displayed lines by description
	// or entry ID without touching the opening balance.
	GeneralLedger(ctx context.Context, accountID int64, from, to time.Time, search string) (*domain.LedgerProjection, error)
}
