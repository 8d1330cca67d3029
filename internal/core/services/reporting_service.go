package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/apperrors"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
)

// reportingService implements the ReportingService interface. Reports are
// computed from live journal entries on every call; stored account balances
// are never consulted.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalEntryReader
}

// NewReportingService creates a new reporting service
func NewReportingService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalEntryReader) portssvc.ReportingService {
	return &reportingService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance")
		return nil, err
	}

	entries, err := s.journalRepo.FindLiveEntriesThrough(ctx, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entries for trial balance")
		return nil, err
	}

	tb, err := accounting.BuildTrialBalance(from, to, accounts, entries)
	if err != nil {
		if errors.Is(err, accounting.ErrInvalidDateRange) {
			return nil, fmt.Errorf("%s: %w", err, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to build trial balance")
		return nil, err
	}

	s.LogDebug(ctx, "Trial balance computed",
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("is_balanced", tb.Total.IsBalanced))
	return &tb, nil
}

func (s *reportingService) GeneralLedger(ctx context.Context, accountID int64, from, to time.Time, search string) (*domain.LedgerProjection, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for general ledger",
				slog.Int64("account_id", accountID))
		}
		return nil, err
	}

	entries, err := s.journalRepo.FindLiveEntriesThrough(ctx, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal entries for general ledger")
		return nil, err
	}

	// Search narrows the displayed lines only. Entries dated before the range
	// always stay in so the opening balance is unaffected.
	if search != "" {
		entries = filterEntriesForDisplay(entries, from, search)
	}

	ledger, err := accounting.ProjectLedger(*account, from, to, entries)
	if err != nil {
		if errors.Is(err, accounting.ErrInvalidDateRange) {
			return nil, fmt.Errorf("%s: %w", err, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to project general ledger",
			slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogDebug(ctx, "General ledger computed",
		slog.Int64("account_id", accountID),
		slog.Int("entry_count", len(ledger.Entries)))
	return &ledger, nil
}

// filterEntriesForDisplay keeps every entry dated before the range start plus
// the later entries matching the search term by description or entry ID.
func filterEntriesForDisplay(entries []domain.JournalEntry, from time.Time, search string) []domain.JournalEntry {
	needle := strings.ToLower(strings.TrimSpace(search))
	kept := make([]domain.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date.Before(from) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strconv.FormatInt(e.EntryID, 10) == needle {
			kept = append(kept, e)
		}
	}
	return kept
}
