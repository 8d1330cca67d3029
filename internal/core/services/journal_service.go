package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/apperrors"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
	"github.com/jangbu-app/jangbu_backend/internal/dto"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	validator   *accounting.Validator
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		validator:   accounting.NewValidator(),
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	input := req.ToEntryInput()
	violations, err := s.validateEntry(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, accounting.NewValidationError(violations)
	}

	date, _ := time.Parse(accounting.DateLayout, input.Date)
	now := time.Now()
	entry := domain.JournalEntry{
		Date:        date,
		Description: input.Description,
		Lines:       toDomainLines(input.Lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry, balanceChanges(entry.Lines, nil)); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.Int64("entry_id", entry.EntryID),
		slog.Int("line_count", len(entry.Lines)))
	return s.GetJournalEntryByID(ctx, entry.EntryID)
}

func (s *journalService) UpdateJournalEntry(ctx context.Context, entryID int64, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry for update",
				slog.Int64("entry_id", entryID))
		}
		return nil, err
	}

	input := req.ToEntryInput()
	violations, err := s.validateEntry(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, accounting.NewValidationError(violations)
	}

	date, _ := time.Parse(accounting.DateLayout, input.Date)
	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        date,
		Description: input.Description,
		Lines:       toDomainLines(input.Lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     existing.CreatedAt,
			LastUpdatedAt: time.Now(),
		},
	}

	// The replacement delta reverses the old lines and applies the new ones.
	if err := s.journalRepo.ReplaceEntry(ctx, &entry, balanceChanges(entry.Lines, existing.Lines)); err != nil {
		s.LogError(ctx, err, "Failed to replace journal entry",
			slog.Int64("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated successfully",
		slog.Int64("entry_id", entryID))
	return s.GetJournalEntryByID(ctx, entryID)
}

func (s *journalService) DeleteJournalEntry(ctx context.Context, entryID int64) error {
	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry for deletion",
				slog.Int64("entry_id", entryID))
		}
		return err
	}

	if err := s.journalRepo.SoftDeleteEntry(ctx, entryID, balanceChanges(nil, existing.Lines), time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry",
			slog.Int64("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully",
		slog.Int64("entry_id", entryID))
	return nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry by ID",
				slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, int64, error) {
	from, err := parseOptionalDate(params.From, "from")
	if err != nil {
		return nil, 0, err
	}
	to, err := parseOptionalDate(params.To, "to")
	if err != nil {
		return nil, 0, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, 0, fmt.Errorf("from must not be after to: %w", apperrors.ErrValidation)
	}

	entries, total, err := s.journalRepo.ListEntries(ctx, portsrepo.ListEntriesParams{
		From:   from,
		To:     to,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, 0, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, total, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD query value.
func parseOptionalDate(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(accounting.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be a YYYY-MM-DD date: %w", name, apperrors.ErrValidation)
	}
	return &t, nil
}

// validateEntry runs the structural validator and then checks that every
// referenced account exists and is active. All violations are collected so the
// caller sees them in one pass.
func (s *journalService) validateEntry(ctx context.Context, input accounting.EntryInput) ([]accounting.FieldError, error) {
	violations := s.validator.Validate(input)

	ids := make([]int64, 0, len(input.Lines))
	seen := make(map[int64]struct{}, len(input.Lines))
	for _, line := range input.Lines {
		if line.AccountID < 1 {
			continue // Already flagged by the validator
		}
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	if len(ids) == 0 {
		return violations, nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve accounts for validation")
		return nil, err
	}

	for i, line := range input.Lines {
		if line.AccountID < 1 {
			continue
		}
		account, ok := accounts[line.AccountID]
		field := fmt.Sprintf("lines[%d].accountID", i)
		switch {
		case !ok:
			violations = append(violations, accounting.FieldError{
				Field:   field,
				Message: fmt.Sprintf("account %d does not exist", line.AccountID),
			})
		case !account.IsActive:
			violations = append(violations, accounting.FieldError{
				Field:   field,
				Message: fmt.Sprintf("account %s is inactive", account.Code),
			})
		}
	}
	return violations, nil
}

func toDomainLines(lines []accounting.LineInput) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return out
}

// balanceChanges computes per-account signed deltas (debit minus credit) for
// applying newLines and reversing oldLines in one transaction.
func balanceChanges(newLines, oldLines []domain.JournalLine) map[int64]decimal.Decimal {
	changes := make(map[int64]decimal.Decimal)
	apply := func(lines []domain.JournalLine, sign decimal.Decimal) {
		for _, l := range lines {
			delta := l.Debit.Sub(l.Credit).Mul(sign)
			changes[l.AccountID] = changes[l.AccountID].Add(delta)
		}
	}
	apply(newLines, decimal.NewFromInt(1))
	apply(oldLines, decimal.NewFromInt(-1))
	for id, delta := range changes {
		if delta.IsZero() {
			delete(changes, id)
		}
	}
	return changes
}
