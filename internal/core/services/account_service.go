package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jangbu-app/jangbu_backend/internal/apperrors"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
	"github.com/jangbu-app/jangbu_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("unknown account type %q: %w", req.Type, apperrors.ErrValidation)
	}

	// Codes are unique across the chart
	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness",
			slog.String("code", req.Code))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("account code %q is already in use: %w", req.Code, apperrors.ErrDuplicate)
	}

	if req.ParentAccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent account %d does not exist: %w", *req.ParentAccountID, apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to find parent account",
				slog.Int64("parent_id", *req.ParentAccountID))
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		Code:            req.Code,
		Name:            req.Name,
		Type:            req.Type,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("code", account.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.ParentAccountID != nil {
		if err := s.checkParentAssignable(ctx, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.Int64("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.Int64("account_id", account.AccountID))
	return account, nil
}

// checkParentAssignable verifies the parent exists and that assigning it does
// not introduce a cycle in the account hierarchy.
func (s *accountService) checkParentAssignable(ctx context.Context, accountID, parentID int64) error {
	if parentID == accountID {
		return fmt.Errorf("an account cannot be its own parent: %w", apperrors.ErrValidation)
	}
	seen := map[int64]struct{}{accountID: {}}
	current := parentID
	for {
		if _, ok := seen[current]; ok {
			return fmt.Errorf("parent assignment would create a cycle: %w", apperrors.ErrValidation)
		}
		seen[current] = struct{}{}

		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("parent account %d does not exist: %w", current, apperrors.ErrValidation)
			}
			return err
		}
		if parent.ParentAccountID == nil {
			return nil
		}
		current = *parent.ParentAccountID
	}
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID int64) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil // Already inactive
	}

	usage, err := s.accountRepo.CountLiveLineUsage(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count account usage",
			slog.Int64("account_id", accountID))
		return err
	}
	if usage > 0 {
		return fmt.Errorf("account is referenced by %d journal lines and cannot be deactivated: %w", usage, apperrors.ErrConflict)
	}

	if err := s.accountRepo.SetAccountActive(ctx, accountID, false, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.Int64("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.Int64("account_id", accountID))
	return nil
}

func (s *accountService) ReactivateAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsActive {
		return account, nil // Already active
	}

	now := time.Now()
	if err := s.accountRepo.SetAccountActive(ctx, accountID, true, now); err != nil {
		s.LogError(ctx, err, "Failed to reactivate account",
			slog.Int64("account_id", accountID))
		return nil, err
	}
	account.IsActive = true
	account.LastUpdatedAt = now

	s.LogInfo(ctx, "Account reactivated successfully",
		slog.Int64("account_id", accountID))
	return account, nil
}
