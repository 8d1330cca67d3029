package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	"github.com/jangbu-app/jangbu_backend/internal/apperrors"
	"github.com/jangbu-app/jangbu_backend/internal/core/domain"
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
	"github.com/jangbu-app/jangbu_backend/internal/core/services"
	"github.com/jangbu-app/jangbu_backend/internal/dto"
)

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, params portsrepo.ListEntriesParams) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) FindLiveEntriesThrough(ctx context.Context, through time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, through)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[int64]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) SoftDeleteEntry(ctx context.Context, entryID int64, balanceChanges map[int64]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, entryID, balanceChanges, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
}

func activeAccounts() map[int64]domain.Account {
	return map[int64]domain.Account{
		1: {AccountID: 1, Code: "101", Name: "현금", Type: domain.Asset, IsActive: true},
		5: {AccountID: 5, Code: "401", Name: "매출", Type: domain.Revenue, IsActive: true},
	}
}

func salesEntryRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        "2026-03-02",
		Description: "상품 판매",
		Lines: []dto.JournalLineRequest{
			{AccountID: 1, Debit: decimal.NewFromInt(50000)},
			{AccountID: 5, Credit: decimal.NewFromInt(50000)},
		},
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := salesEntryRequest()

	savedEntry := &domain.JournalEntry{
		EntryID:     7,
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Description: "상품 판매",
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: 7, AccountID: 1, AccountName: "현금", Debit: decimal.NewFromInt(50000)},
			{LineID: 2, EntryID: 7, AccountID: 5, AccountName: "매출", Credit: decimal.NewFromInt(50000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []int64{1, 5}).Return(activeAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[1].Equal(decimal.NewFromInt(50000)) &&
			changes[5].Equal(decimal.NewFromInt(-50000))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.JournalEntry).EntryID = 7
	}).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(7)).Return(savedEntry, nil).Once()

	created, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(7), created.EntryID)
	suite.Len(created.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnbalancedRejected() {
	ctx := context.Background()
	req := salesEntryRequest()
	req.Lines[1].Credit = decimal.NewFromInt(40000)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []int64{1, 5}).Return(activeAccounts(), nil).Once()

	created, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)

	var validationErr *accounting.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	fields := make([]string, 0, len(validationErr.Violations))
	for _, v := range validationErr.Violations {
		fields = append(fields, v.Field)
	}
	suite.Contains(fields, "lines.debit")
	suite.Contains(fields, "lines.credit")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccountRejected() {
	ctx := context.Background()
	req := salesEntryRequest()

	accounts := activeAccounts()
	inactive := accounts[5]
	inactive.IsActive = false
	accounts[5] = inactive

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []int64{1, 5}).Return(accounts, nil).Once()

	created, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)

	var validationErr *accounting.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Len(validationErr.Violations, 1)
	suite.Equal("lines[1].accountID", validationErr.Violations[0].Field)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccountRejected() {
	ctx := context.Background()
	req := salesEntryRequest()

	accounts := activeAccounts()
	delete(accounts, 5)

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []int64{1, 5}).Return(accounts, nil).Once()

	created, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)

	var validationErr *accounting.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Len(validationErr.Violations, 1)
	suite.Equal("lines[1].accountID", validationErr.Violations[0].Field)
}

func (suite *JournalServiceTestSuite) TestUpdateJournalEntry_AppliesReplacementDelta() {
	ctx := context.Background()
	existing := &domain.JournalEntry{
		EntryID:     7,
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Description: "상품 판매",
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: 7, AccountID: 1, Debit: decimal.NewFromInt(50000)},
			{LineID: 2, EntryID: 7, AccountID: 5, Credit: decimal.NewFromInt(50000)},
		},
	}

	req := salesEntryRequest()
	req.Lines[0].Debit = decimal.NewFromInt(70000)
	req.Lines[1].Credit = decimal.NewFromInt(70000)

	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(7)).Return(existing, nil).Twice()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []int64{1, 5}).Return(activeAccounts(), nil).Once()
	suite.mockJournalRepo.On("ReplaceEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		// Net effect of replacing 50,000 with 70,000 on both sides
		return len(changes) == 2 &&
			changes[1].Equal(decimal.NewFromInt(20000)) &&
			changes[5].Equal(decimal.NewFromInt(-20000))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateJournalEntry(ctx, 7, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_ReversesBalances() {
	ctx := context.Background()
	existing := &domain.JournalEntry{
		EntryID:     7,
		Date:        time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Description: "상품 판매",
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: 7, AccountID: 1, Debit: decimal.NewFromInt(50000)},
			{LineID: 2, EntryID: 7, AccountID: 5, Credit: decimal.NewFromInt(50000)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(7)).Return(existing, nil).Once()
	suite.mockJournalRepo.On("SoftDeleteEntry", ctx, int64(7), mock.MatchedBy(func(changes map[int64]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[1].Equal(decimal.NewFromInt(-50000)) &&
			changes[5].Equal(decimal.NewFromInt(50000))
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteJournalEntry(ctx, 7)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournalEntry_NotFound() {
	ctx := context.Background()

	suite.mockJournalRepo.On("FindEntryByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteJournalEntry(ctx, 99)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SoftDeleteEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_PassesDateBounds() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListEntries", ctx, mock.MatchedBy(func(params portsrepo.ListEntriesParams) bool {
		return params.From != nil && params.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			params.To != nil && params.To.Equal(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)) &&
			params.Limit == 20 && params.Offset == 0
	})).Return([]domain.JournalEntry{}, int64(0), nil).Once()

	_, _, err := suite.service.ListJournalEntries(ctx, dto.ListJournalEntriesParams{
		From:  "2026-03-01",
		To:    "2026-03-31",
		Limit: 20,
	})

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_InvertedRangeRejected() {
	ctx := context.Background()

	_, _, err := suite.service.ListJournalEntries(ctx, dto.ListJournalEntriesParams{
		From:  "2026-03-31",
		To:    "2026-03-01",
		Limit: 20,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
