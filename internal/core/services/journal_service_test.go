package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/core/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	journalService  portssvc.JournalSvcFacade
	ctx             context.Context

	cashAccount    domain.LedgerAccount
	revenueAccount domain.LedgerAccount
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.journalService = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)
	suite.ctx = context.Background()

	suite.cashAccount = domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Reference: "payment:" + uuid.NewString(),
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Narration: "Booking payment",
		Lines: []dto.EntryLineInput{
			{AccountCode: "1000", Debit: amount},
			{AccountCode: "4000", Credit: amount},
		},
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	amount := decimal.NewFromInt(250)
	req := suite.balancedRequest(amount)

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(&suite.cashAccount, nil)
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "4000").Return(&suite.revenueAccount, nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything).Return(nil)

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entry)
	assert.Equal(suite.T(), domain.Posted, entry.Status)
	assert.Equal(suite.T(), req.Reference, entry.Reference)
	assert.Len(suite.T(), entry.Lines, 2)
	assert.Equal(suite.T(), suite.cashAccount.AccountID, entry.Lines[0].AccountID)
	assert.Equal(suite.T(), suite.revenueAccount.AccountID, entry.Lines[1].AccountID)
	assert.True(suite.T(), domain.IsBalanced(entry.Lines))

	// Balance deltas follow the sign convention: both sides increase.
	deltas := suite.mockJournalRepo.Calls[0].Arguments.Get(2).(map[string]decimal.Decimal)
	assert.True(suite.T(), amount.Equal(deltas[suite.cashAccount.AccountID]))
	assert.True(suite.T(), amount.Equal(deltas[suite.revenueAccount.AccountID]))

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := dto.CreateEntryRequest{
		Date: time.Now().UTC(),
		Lines: []dto.EntryLineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
			{AccountCode: "4000", Credit: decimal.RequireFromString("99.99")},
		},
	}

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Empty() {
	req := dto.CreateEntryRequest{Date: time.Now().UTC()}

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEmptyEntry)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides() {
	req := dto.CreateEntryRequest{
		Date: time.Now().UTC(),
		Lines: []dto.EntryLineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(50), Credit: decimal.NewFromInt(50)},
			{AccountCode: "4000"},
		},
	}

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "line 1")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NegativeAmount() {
	req := dto.CreateEntryRequest{
		Date: time.Now().UTC(),
		Lines: []dto.EntryLineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(-10)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(-10)},
		},
	}

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(&inactive, nil)

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "inactive")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(nil, apperrors.ErrNotFound)

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_DuplicateReference() {
	req := suite.balancedRequest(decimal.NewFromInt(100))

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(&suite.cashAccount, nil)
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "4000").Return(&suite.revenueAccount, nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything).
		Return(apperrors.ErrDuplicate)

	entry, err := suite.journalService.CreateEntry(suite.ctx, req, "user-1")

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_SwapsSides() {
	originalID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:   originalID,
		Reference: "payment:abc",
		Date:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.Posted,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(300)},
			{LineID: uuid.NewString(), EntryID: originalID, AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(300)},
		},
	}

	suite.mockJournalRepo.On("FindEntryByReference", suite.ctx, "reversal:abc").Return(nil, apperrors.ErrNotFound)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, originalID).Return(original, nil)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, mock.Anything).Return(map[string]domain.LedgerAccount{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}, nil)
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything).Return(nil)

	reversal, err := suite.journalService.ReverseEntry(suite.ctx, originalID, "reversal:abc", "user-1")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), reversal)
	assert.NotEqual(suite.T(), originalID, reversal.EntryID)
	assert.Equal(suite.T(), "reversal:abc", reversal.Reference)
	assert.Equal(suite.T(), original.Date, reversal.Date)
	assert.Equal(suite.T(), "Reversal of payment:abc", reversal.Narration)

	// Debits and credits trade places line for line.
	assert.True(suite.T(), reversal.Lines[0].Debit.IsZero())
	assert.True(suite.T(), reversal.Lines[0].Credit.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), reversal.Lines[1].Debit.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), reversal.Lines[1].Credit.IsZero())

	// The reversal's deltas undo the original posting on both accounts.
	var deltas map[string]decimal.Decimal
	for _, call := range suite.mockJournalRepo.Calls {
		if call.Method == "SaveEntry" {
			deltas = call.Arguments.Get(2).(map[string]decimal.Decimal)
		}
	}
	assert.True(suite.T(), deltas[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-300)))
	assert.True(suite.T(), deltas[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(-300)))
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReferenceAlreadyUsed() {
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), Reference: "reversal:abc"}
	suite.mockJournalRepo.On("FindEntryByReference", suite.ctx, "reversal:abc").Return(existing, nil)

	reversal, err := suite.journalService.ReverseEntry(suite.ctx, uuid.NewString(), "reversal:abc", "user-1")

	assert.Nil(suite.T(), reversal)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_MissingReference() {
	reversal, err := suite.journalService.ReverseEntry(suite.ctx, uuid.NewString(), "", "user-1")

	assert.Nil(suite.T(), reversal)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	suite.mockJournalRepo.On("ListEntries", suite.ctx, 20, 0).Return([]domain.JournalEntry{}, nil)

	_, err := suite.journalService.ListEntries(suite.ctx, 0, 0)

	assert.NoError(suite.T(), err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
