package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hawwa-platform/ledgercore/internal/apperrors"
	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/core/services"
	"github.com/hawwa-platform/ledgercore/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	catalogService  portssvc.CatalogSvcFacade
	ctx             context.Context
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.catalogService = services.NewCatalogService(suite.mockAccountRepo)
	suite.ctx = context.Background()
}

func (suite *CatalogServiceTestSuite) TestGetOrCreateAccount_CreatesWhenAbsent() {
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(nil, apperrors.ErrNotFound)
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.LedgerAccount")).Return(nil)

	account, err := suite.catalogService.GetOrCreateAccount(suite.ctx, "1000", "Cash", "asset", "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "1000", account.Code)
	assert.Equal(suite.T(), domain.Asset, account.AccountType)
	assert.True(suite.T(), account.IsActive)
	assert.Equal(suite.T(), "user-1", account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestGetOrCreateAccount_ReturnsExisting() {
	existing := &domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(existing, nil)

	account, err := suite.catalogService.GetOrCreateAccount(suite.ctx, "1000", "Different Name", "ASSET", "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing, account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestGetOrCreateAccount_RejectsUnknownType() {
	account, err := suite.catalogService.GetOrCreateAccount(suite.ctx, "9000", "Suspense", "WEIRD", "user-1")

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAccountType)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestGetOrCreateAccount_LosesCreateRace() {
	winner := &domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.LedgerAccount")).
		Return(apperrors.ErrDuplicate)
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(winner, nil).Once()

	account, err := suite.catalogService.GetOrCreateAccount(suite.ctx, "1000", "Cash", "ASSET", "user-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), winner, account)
}

func (suite *CatalogServiceTestSuite) TestSetAccountParent_RejectsSelf() {
	err := suite.catalogService.SetAccountParent(suite.ctx, "1000", "1000")

	assert.ErrorIs(suite.T(), err, services.ErrSelfParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestSetAccountParent_RejectsCycle() {
	child := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1100", AccountType: domain.Asset}
	parent := &domain.LedgerAccount{
		AccountID:       uuid.NewString(),
		Code:            "1110",
		AccountType:     domain.Asset,
		ParentAccountID: &child.AccountID, // parent already hangs below the child
	}

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1100").Return(child, nil)
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1110").Return(parent, nil)

	err := suite.catalogService.SetAccountParent(suite.ctx, "1100", "1110")

	assert.ErrorIs(suite.T(), err, services.ErrParentCycle)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestSetAccountParent_Success() {
	child := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1100", AccountType: domain.Asset}
	parent := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset}

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1100").Return(child, nil)
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(parent, nil)
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.LedgerAccount) bool {
		return a.ParentAccountID != nil && *a.ParentAccountID == parent.AccountID
	})).Return(nil)

	err := suite.catalogService.SetAccountParent(suite.ctx, "1100", "1000")

	assert.NoError(suite.T(), err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	existing := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", IsActive: true}
	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(existing, nil)

	account, err := suite.catalogService.UpdateAccount(suite.ctx, "1000", dto.UpdateAccountRequest{})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing, account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestUpdateAccount_Deactivate() {
	existing := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", IsActive: true}
	inactive := false

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(existing, nil)
	suite.mockAccountRepo.On("UpdateAccount", suite.ctx, mock.MatchedBy(func(a domain.LedgerAccount) bool {
		return !a.IsActive
	})).Return(nil)

	account, err := suite.catalogService.UpdateAccount(suite.ctx, "1000", dto.UpdateAccountRequest{IsActive: &inactive})

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), account.IsActive)
}

func (suite *CatalogServiceTestSuite) TestDeleteAccount_ProtectedWhenReferenced() {
	existing := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "1000"}

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "1000").Return(existing, nil)
	suite.mockAccountRepo.On("HasJournalLines", suite.ctx, existing.AccountID).Return(true, nil)

	err := suite.catalogService.DeleteAccount(suite.ctx, "1000")

	assert.ErrorIs(suite.T(), err, apperrors.ErrAccountReferenced)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestDeleteAccount_UnreferencedSucceeds() {
	existing := &domain.LedgerAccount{AccountID: uuid.NewString(), Code: "9999"}

	suite.mockAccountRepo.On("FindAccountByCode", suite.ctx, "9999").Return(existing, nil)
	suite.mockAccountRepo.On("HasJournalLines", suite.ctx, existing.AccountID).Return(false, nil)
	suite.mockAccountRepo.On("DeleteAccount", suite.ctx, existing.AccountID).Return(nil)

	err := suite.catalogService.DeleteAccount(suite.ctx, "9999")

	assert.NoError(suite.T(), err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
