package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/core/services"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LiquidationTaxServiceTestSuite struct {
	suite.Suite
	liquidationRepo *MockLiquidationRepository
	taxLineRepo     *MockTaxLineRepository
	companyRepo     *MockCompanyRepository
	accountRepo     *MockAccountRepository
	taxRepo         *MockTaxRepository
	taxSvc          *MockTaxSvc
	currencySvc     *MockCurrencySvc
	service         portssvc.LiquidationTaxSvcFacade

	draft domain.Liquidation
	tax   domain.Tax
}

func (suite *LiquidationTaxServiceTestSuite) SetupTest() {
	suite.liquidationRepo = new(MockLiquidationRepository)
	suite.taxLineRepo = new(MockTaxLineRepository)
	suite.companyRepo = new(MockCompanyRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.taxRepo = new(MockTaxRepository)
	suite.taxSvc = new(MockTaxSvc)
	suite.currencySvc = new(MockCurrencySvc)

	repos := portsrepo.RepositoryProvider{
		TxManager:       MockTxManager{},
		LiquidationRepo: suite.liquidationRepo,
		TaxLineRepo:     suite.taxLineRepo,
		CompanyRepo:     suite.companyRepo,
		AccountRepo:     suite.accountRepo,
		TaxRepo:         suite.taxRepo,
	}
	suite.service = services.NewLiquidationTaxService(repos, suite.taxSvc, suite.currencySvc, fixedClock{now: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)})

	suite.draft = domain.Liquidation{LiquidationID: "liq-1", CompanyID: companyID, Type: domain.OutLiquidation, State: domain.LiquidationDraft, CurrencyCode: "USD"}
	taxCode := "tc-1"
	suite.tax = domain.Tax{
		TaxID: "tax-1", CompanyID: companyID, Name: "RET 1%", Description: "Retención 1%",
		Type: domain.TaxTypePercentage, Rate: dec("0.01"),
		InvoiceAccountID: "acc-ret", InvoiceBaseSign: dec("1"), InvoiceTaxCodeID: &taxCode, InvoiceTaxSign: dec("-1"),
	}

	suite.currencySvc.On("GetCurrency", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD", Digits: 2, Rounding: dec("0.01")}, nil)
	suite.companyRepo.On("FindCompanyByID", mock.Anything, mock.Anything).Return(&domain.Company{CompanyID: companyID, Name: "ACME", CurrencyCode: "USD"}, nil)
}

func (suite *LiquidationTaxServiceTestSuite) lock(liq domain.Liquidation) {
	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, []string{liq.LiquidationID}).Return([]domain.Liquidation{liq}, nil).Once()
}

func (suite *LiquidationTaxServiceTestSuite) kindOf(err error) apperrors.Kind {
	var ue *apperrors.UserError
	suite.Require().True(errors.As(err, &ue), "expected user error, got %v", err)
	return ue.Kind
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_FromTaxDefinition() {
	ctx := context.Background()
	base := dec("1234.50")
	taxID := "tax-1"
	suite.lock(suite.draft)
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-ret"}).
		Return(map[string]domain.Account{"acc-ret": {AccountID: "acc-ret", CompanyID: companyID, Kind: domain.AccountKindOther}}, nil).Once()
	suite.taxRepo.On("FindTaxCodesByIDs", mock.Anything, []string{"tc-1"}).
		Return(map[string]domain.TaxCode{"tc-1": {TaxCodeID: "tc-1", CompanyID: companyID}}, nil).Once()
	suite.taxLineRepo.On("SaveTaxLines", mock.Anything, mock.MatchedBy(func(lines []domain.LiquidationTax) bool {
		return len(lines) == 1 && lines[0].LiquidationTaxID != "" && lines[0].CreatedBy == userID
	})).Return(nil).Once()

	lines, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{TaxID: &taxID, Base: &base}}, userID)

	suite.Require().NoError(err)
	suite.Require().Len(lines, 1)
	line := lines[0]
	suite.Equal("Retención 1%", line.Description)
	suite.Equal("acc-ret", line.AccountID)
	suite.True(dec("12.34").Equal(line.Amount), "got %s", line.Amount)
	suite.True(dec("-1").Equal(line.TaxSign))
	suite.True(line.Manual)
	suite.Require().Len(suite.taxSvc.computedBases, 1)
	suite.True(base.Equal(suite.taxSvc.computedBases[0]))
	suite.taxLineRepo.AssertExpectations(suite.T())
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_ExplicitFieldsOverrideTax() {
	ctx := context.Background()
	taxID := "tax-1"
	desc := "Custom"
	account := "acc-other"
	manual := false
	amount := dec("7.777")
	suite.lock(suite.draft)
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-other"}).
		Return(map[string]domain.Account{"acc-other": {AccountID: "acc-other", CompanyID: companyID}}, nil).Once()
	suite.taxRepo.On("FindTaxCodesByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.TaxCode{"tc-1": {TaxCodeID: "tc-1", CompanyID: companyID}}, nil).Once()
	suite.taxLineRepo.On("SaveTaxLines", mock.Anything, mock.Anything).Return(nil).Once()

	lines, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{
		TaxID: &taxID, Description: &desc, AccountID: &account, Manual: &manual, Amount: &amount,
	}}, userID)

	suite.Require().NoError(err)
	suite.Equal("Custom", lines[0].Description)
	suite.Equal("acc-other", lines[0].AccountID)
	suite.True(dec("7.78").Equal(lines[0].Amount))
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_PostedLiquidation() {
	ctx := context.Background()
	posted := suite.draft
	posted.State = domain.LiquidationPosted
	desc := "late line"
	suite.lock(posted)

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{Description: &desc}}, userID)

	suite.Equal(apperrors.KindCreateTax, suite.kindOf(err))
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.taxLineRepo.AssertNotCalled(suite.T(), "SaveTaxLines", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_PostedLiquidationBeforeTaxLookup() {
	ctx := context.Background()
	posted := suite.draft
	posted.State = domain.LiquidationPosted
	missing := "tax-missing"
	suite.lock(posted)

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{TaxID: &missing}}, userID)

	suite.Equal(apperrors.KindCreateTax, suite.kindOf(err))
	suite.taxSvc.AssertNotCalled(suite.T(), "GetTax", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_AccountOfAnotherCompany() {
	ctx := context.Background()
	account := "acc-foreign"
	suite.lock(suite.draft)
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-foreign"}).
		Return(map[string]domain.Account{"acc-foreign": {AccountID: "acc-foreign", CompanyID: "company-2", Code: "2.1", Name: "Other"}}, nil).Once()

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{AccountID: &account}}, userID)

	suite.Equal(apperrors.KindInvalidAccountCompany, suite.kindOf(err))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.taxLineRepo.AssertNotCalled(suite.T(), "SaveTaxLines", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_ViewAccount() {
	ctx := context.Background()
	account := "acc-view"
	suite.lock(suite.draft)
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-view"}).
		Return(map[string]domain.Account{"acc-view": {AccountID: "acc-view", CompanyID: companyID, Kind: domain.AccountKindView}}, nil).Once()

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{AccountID: &account}}, userID)

	suite.Equal(apperrors.KindInvalidAccountKind, suite.kindOf(err))
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_InvalidSign() {
	ctx := context.Background()
	account := "acc-ret"
	sign := dec("2")
	suite.lock(suite.draft)
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-ret"}).
		Return(map[string]domain.Account{"acc-ret": {AccountID: "acc-ret", CompanyID: companyID}}, nil).Once()

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{AccountID: &account, TaxSign: &sign}}, userID)

	suite.Equal(apperrors.KindInvalidSign, suite.kindOf(err))
	suite.Contains(err.Error(), "tax_sign")
}

func (suite *LiquidationTaxServiceTestSuite) TestAddTaxLines_TaxCodeOfAnotherCompany() {
	ctx := context.Background()
	account := "acc-ret"
	code := "tc-9"
	suite.lock(suite.draft)
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-ret"}).
		Return(map[string]domain.Account{"acc-ret": {AccountID: "acc-ret", CompanyID: companyID}}, nil).Once()
	suite.taxRepo.On("FindTaxCodesByIDs", mock.Anything, []string{"tc-9"}).
		Return(map[string]domain.TaxCode{"tc-9": {TaxCodeID: "tc-9", CompanyID: "company-2"}}, nil).Once()

	_, err := suite.service.AddTaxLines(ctx, companyID, "liq-1", []dto.TaxLineRequest{{AccountID: &account, TaxCodeID: &code}}, userID)

	suite.Equal(apperrors.KindInvalidTaxCodeCompany, suite.kindOf(err))
}

func (suite *LiquidationTaxServiceTestSuite) TestUpdateTaxLine_PostedLiquidation() {
	ctx := context.Background()
	posted := suite.draft
	posted.State = domain.LiquidationPosted
	suite.lock(posted)
	suite.taxLineRepo.On("FindTaxLineByID", mock.Anything, "line-1").
		Return(&domain.LiquidationTax{LiquidationTaxID: "line-1", LiquidationID: "liq-1", Description: "RET"}, nil).Once()
	base := dec("10")

	_, err := suite.service.UpdateTaxLine(ctx, companyID, "liq-1", "line-1", dto.TaxLineRequest{Base: &base}, userID)

	suite.Equal(apperrors.KindModifyTax, suite.kindOf(err))
	suite.taxLineRepo.AssertNotCalled(suite.T(), "UpdateTaxLine", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestUpdateTaxLine_RecomputesFromLinkedTax() {
	ctx := context.Background()
	taxID := "tax-1"
	suite.lock(suite.draft)
	existing := domain.NewLiquidationTax("liq-1")
	existing.LiquidationTaxID = "line-1"
	existing.TaxID = &taxID
	existing.AccountID = "acc-ret"
	suite.taxLineRepo.On("FindTaxLineByID", mock.Anything, "line-1").Return(&existing, nil).Once()
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-ret"}).
		Return(map[string]domain.Account{"acc-ret": {AccountID: "acc-ret", CompanyID: companyID}}, nil).Once()
	suite.taxLineRepo.On("UpdateTaxLine", mock.Anything, mock.MatchedBy(func(l domain.LiquidationTax) bool {
		return l.Amount.Equal(dec("5")) && l.LastUpdatedBy == userID
	})).Return(nil).Once()
	base := dec("500")

	line, err := suite.service.UpdateTaxLine(ctx, companyID, "liq-1", "line-1", dto.TaxLineRequest{Base: &base}, userID)

	suite.Require().NoError(err)
	suite.True(dec("5").Equal(line.Amount))
	suite.taxLineRepo.AssertExpectations(suite.T())
}

func (suite *LiquidationTaxServiceTestSuite) TestDeleteTaxLine_WrongLiquidation() {
	ctx := context.Background()
	suite.lock(suite.draft)
	suite.taxLineRepo.On("FindTaxLineByID", mock.Anything, "line-1").
		Return(&domain.LiquidationTax{LiquidationTaxID: "line-1", LiquidationID: "liq-2"}, nil).Once()

	err := suite.service.DeleteTaxLine(ctx, companyID, "liq-1", "line-1", userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.taxLineRepo.AssertNotCalled(suite.T(), "DeleteTaxLine", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestPreviewTaxLine_DoesNotPersist() {
	ctx := context.Background()
	taxID := "tax-1"
	base := dec("200")
	suite.liquidationRepo.On("FindLiquidationByID", mock.Anything, companyID, "liq-1").Return(&suite.draft, nil).Once()
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()

	line, err := suite.service.PreviewTaxLine(ctx, companyID, "liq-1", dto.TaxLineRequest{TaxID: &taxID, Base: &base})

	suite.Require().NoError(err)
	suite.True(dec("2").Equal(line.Amount))
	suite.Empty(line.LiquidationTaxID)
	suite.taxLineRepo.AssertNotCalled(suite.T(), "SaveTaxLines", mock.Anything, mock.Anything)
}

func (suite *LiquidationTaxServiceTestSuite) TestPreviewTaxLine_RoundsWithCompanyCurrency() {
	ctx := context.Background()
	taxID := "tax-1"
	base := dec("1234.50")
	yen := suite.draft
	yen.CurrencyCode = "JPY"
	suite.liquidationRepo.On("FindLiquidationByID", mock.Anything, companyID, "liq-1").Return(&yen, nil).Once()
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()

	line, err := suite.service.PreviewTaxLine(ctx, companyID, "liq-1", dto.TaxLineRequest{TaxID: &taxID, Base: &base})

	suite.Require().NoError(err)
	suite.True(dec("12.34").Equal(line.Amount), "got %s", line.Amount)
	suite.currencySvc.AssertNotCalled(suite.T(), "GetCurrency", mock.Anything, "JPY")
}

func (suite *LiquidationTaxServiceTestSuite) TestPreviewTaxLine_NonManualSkipsComputation() {
	ctx := context.Background()
	taxID := "tax-1"
	manual := false
	amount := dec("3.456")
	suite.liquidationRepo.On("FindLiquidationByID", mock.Anything, companyID, "liq-1").Return(&suite.draft, nil).Once()
	suite.taxSvc.On("GetTax", mock.Anything, "tax-1").Return(&suite.tax, nil).Once()

	line, err := suite.service.PreviewTaxLine(ctx, companyID, "liq-1", dto.TaxLineRequest{TaxID: &taxID, Manual: &manual, Amount: &amount})

	suite.Require().NoError(err)
	suite.True(dec("3.46").Equal(line.Amount))
	suite.Empty(suite.taxSvc.computedBases)
}

func (suite *LiquidationTaxServiceTestSuite) TestPreviewTaxLine_TaxOfAnotherCompany() {
	ctx := context.Background()
	taxID := "tax-x"
	foreign := suite.tax
	foreign.CompanyID = "company-2"
	suite.liquidationRepo.On("FindLiquidationByID", mock.Anything, companyID, "liq-1").Return(&suite.draft, nil).Once()
	suite.taxSvc.On("GetTax", mock.Anything, "tax-x").Return(&foreign, nil).Once()

	_, err := suite.service.PreviewTaxLine(ctx, companyID, "liq-1", dto.TaxLineRequest{TaxID: &taxID})

	suite.Equal(apperrors.KindInvalidCompany, suite.kindOf(err))
}

func TestLiquidationTaxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LiquidationTaxServiceTestSuite))
}
