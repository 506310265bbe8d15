package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

func (suite *LiquidationServiceTestSuite) draftForPosting() (domain.Liquidation, []domain.LiquidationTax) {
	liq := domain.Liquidation{
		LiquidationID:   "liq-1",
		CompanyID:       companyID,
		Type:            domain.OutLiquidation,
		State:           domain.LiquidationDraft,
		LiquidationDate: datePtr(2026, 3, 10),
		PartyID:         "party-1",
		CurrencyCode:    "USD",
		JournalID:       "journal-1",
		AccountID:       "acc-payable",
	}
	lines := []domain.LiquidationTax{{
		LiquidationTaxID: "line-1",
		LiquidationID:    "liq-1",
		Description:      "Retención 1%",
		AccountID:        "acc-ret",
		Amount:           dec("100.00"),
		TaxSign:          dec("1"),
		BaseSign:         dec("1"),
	}}
	return liq, lines
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_BalancedMove() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	seqID := "seq-out"
	period := &domain.Period{PeriodID: "period-1", Name: "2026-03", LiquidationSequences: domain.LiquidationSequences{OutLiquidationSequenceID: &seqID}}
	number := "001-001-000000001"
	liqDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&suite.company, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, datePtr(2026, 3, 10), true).Return(period, nil).Twice()
	suite.sequenceSvc.On("NextNumber", mock.Anything, seqID, liqDate).Return(number, nil).Once()
	suite.liquidationRepo.On("SetLiquidationNumber", mock.Anything, "liq-1", number, (*time.Time)(nil), userID, suite.now).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, []string{"acc-payable", "acc-ret"}).Return(map[string]domain.Account{
		"acc-payable": {AccountID: "acc-payable", CompanyID: companyID, Kind: domain.AccountKindPayable, PartyRequired: true},
		"acc-ret":     {AccountID: "acc-ret", CompanyID: companyID, Kind: domain.AccountKindOther},
	}, nil).Once()
	suite.ledgerSvc.On("CreateMove", mock.Anything, mock.MatchedBy(func(m domain.Move) bool {
		return m.Origin == "liquidation,liq-1" && m.Number == number && m.PeriodID == "period-1" &&
			m.JournalID == "journal-1" && m.Date.Equal(liqDate)
	}), userID).Return(&domain.Move{MoveID: "move-1"}, nil).Once()
	suite.liquidationRepo.On("SetLiquidationMove", mock.Anything, "liq-1", "move-1", userID, suite.now).Return(nil).Once()

	var booked []domain.MoveLine
	suite.ledgerSvc.On("CreateLines", mock.Anything, "move-1", mock.AnythingOfType("[]domain.MoveLine"), userID).
		Run(func(args mock.Arguments) { booked = args.Get(2).([]domain.MoveLine) }).
		Return([]domain.MoveLine{}, nil).Once()
	suite.ledgerSvc.On("PostMoves", mock.Anything, []string{"move-1"}, userID).Return(nil).Once()
	suite.liquidationRepo.On("UpdateLiquidationsState", mock.Anything, ids, domain.LiquidationPosted, userID, suite.now).Return(nil).Once()

	posted, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.Require().NoError(err)
	suite.Require().Len(posted, 1)
	suite.Equal(domain.LiquidationPosted, posted[0].State)
	suite.Equal(number, *posted[0].Number)
	suite.Equal("move-1", *posted[0].MoveID)

	suite.Require().Len(booked, 2)
	suite.Equal("acc-payable", booked[0].AccountID)
	suite.True(dec("100").Equal(booked[0].Credit))
	suite.Equal(number, booked[0].Description)
	suite.Require().NotNil(booked[0].PartyID)
	suite.Equal("acc-ret", booked[1].AccountID)
	suite.True(dec("100").Equal(booked[1].Debit))
	suite.True(domain.IsBalanced(booked))

	suite.liquidationRepo.AssertExpectations(suite.T())
	suite.ledgerSvc.AssertExpectations(suite.T())
	suite.sequenceSvc.AssertExpectations(suite.T())
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_MoveInPeriodOfLiquidationDate() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	liq.AccountingDate = datePtr(2026, 4, 2)
	seqID := "seq-april"
	april := &domain.Period{PeriodID: "period-04", Name: "2026-04", LiquidationSequences: domain.LiquidationSequences{OutLiquidationSequenceID: &seqID}}
	march := &domain.Period{PeriodID: "period-03", Name: "2026-03"}
	liqDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&suite.company, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, datePtr(2026, 4, 2), true).Return(april, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, datePtr(2026, 3, 10), true).Return(march, nil).Once()
	suite.sequenceSvc.On("NextNumber", mock.Anything, seqID, liqDate).Return("APR-1", nil).Once()
	suite.liquidationRepo.On("SetLiquidationNumber", mock.Anything, "liq-1", "APR-1", (*time.Time)(nil), userID, suite.now).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		"acc-payable": {AccountID: "acc-payable", CompanyID: companyID},
		"acc-ret":     {AccountID: "acc-ret", CompanyID: companyID},
	}, nil).Once()
	suite.ledgerSvc.On("CreateMove", mock.Anything, mock.MatchedBy(func(m domain.Move) bool {
		return m.PeriodID == "period-03" && m.Date.Equal(liqDate)
	}), userID).Return(&domain.Move{MoveID: "move-1"}, nil).Once()
	suite.liquidationRepo.On("SetLiquidationMove", mock.Anything, "liq-1", "move-1", userID, suite.now).Return(nil).Once()
	suite.ledgerSvc.On("CreateLines", mock.Anything, "move-1", mock.Anything, userID).Return([]domain.MoveLine{}, nil).Once()
	suite.ledgerSvc.On("PostMoves", mock.Anything, []string{"move-1"}, userID).Return(nil).Once()
	suite.liquidationRepo.On("UpdateLiquidationsState", mock.Anything, ids, domain.LiquidationPosted, userID, suite.now).Return(nil).Once()

	_, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.Require().NoError(err)
	suite.periodSvc.AssertExpectations(suite.T())
	suite.ledgerSvc.AssertExpectations(suite.T())
	suite.sequenceSvc.AssertExpectations(suite.T())
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_ForeignCurrencyConverts() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	liq.CurrencyCode = "EUR"
	number := "LIQ-7"
	liq.Number = &number
	period := &domain.Period{PeriodID: "period-1"}
	liqDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&suite.company, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, mock.Anything, true).Return(period, nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		"acc-payable": {AccountID: "acc-payable", CompanyID: companyID},
		"acc-ret":     {AccountID: "acc-ret", CompanyID: companyID},
	}, nil).Once()
	suite.currencySvc.On("Compute", mock.Anything, "EUR", dec("100.00"), "USD", liqDate).Return(dec("110.00"), nil).Once()
	suite.ledgerSvc.On("CreateMove", mock.Anything, mock.Anything, userID).Return(&domain.Move{MoveID: "move-1"}, nil).Once()
	suite.liquidationRepo.On("SetLiquidationMove", mock.Anything, "liq-1", "move-1", userID, suite.now).Return(nil).Once()
	var booked []domain.MoveLine
	suite.ledgerSvc.On("CreateLines", mock.Anything, "move-1", mock.Anything, userID).
		Run(func(args mock.Arguments) { booked = args.Get(2).([]domain.MoveLine) }).
		Return([]domain.MoveLine{}, nil).Once()
	suite.ledgerSvc.On("PostMoves", mock.Anything, []string{"move-1"}, userID).Return(nil).Once()
	suite.liquidationRepo.On("UpdateLiquidationsState", mock.Anything, ids, domain.LiquidationPosted, userID, suite.now).Return(nil).Once()

	_, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.Require().NoError(err)
	suite.Require().Len(booked, 2)
	suite.True(dec("110").Equal(booked[0].Credit))
	suite.Require().NotNil(booked[0].AmountSecondCurrency)
	suite.True(dec("-100").Equal(*booked[0].AmountSecondCurrency))
	suite.Equal("EUR", *booked[0].SecondCurrency)
	suite.sequenceSvc.AssertNotCalled(suite.T(), "NextNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_AlreadyPosted() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	liq.State = domain.LiquidationPosted

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()

	posted, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.Nil(posted)
	suite.requireUserError(err, apperrors.KindAlreadyPosted)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ledgerSvc.AssertNotCalled(suite.T(), "CreateMove", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_WithoutTaxLines() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, _ := suite.draftForPosting()

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{}, nil).Once()

	_, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.requireUserError(err, apperrors.KindPostWithoutTaxes)
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_NoSequenceForType() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	liq.Type = domain.OutCreditNote
	outSeq := "seq-out"
	period := &domain.Period{
		PeriodID:             "period-1",
		Name:                 "2026-03",
		LiquidationSequences: domain.LiquidationSequences{OutLiquidationSequenceID: &outSeq},
		FiscalYear:           &domain.FiscalYear{Name: "2026"},
	}

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&suite.company, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, mock.Anything, true).Return(period, nil).Once()

	_, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.requireUserError(err, apperrors.KindNoLiquidationSequence)
	suite.Contains(err.Error(), `"2026-03"`)
	suite.liquidationRepo.AssertNotCalled(suite.T(), "SetLiquidationNumber", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.liquidationRepo.AssertNotCalled(suite.T(), "UpdateLiquidationsState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestPostLiquidations_UndatedTakesToday() {
	ctx := context.Background()
	ids := []string{"liq-1"}
	liq, lines := suite.draftForPosting()
	liq.LiquidationDate = nil
	seqID := "seq-out"
	period := &domain.Period{PeriodID: "period-1", FiscalYear: &domain.FiscalYear{LiquidationSequences: domain.LiquidationSequences{OutLiquidationSequenceID: &seqID}}}
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.liquidationRepo.On("FindLiquidationsByIDsForUpdate", mock.Anything, companyID, ids).Return([]domain.Liquidation{liq}, nil).Once()
	suite.taxLineRepo.On("FindTaxLinesByLiquidationIDs", mock.Anything, ids).Return(map[string][]domain.LiquidationTax{"liq-1": lines}, nil).Once()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(&suite.company, nil).Once()
	suite.periodSvc.On("Find", mock.Anything, companyID, mock.Anything, true).Return(period, nil)
	suite.sequenceSvc.On("NextNumber", mock.Anything, seqID, today).Return("N-1", nil).Once()
	suite.liquidationRepo.On("SetLiquidationNumber", mock.Anything, "liq-1", "N-1", &today, userID, suite.now).Return(nil).Once()
	suite.accountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.Account{
		"acc-payable": {AccountID: "acc-payable"},
		"acc-ret":     {AccountID: "acc-ret"},
	}, nil).Once()
	suite.ledgerSvc.On("CreateMove", mock.Anything, mock.MatchedBy(func(m domain.Move) bool { return m.Date.Equal(today) }), userID).
		Return(&domain.Move{MoveID: "move-1"}, nil).Once()
	suite.liquidationRepo.On("SetLiquidationMove", mock.Anything, "liq-1", "move-1", userID, suite.now).Return(nil).Once()
	suite.ledgerSvc.On("CreateLines", mock.Anything, "move-1", mock.Anything, userID).Return([]domain.MoveLine{}, nil).Once()
	suite.ledgerSvc.On("PostMoves", mock.Anything, []string{"move-1"}, userID).Return(nil).Once()
	suite.liquidationRepo.On("UpdateLiquidationsState", mock.Anything, ids, domain.LiquidationPosted, userID, suite.now).Return(nil).Once()

	posted, err := suite.service.PostLiquidations(ctx, companyID, ids, userID)

	suite.Require().NoError(err)
	suite.Equal(today, *posted[0].LiquidationDate)
	suite.liquidationRepo.AssertExpectations(suite.T())
}
