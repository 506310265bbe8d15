package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Transaction manager ---

// MockTxManager runs the unit of work inline.
type MockTxManager struct{}

func (MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Clock ---

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// --- Mock LiquidationRepository ---
type MockLiquidationRepository struct {
	mock.Mock
}

func (m *MockLiquidationRepository) FindLiquidationByID(ctx context.Context, companyID, liquidationID string) (*domain.Liquidation, error) {
	args := m.Called(ctx, companyID, liquidationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Liquidation), args.Error(1)
}

func (m *MockLiquidationRepository) FindLiquidationsByIDs(ctx context.Context, companyID string, ids []string) ([]domain.Liquidation, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Liquidation), args.Error(1)
}

func (m *MockLiquidationRepository) FindLiquidationsByIDsForUpdate(ctx context.Context, companyID string, ids []string) ([]domain.Liquidation, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Liquidation), args.Error(1)
}

func (m *MockLiquidationRepository) ListLiquidations(ctx context.Context, filter domain.LiquidationFilter) ([]domain.Liquidation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Liquidation), args.Error(1)
}

func (m *MockLiquidationRepository) SaveLiquidation(ctx context.Context, liquidation domain.Liquidation) error {
	args := m.Called(ctx, liquidation)
	return args.Error(0)
}

func (m *MockLiquidationRepository) UpdateLiquidation(ctx context.Context, liquidation domain.Liquidation) error {
	args := m.Called(ctx, liquidation)
	return args.Error(0)
}

func (m *MockLiquidationRepository) UpdateLiquidationsState(ctx context.Context, ids []string, state domain.LiquidationState, userID string, now time.Time) error {
	args := m.Called(ctx, ids, state, userID, now)
	return args.Error(0)
}

func (m *MockLiquidationRepository) SetLiquidationNumber(ctx context.Context, liquidationID, number string, liquidationDate *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, liquidationID, number, liquidationDate, userID, now)
	return args.Error(0)
}

func (m *MockLiquidationRepository) SetLiquidationMove(ctx context.Context, liquidationID, moveID string, userID string, now time.Time) error {
	args := m.Called(ctx, liquidationID, moveID, userID, now)
	return args.Error(0)
}

func (m *MockLiquidationRepository) DeleteLiquidations(ctx context.Context, companyID string, ids []string) error {
	args := m.Called(ctx, companyID, ids)
	return args.Error(0)
}

func (m *MockLiquidationRepository) SumTaxAmounts(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLiquidationRepository) SumMoveAmounts(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock LiquidationTaxRepository ---
type MockTaxLineRepository struct {
	mock.Mock
}

func (m *MockTaxLineRepository) FindTaxLineByID(ctx context.Context, taxLineID string) (*domain.LiquidationTax, error) {
	args := m.Called(ctx, taxLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidationTax), args.Error(1)
}

func (m *MockTaxLineRepository) FindTaxLinesByLiquidationIDs(ctx context.Context, ids []string) (map[string][]domain.LiquidationTax, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.LiquidationTax), args.Error(1)
}

func (m *MockTaxLineRepository) SaveTaxLines(ctx context.Context, lines []domain.LiquidationTax) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockTaxLineRepository) UpdateTaxLine(ctx context.Context, line domain.LiquidationTax) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockTaxLineRepository) DeleteTaxLine(ctx context.Context, taxLineID string) error {
	args := m.Called(ctx, taxLineID)
	return args.Error(0)
}

// --- Mock MoveRepository ---
type MockMoveRepository struct {
	mock.Mock
}

func (m *MockMoveRepository) FindMoveByID(ctx context.Context, moveID string) (*domain.Move, error) {
	args := m.Called(ctx, moveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Move), args.Error(1)
}

func (m *MockMoveRepository) FindMovesByIDsForUpdate(ctx context.Context, moveIDs []string) ([]domain.Move, error) {
	args := m.Called(ctx, moveIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Move), args.Error(1)
}

func (m *MockMoveRepository) SaveMove(ctx context.Context, move domain.Move) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

func (m *MockMoveRepository) SaveMoveLines(ctx context.Context, lines []domain.MoveLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockMoveRepository) MarkMovesPosted(ctx context.Context, moveIDs []string, postDate time.Time, userID string) error {
	args := m.Called(ctx, moveIDs, postDate, userID)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByDate(ctx context.Context, companyID string, date time.Time, onlyOpen bool) (*domain.Period, error) {
	args := m.Called(ctx, companyID, date, onlyOpen)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextNumber(ctx context.Context, sequenceID string) (*domain.StrictSequence, int64, error) {
	args := m.Called(ctx, sequenceID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.StrictSequence), args.Get(1).(int64), args.Error(2)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindLatestRate(ctx context.Context, code string, date time.Time) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, code, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindAddressByID(ctx context.Context, addressID string) (*domain.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock TaxRepository ---
type MockTaxRepository struct {
	mock.Mock
}

func (m *MockTaxRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.Tax, error) {
	args := m.Called(ctx, taxIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Tax), args.Error(1)
}

func (m *MockTaxRepository) FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error) {
	args := m.Called(ctx, taxCodeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.TaxCode), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindFirstJournalByType(ctx context.Context, companyID string, t domain.JournalType) (*domain.Journal, error) {
	args := m.Called(ctx, companyID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// --- Mock collaborator services ---

type MockCurrencySvc struct {
	mock.Mock
}

func (m *MockCurrencySvc) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencySvc) Compute(ctx context.Context, from string, amount decimal.Decimal, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, amount, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockPeriodSvc struct {
	mock.Mock
}

func (m *MockPeriodSvc) Find(ctx context.Context, companyID string, date *time.Time, testState bool) (*domain.Period, error) {
	args := m.Called(ctx, companyID, date, testState)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

type MockSequenceSvc struct {
	mock.Mock
}

func (m *MockSequenceSvc) NextNumber(ctx context.Context, sequenceID string, date time.Time) (string, error) {
	args := m.Called(ctx, sequenceID, date)
	return args.String(0), args.Error(1)
}

type MockLedgerSvc struct {
	mock.Mock
}

func (m *MockLedgerSvc) CreateMove(ctx context.Context, move domain.Move, userID string) (*domain.Move, error) {
	args := m.Called(ctx, move, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Move), args.Error(1)
}

func (m *MockLedgerSvc) CreateLines(ctx context.Context, moveID string, lines []domain.MoveLine, userID string) ([]domain.MoveLine, error) {
	args := m.Called(ctx, moveID, lines, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveLine), args.Error(1)
}

func (m *MockLedgerSvc) PostMoves(ctx context.Context, moveIDs []string, userID string) error {
	args := m.Called(ctx, moveIDs, userID)
	return args.Error(0)
}

type MockTaxSvc struct {
	mock.Mock
	computedBases []decimal.Decimal
}

func (m *MockTaxSvc) GetTax(ctx context.Context, taxID string) (*domain.Tax, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tax), args.Error(1)
}

// Compute delegates to the domain computation and records the bases it was asked for.
func (m *MockTaxSvc) Compute(_ context.Context, taxes []domain.Tax, base, quantity decimal.Decimal) []domain.TaxResult {
	m.computedBases = append(m.computedBases, base)
	return domain.ComputeTaxes(taxes, base, quantity)
}

type MockLiquidationTaxSvc struct {
	mock.Mock
}

func (m *MockLiquidationTaxSvc) AddTaxLines(ctx context.Context, companyID, liquidationID string, reqs []dto.TaxLineRequest, userID string) ([]domain.LiquidationTax, error) {
	args := m.Called(ctx, companyID, liquidationID, reqs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LiquidationTax), args.Error(1)
}

func (m *MockLiquidationTaxSvc) UpdateTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, req dto.TaxLineRequest, userID string) (*domain.LiquidationTax, error) {
	args := m.Called(ctx, companyID, liquidationID, taxLineID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidationTax), args.Error(1)
}

func (m *MockLiquidationTaxSvc) DeleteTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, userID string) error {
	args := m.Called(ctx, companyID, liquidationID, taxLineID, userID)
	return args.Error(0)
}

func (m *MockLiquidationTaxSvc) PreviewTaxLine(ctx context.Context, companyID, liquidationID string, req dto.TaxLineRequest) (*domain.LiquidationTax, error) {
	args := m.Called(ctx, companyID, liquidationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidationTax), args.Error(1)
}

// --- Helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
