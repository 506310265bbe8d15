package services

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvc provides currency precision and conversion
type CurrencySvc interface {
	GetCurrency(ctx context.Context, code string) (*domain.Currency, error)

	// Compute converts amount from one currency to another at the rates effective on date,
	// rounded with the target currency.
	Compute(ctx context.Context, from string, amount decimal.Decimal, to string, date time.Time) (decimal.Decimal, error)
}

// TaxSvc evaluates tax definitions
type TaxSvc interface {
	GetTax(ctx context.Context, taxID string) (*domain.Tax, error)

	// Compute returns one result per tax for base*quantity.
	Compute(ctx context.Context, taxes []domain.Tax, base, quantity decimal.Decimal) []domain.TaxResult
}

// PeriodSvc resolves accounting periods
type PeriodSvc interface {
	// Find returns the period of company containing date (today when nil).
	// With testState only open periods qualify.
	Find(ctx context.Context, companyID string, date *time.Time, testState bool) (*domain.Period, error)
}

// SequenceSvc hands out gapless numbers
type SequenceSvc interface {
	// NextNumber allocates and formats the next number of sequenceID for date.
	// It must run inside the caller's transaction.
	NextNumber(ctx context.Context, sequenceID string, date time.Time) (string, error)
}

// LedgerSvc creates and posts general ledger moves
type LedgerSvc interface {
	// CreateMove stores a draft move header and returns it with its id.
	CreateMove(ctx context.Context, move domain.Move, userID string) (*domain.Move, error)

	// CreateLines stores lines on a draft move.
	CreateLines(ctx context.Context, moveID string, lines []domain.MoveLine, userID string) ([]domain.MoveLine, error)

	// PostMoves locks moves against edits. Empty or unbalanced moves are refused.
	PostMoves(ctx context.Context, moveIDs []string, userID string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
