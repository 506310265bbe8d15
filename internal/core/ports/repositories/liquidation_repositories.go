package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LiquidationReader defines read operations for liquidation headers
type LiquidationReader interface {
	// FindLiquidationByID retrieves a liquidation header of a company.
	FindLiquidationByID(ctx context.Context, companyID, liquidationID string) (*domain.Liquidation, error)

	// FindLiquidationsByIDs returns the requested headers without locking them.
	// It returns ErrNotFound if any id is missing from the company.
	FindLiquidationsByIDs(ctx context.Context, companyID string, liquidationIDs []string) ([]domain.Liquidation, error)

	// FindLiquidationsByIDsForUpdate locks and returns the requested headers.
	// It returns ErrNotFound if any id is missing from the company.
	FindLiquidationsByIDsForUpdate(ctx context.Context, companyID string, liquidationIDs []string) ([]domain.Liquidation, error)

	// ListLiquidations returns headers matching filter ordered by liquidation_date DESC.
	// Amount filters are evaluated in SQL.
	ListLiquidations(ctx context.Context, filter domain.LiquidationFilter) ([]domain.Liquidation, error)
}

// LiquidationWriter defines write operations for liquidation headers
type LiquidationWriter interface {
	SaveLiquidation(ctx context.Context, liquidation domain.Liquidation) error

	// UpdateLiquidation updates the editable header fields.
	UpdateLiquidation(ctx context.Context, liquidation domain.Liquidation) error

	// UpdateLiquidationsState sets state on every liquidation in ids.
	UpdateLiquidationsState(ctx context.Context, liquidationIDs []string, state domain.LiquidationState, userID string, now time.Time) error

	// SetLiquidationNumber stores the number and, when not nil, the liquidation date.
	// It only succeeds while the number is unset.
	SetLiquidationNumber(ctx context.Context, liquidationID, number string, liquidationDate *time.Time, userID string, now time.Time) error

	// SetLiquidationMove links the generated move. It only succeeds while no move is linked.
	SetLiquidationMove(ctx context.Context, liquidationID, moveID string, userID string, now time.Time) error

	// DeleteLiquidations removes headers and, by cascade, their tax lines.
	DeleteLiquidations(ctx context.Context, companyID string, liquidationIDs []string) error
}

// LiquidationAmountReader runs the aggregate queries behind the derived totals
type LiquidationAmountReader interface {
	// SumTaxAmounts sums tax line amounts per liquidation. Liquidations without lines are absent.
	SumTaxAmounts(ctx context.Context, liquidationIDs []string) (map[string]decimal.Decimal, error)

	// SumMoveAmounts sums, per liquidation with a move, the signed balance of the move
	// lines booked on the liquidation account, in the liquidation currency when a
	// line carries it as second currency.
	SumMoveAmounts(ctx context.Context, liquidationIDs []string) (map[string]decimal.Decimal, error)
}

// LiquidationRepositoryFacade combines all liquidation header repository interfaces
type LiquidationRepositoryFacade interface {
	LiquidationReader
	LiquidationWriter
	LiquidationAmountReader
}

// LiquidationTaxReader defines read operations for tax lines
type LiquidationTaxReader interface {
	FindTaxLineByID(ctx context.Context, taxLineID string) (*domain.LiquidationTax, error)

	// FindTaxLinesByLiquidationIDs returns tax lines grouped by liquidation, each
	// group ordered by sequence with nulls last.
	FindTaxLinesByLiquidationIDs(ctx context.Context, liquidationIDs []string) (map[string][]domain.LiquidationTax, error)
}

// LiquidationTaxWriter defines write operations for tax lines
type LiquidationTaxWriter interface {
	SaveTaxLines(ctx context.Context, lines []domain.LiquidationTax) error
	UpdateTaxLine(ctx context.Context, line domain.LiquidationTax) error
	DeleteTaxLine(ctx context.Context, taxLineID string) error
}

// LiquidationTaxRepositoryFacade combines all tax line repository interfaces
type LiquidationTaxRepositoryFacade interface {
	LiquidationTaxReader
	LiquidationTaxWriter
}
