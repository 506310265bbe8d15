package services

import (
	"context"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
)

// LiquidationReaderSvc defines read operations for liquidations
type LiquidationReaderSvc interface {
	// GetLiquidation retrieves a liquidation with its ordered tax lines and derived values.
	GetLiquidation(ctx context.Context, companyID, liquidationID string) (*domain.LiquidationDetail, error)

	// ListLiquidations retrieves liquidations of a company, newest liquidation date first.
	ListLiquidations(ctx context.Context, companyID string, params dto.ListLiquidationsParams) (*dto.ListLiquidationsResponse, error)
}

// LiquidationAmountsSvc computes the derived totals of liquidations
type LiquidationAmountsSvc interface {
	// GetAmounts returns, per liquidation id, only the requested totals. Empty fields means all.
	GetAmounts(ctx context.Context, companyID string, liquidationIDs []string, fields []domain.AmountField) (map[string]map[domain.AmountField]decimal.Decimal, error)
}

// LiquidationWriterSvc defines write operations for liquidations
type LiquidationWriterSvc interface {
	// CreateLiquidation creates a draft liquidation, optionally with tax lines.
	CreateLiquidation(ctx context.Context, companyID string, req dto.CreateLiquidationRequest, userID string) (*domain.Liquidation, error)

	// UpdateLiquidation changes header fields of a draft liquidation.
	UpdateLiquidation(ctx context.Context, companyID, liquidationID string, req dto.UpdateLiquidationRequest, userID string) (*domain.Liquidation, error)

	// DeleteLiquidations deletes the liquidations and their tax lines; none are deleted if any is posted.
	DeleteLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) error
}

// LiquidationWorkflowSvc drives the draft -> validated -> posted workflow
type LiquidationWorkflowSvc interface {
	// ValidateLiquidations moves draft liquidations to validated.
	ValidateLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) ([]domain.Liquidation, error)

	// PostLiquidations numbers the liquidations, generates and posts their moves
	// and marks them posted, all in one transaction.
	PostLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) ([]domain.Liquidation, error)
}

// LiquidationSvcFacade combines all liquidation service interfaces
type LiquidationSvcFacade interface {
	LiquidationReaderSvc
	LiquidationAmountsSvc
	LiquidationWriterSvc
	LiquidationWorkflowSvc
}

// LiquidationTaxSvcFacade manages the tax lines of a liquidation
type LiquidationTaxSvcFacade interface {
	// AddTaxLines creates tax lines on a liquidation that is not posted.
	AddTaxLines(ctx context.Context, companyID, liquidationID string, reqs []dto.TaxLineRequest, userID string) ([]domain.LiquidationTax, error)

	// UpdateTaxLine changes a tax line and recomputes its amount.
	UpdateTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, req dto.TaxLineRequest, userID string) (*domain.LiquidationTax, error)

	// DeleteTaxLine removes a tax line from a liquidation that is not posted.
	DeleteTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, userID string) error

	// PreviewTaxLine returns the line as it would be stored, without persisting it.
	PreviewTaxLine(ctx context.Context, companyID, liquidationID string, req dto.TaxLineRequest) (*domain.LiquidationTax, error)
}
