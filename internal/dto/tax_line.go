package dto

import (
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TaxLineRequest carries the fields of a tax line to create, update or preview.
// Nil fields take the line default, or the value copied from the tax definition
// when TaxID is set.
type TaxLineRequest struct {
	Description *string          `json:"description"`
	Sequence    *int             `json:"sequence"`
	AccountID   *string          `json:"accountID"`
	Base        *decimal.Decimal `json:"base"`
	Amount      *decimal.Decimal `json:"amount"`
	Manual      *bool            `json:"manual"`
	BaseCodeID  *string          `json:"baseCodeID"`
	BaseSign    *decimal.Decimal `json:"baseSign" binding:"omitempty,unitsign"`
	TaxCodeID   *string          `json:"taxCodeID"`
	TaxSign     *decimal.Decimal `json:"taxSign" binding:"omitempty,unitsign"`
	TaxID       *string          `json:"taxID"`
	Subtype     *string          `json:"subtype"`
}

// AddTaxLinesRequest adds one or more lines to a liquidation.
type AddTaxLinesRequest struct {
	TaxLines []TaxLineRequest `json:"taxLines" binding:"required,min=1,dive"`
}

// TaxLineResponse defines the data returned for a tax line.
type TaxLineResponse struct {
	LiquidationTaxID string          `json:"liquidationTaxID"`
	LiquidationID    string          `json:"liquidationID"`
	Description      string          `json:"description"`
	Sequence         *int            `json:"sequence,omitempty"`
	SequenceNumber   int             `json:"sequenceNumber"`
	AccountID        string          `json:"accountID"`
	Base             decimal.Decimal `json:"base"`
	Amount           decimal.Decimal `json:"amount"`
	Manual           bool            `json:"manual"`
	BaseCodeID       *string         `json:"baseCodeID,omitempty"`
	BaseSign         decimal.Decimal `json:"baseSign"`
	TaxCodeID        *string         `json:"taxCodeID,omitempty"`
	TaxSign          decimal.Decimal `json:"taxSign"`
	TaxID            *string         `json:"taxID,omitempty"`
	Subtype          string          `json:"subtype"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt,omitempty"`
}

// ToTaxLineResponse converts a domain.LiquidationTax to TaxLineResponse DTO.
func ToTaxLineResponse(t *domain.LiquidationTax, sequenceNumber int) TaxLineResponse {
	return TaxLineResponse{
		LiquidationTaxID: t.LiquidationTaxID,
		LiquidationID:    t.LiquidationID,
		Description:      t.Description,
		Sequence:         t.Sequence,
		SequenceNumber:   sequenceNumber,
		AccountID:        t.AccountID,
		Base:             t.Base,
		Amount:           t.Amount,
		Manual:           t.Manual,
		BaseCodeID:       t.BaseCodeID,
		BaseSign:         t.BaseSign,
		TaxCodeID:        t.TaxCodeID,
		TaxSign:          t.TaxSign,
		TaxID:            t.TaxID,
		Subtype:          t.Subtype,
		CreatedAt:        t.CreatedAt,
		LastUpdatedAt:    t.LastUpdatedAt,
	}
}

// ToTaxLineResponses converts ordered tax lines; SequenceNumber is the 1-based position.
func ToTaxLineResponses(lines []domain.LiquidationTax) []TaxLineResponse {
	responses := make([]TaxLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToTaxLineResponse(&lines[i], i+1)
	}
	return responses
}
