package dto

import (
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLiquidationRequest defines the data needed to create a draft liquidation.
type CreateLiquidationRequest struct {
	Type            domain.LiquidationType `json:"type" binding:"omitempty,oneof=out_liquidation in_liquidation out_credit_note"` // defaults to out_liquidation
	Reference       string                 `json:"reference"`
	Description     string                 `json:"description"`
	LiquidationDate *time.Time             `json:"liquidationDate"`
	AccountingDate  *time.Time             `json:"accountingDate"`
	PartyID         string                 `json:"partyID" binding:"required"`
	AddressID       string                 `json:"addressID" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"omitempty,uppercase,len=3"` // defaults to the company currency
	JournalID       string                 `json:"journalID"`                                        // defaults to the first journal of the type's journal type
	AccountID       string                 `json:"accountID" binding:"required"`
	Comment         string                 `json:"comment"`
	TaxLines        []TaxLineRequest       `json:"taxLines" binding:"omitempty,dive"`
}

// UpdateLiquidationRequest defines the editable fields of a draft liquidation.
// Nil fields are left unchanged.
type UpdateLiquidationRequest struct {
	Reference       *string    `json:"reference"`
	Description     *string    `json:"description"`
	LiquidationDate *time.Time `json:"liquidationDate"`
	AccountingDate  *time.Time `json:"accountingDate"`
	PartyID         *string    `json:"partyID"`
	AddressID       *string    `json:"addressID"`
	CurrencyCode    *string    `json:"currencyCode" binding:"omitempty,uppercase,len=3"`
	JournalID       *string    `json:"journalID"`
	AccountID       *string    `json:"accountID"`
	Comment         *string    `json:"comment"`
}

// LiquidationIDsRequest carries the ids of a batch operation.
type LiquidationIDsRequest struct {
	LiquidationIDs []string `json:"liquidationIDs" binding:"required,min=1,dive,required"`
}

// AmountsRequest asks for a subset of derived totals. Empty Fields means all.
type AmountsRequest struct {
	LiquidationIDs []string             `json:"liquidationIDs" binding:"required,min=1,dive,required"`
	Fields         []domain.AmountField `json:"fields" binding:"omitempty,dive,oneof=untaxed_amount tax_amount total_amount"`
}

// AmountsResponse maps liquidation id to the requested totals.
type AmountsResponse struct {
	Amounts map[string]map[domain.AmountField]decimal.Decimal `json:"amounts"`
}

// ListLiquidationsParams defines query parameters for listing liquidations.
// Amount entries use the form "<field><op><value>", e.g. "total_amount>=100".
type ListLiquidationsParams struct {
	State    string     `form:"state" binding:"omitempty,oneof=draft validated posted"`
	Type     string     `form:"type" binding:"omitempty,oneof=out_liquidation in_liquidation out_credit_note"`
	PartyID  string     `form:"partyID"`
	Number   string     `form:"number"`
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Amount   []string   `form:"amount"`
	Limit    int        `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset   int        `form:"offset" binding:"omitempty,min=0"`
	// PageToken overrides Offset when set.
	PageToken string `form:"pageToken"`
}

// LiquidationResponse defines the data returned for a liquidation.
type LiquidationResponse struct {
	LiquidationID   string                 `json:"liquidationID"`
	CompanyID       string                 `json:"companyID"`
	Type            domain.LiquidationType `json:"type"`
	Number          *string                `json:"number,omitempty"`
	Reference       string                 `json:"reference"`
	Description     string                 `json:"description"`
	State           string                 `json:"state"`
	LiquidationDate *time.Time             `json:"liquidationDate,omitempty"`
	AccountingDate  *time.Time             `json:"accountingDate,omitempty"`
	PartyID         string                 `json:"partyID"`
	PartyLang       string                 `json:"partyLang,omitempty"`
	AddressID       string                 `json:"addressID"`
	CurrencyCode    string                 `json:"currencyCode"`
	CurrencyDigits  int32                  `json:"currencyDigits"`
	CurrencyDate    *time.Time             `json:"currencyDate,omitempty"`
	JournalID       string                 `json:"journalID"`
	MoveID          *string                `json:"moveID,omitempty"`
	AccountID       string                 `json:"accountID"`
	Comment         string                 `json:"comment"`
	UntaxedAmount   *decimal.Decimal       `json:"untaxedAmount,omitempty"`
	TaxAmount       *decimal.Decimal       `json:"taxAmount,omitempty"`
	TotalAmount     *decimal.Decimal       `json:"totalAmount,omitempty"`
	TaxLines        []TaxLineResponse      `json:"taxLines"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy   string                 `json:"lastUpdatedBy"`
}

// ListLiquidationsResponse wraps a page of liquidations.
type ListLiquidationsResponse struct {
	Liquidations  []LiquidationResponse `json:"liquidations"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
}

// ToLiquidationResponse converts a domain.Liquidation to LiquidationResponse DTO.
func ToLiquidationResponse(l *domain.Liquidation) LiquidationResponse {
	resp := LiquidationResponse{
		LiquidationID:   l.LiquidationID,
		CompanyID:       l.CompanyID,
		Type:            l.Type,
		Number:          l.Number,
		Reference:       l.Reference,
		Description:     l.Description,
		State:           string(l.State),
		LiquidationDate: l.LiquidationDate,
		AccountingDate:  l.AccountingDate,
		PartyID:         l.PartyID,
		AddressID:       l.AddressID,
		CurrencyCode:    l.CurrencyCode,
		CurrencyDigits:  domain.DefaultCurrencyDigits,
		JournalID:       l.JournalID,
		MoveID:          l.MoveID,
		AccountID:       l.AccountID,
		Comment:         l.Comment,
		CreatedAt:       l.CreatedAt,
		CreatedBy:       l.CreatedBy,
		LastUpdatedAt:   l.LastUpdatedAt,
		LastUpdatedBy:   l.LastUpdatedBy,
	}
	resp.TaxLines = ToTaxLineResponses(l.TaxLines)
	return resp
}

// ToLiquidationDetailResponse converts a domain.LiquidationDetail, including derived values.
func ToLiquidationDetailResponse(d *domain.LiquidationDetail) LiquidationResponse {
	resp := ToLiquidationResponse(&d.Liquidation)
	untaxed, tax, total := d.Amounts.Untaxed, d.Amounts.Tax, d.Amounts.Total
	resp.UntaxedAmount = &untaxed
	resp.TaxAmount = &tax
	resp.TotalAmount = &total
	resp.CurrencyDigits = d.CurrencyDigits
	currencyDate := d.CurrencyDate
	resp.CurrencyDate = &currencyDate
	resp.PartyLang = d.PartyLang
	return resp
}

// ToLiquidationResponses converts a slice of domain.Liquidation to []LiquidationResponse.
func ToLiquidationResponses(ls []domain.Liquidation) []LiquidationResponse {
	responses := make([]LiquidationResponse, len(ls))
	for i := range ls {
		responses[i] = ToLiquidationResponse(&ls[i])
	}
	return responses
}
