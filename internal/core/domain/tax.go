package domain

import "github.com/shopspring/decimal"

// TaxType selects how a tax amount is derived from its base.
type TaxType string

const (
	TaxTypePercentage TaxType = "percentage"
	TaxTypeFixed      TaxType = "fixed"
)

// TaxCode is a tax-report box that accumulates base or tax amounts.
type TaxCode struct {
	TaxCodeID string `json:"taxCodeID"`
	CompanyID string `json:"companyID"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	AuditFields
}

// RecName is the label used in user-facing messages.
func (c TaxCode) RecName() string {
	if c.Code == "" {
		return c.Name
	}
	return c.Code + " - " + c.Name
}

// Tax is a tax or retention rate definition.
type Tax struct {
	TaxID       string          `json:"taxID"`
	CompanyID   string          `json:"companyID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        TaxType         `json:"type"`
	Rate        decimal.Decimal `json:"rate"`   // used by percentage taxes, 0.12 for 12%
	Amount      decimal.Decimal `json:"amount"` // used by fixed taxes, per unit

	InvoiceAccountID  string          `json:"invoiceAccountID"`
	InvoiceBaseCodeID *string         `json:"invoiceBaseCodeID,omitempty"`
	InvoiceBaseSign   decimal.Decimal `json:"invoiceBaseSign"`
	InvoiceTaxCodeID  *string         `json:"invoiceTaxCodeID,omitempty"`
	InvoiceTaxSign    decimal.Decimal `json:"invoiceTaxSign"`
	AuditFields
}

// TaxResult is one entry produced by ComputeTaxes.
type TaxResult struct {
	Tax    Tax
	Base   decimal.Decimal
	Amount decimal.Decimal
}

// ComputeTaxes evaluates each tax against base*quantity. Amounts are not rounded;
// callers round with the currency they book in.
func ComputeTaxes(taxes []Tax, base, quantity decimal.Decimal) []TaxResult {
	results := make([]TaxResult, 0, len(taxes))
	lineBase := base.Mul(quantity)
	for _, tax := range taxes {
		var amount decimal.Decimal
		switch tax.Type {
		case TaxTypeFixed:
			amount = tax.Amount.Mul(quantity)
		default:
			amount = lineBase.Mul(tax.Rate)
		}
		results = append(results, TaxResult{Tax: tax, Base: lineBase, Amount: amount})
	}
	return results
}
