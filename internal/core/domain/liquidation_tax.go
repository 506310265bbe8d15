package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LiquidationTax is one retained tax line of a liquidation.
type LiquidationTax struct {
	LiquidationTaxID string          `json:"liquidationTaxID"`
	LiquidationID    string          `json:"liquidationID"` // cascade-deleted with the liquidation
	Description      string          `json:"description"`
	Sequence         *int            `json:"sequence,omitempty"` // ordering key, nulls last
	AccountID        string          `json:"accountID"`
	Base             decimal.Decimal `json:"base"`
	Amount           decimal.Decimal `json:"amount"`
	Manual           bool            `json:"manual"`
	BaseCodeID       *string         `json:"baseCodeID,omitempty"`
	BaseSign         decimal.Decimal `json:"baseSign"`
	TaxCodeID        *string         `json:"taxCodeID,omitempty"`
	TaxSign          decimal.Decimal `json:"taxSign"`
	TaxID            *string         `json:"taxID,omitempty"`
	Subtype          string          `json:"subtype"` // free-text retention type tag
	AuditFields
}

// NewLiquidationTax returns a tax line with the documented defaults.
func NewLiquidationTax(liquidationID string) LiquidationTax {
	return LiquidationTax{
		LiquidationID: liquidationID,
		Base:          decimal.Zero,
		Amount:        decimal.Zero,
		Manual:        true,
		BaseSign:      decimal.NewFromInt(1),
		TaxSign:       decimal.NewFromInt(1),
	}
}

// ApplyTax copies the booking configuration of tax onto the line.
func (t *LiquidationTax) ApplyTax(tax Tax, liquidationType LiquidationType) {
	id := tax.TaxID
	t.TaxID = &id
	t.Description = tax.Description
	if t.Description == "" {
		t.Description = tax.Name
	}
	if liquidationType == OutLiquidation || liquidationType == InLiquidation {
		t.BaseCodeID = tax.InvoiceBaseCodeID
		t.BaseSign = tax.InvoiceBaseSign
		t.TaxCodeID = tax.InvoiceTaxCodeID
		t.TaxSign = tax.InvoiceTaxSign
		t.AccountID = tax.InvoiceAccountID
	}
}

// ComputeAmount returns the line amount rounded with currency, the company
// currency. When the line is manual and tax is the linked definition, the amount
// is the entry of results (the computation of tax over Base with quantity 1)
// matching tax and Base; otherwise the stored amount is returned.
func (t LiquidationTax) ComputeAmount(results []TaxResult, tax *Tax, currency Currency) decimal.Decimal {
	if tax != nil && t.Manual {
		for _, r := range results {
			if r.Tax.TaxID == tax.TaxID && r.Base.Equal(t.Base) {
				return currency.Round(r.Amount)
			}
		}
	}
	return currency.Round(t.Amount)
}

// ToMoveLine projects the line onto the ledger. companyAmount is Amount expressed
// in the company currency; it equals Amount when the liquidation is not foreign.
// A zero amount, or one that converts to zero, produces no line.
func (t LiquidationTax) ToMoveLine(liq Liquidation, account Account, companyAmount decimal.Decimal, companyCurrency string) []MoveLine {
	if t.Amount.IsZero() || companyAmount.IsZero() {
		return nil
	}

	line := MoveLine{
		AccountID:   t.AccountID,
		Description: t.Description,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	var second *decimal.Decimal
	if liq.IsForeign(companyCurrency) {
		amt := t.Amount
		second = &amt
		cur := liq.CurrencyCode
		line.SecondCurrency = &cur
	}

	nonNegative := !companyAmount.IsNegative()
	if liq.Type.TaxDebitsOnPositive() {
		if nonNegative {
			line.Debit = companyAmount
		} else {
			line.Credit = companyAmount.Neg()
			second = negated(second)
		}
	} else {
		if nonNegative {
			line.Credit = companyAmount
			second = negated(second)
		} else {
			line.Debit = companyAmount.Neg()
		}
	}
	line.AmountSecondCurrency = second

	if account.PartyRequired {
		party := liq.PartyID
		line.PartyID = &party
	}
	if t.TaxCodeID != nil {
		line.TaxLines = []TaxLedgerLine{{
			CodeID: *t.TaxCodeID,
			Amount: companyAmount.Mul(t.TaxSign),
			TaxID:  t.TaxID,
		}}
	}
	return []MoveLine{line}
}

func negated(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	n := d.Neg()
	return &n
}

// SortTaxLines orders lines by Sequence ascending with unsequenced lines last.
// Lines with equal keys keep their relative order.
func SortTaxLines(lines []LiquidationTax) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].Sequence, lines[j].Sequence
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

// SequenceNumber returns the 1-based position of taxLineID within ordered lines, or 0.
func SequenceNumber(lines []LiquidationTax, taxLineID string) int {
	for i, l := range lines {
		if l.LiquidationTaxID == taxLineID {
			return i + 1
		}
	}
	return 0
}
