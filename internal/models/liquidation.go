package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Liquidation is a row of the liquidations table.
type Liquidation struct {
	LiquidationID   string     `db:"liquidation_id"`
	CompanyID       string     `db:"company_id"`
	Type            string     `db:"type"`
	Number          *string    `db:"number"` // Nullable until posting
	Reference       string     `db:"reference"`
	Description     string     `db:"description"`
	State           string     `db:"state"`
	LiquidationDate *time.Time `db:"liquidation_date"`
	AccountingDate  *time.Time `db:"accounting_date"`
	PartyID         string     `db:"party_id"`
	AddressID       string     `db:"address_id"`
	CurrencyCode    string     `db:"currency_code"`
	JournalID       string     `db:"journal_id"`
	MoveID          *string    `db:"move_id"`
	AccountID       string     `db:"account_id"`
	Comment         string     `db:"comment"`
	AuditFields
}

// LiquidationTax is a row of the liquidation_taxes table.
type LiquidationTax struct {
	LiquidationTaxID string          `db:"liquidation_tax_id"`
	LiquidationID    string          `db:"liquidation_id"`
	Description      string          `db:"description"`
	Sequence         *int32          `db:"sequence"`
	AccountID        string          `db:"account_id"`
	Base             decimal.Decimal `db:"base"`
	Amount           decimal.Decimal `db:"amount"`
	Manual           bool            `db:"manual"`
	BaseCodeID       *string         `db:"base_code_id"`
	BaseSign         decimal.Decimal `db:"base_sign"`
	TaxCodeID        *string         `db:"tax_code_id"`
	TaxSign          decimal.Decimal `db:"tax_sign"`
	TaxID            *string         `db:"tax_id"`
	Subtype          string          `db:"subtype"`
	AuditFields
}
