package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyDigits is reported when a document has no currency yet.
const DefaultCurrencyDigits int32 = 2

// Currency represents a supported currency and its rounding rule.
type Currency struct {
	CurrencyCode string          `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string          `json:"symbol"`       // e.g., "$"
	Name         string          `json:"name"`         // e.g., "US Dollar"
	Digits       int32           `json:"digits"`       // display/storage precision
	Rounding     decimal.Decimal `json:"rounding"`     // smallest representable step, e.g. 0.01 or 0.05
	AuditFields
}

// Round applies the currency's rounding rule: banker's rounding to a multiple
// of Rounding, then to Digits places.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	if c.Rounding.IsPositive() {
		amount = amount.Div(c.Rounding).RoundBank(0).Mul(c.Rounding)
	}
	return amount.RoundBank(c.Digits)
}

// IsZero reports whether amount rounds to zero in this currency.
func (c Currency) IsZero(amount decimal.Decimal) bool {
	return c.Round(amount).IsZero()
}

// NeedsRounding reports whether amount carries more precision than the currency allows.
// Aggregates computed outside exact decimal arithmetic show up this way.
func (c Currency) NeedsRounding(amount decimal.Decimal) bool {
	return amount.Exponent() < -c.Digits
}

// CurrencyRate is the value of one unit of company reference currency expressed
// in CurrencyCode, effective from Date.
type CurrencyRate struct {
	CurrencyCode string          `json:"currencyCode"`
	Date         time.Time       `json:"date"`
	Rate         decimal.Decimal `json:"rate"`
}
