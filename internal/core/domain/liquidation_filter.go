package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountField names one of the derived liquidation totals.
type AmountField string

const (
	UntaxedAmount AmountField = "untaxed_amount"
	TaxAmount     AmountField = "tax_amount"
	TotalAmount   AmountField = "total_amount"
)

// AllAmountFields lists every derived total.
var AllAmountFields = []AmountField{UntaxedAmount, TaxAmount, TotalAmount}

// IsValid reports whether f names a derived total.
func (f AmountField) IsValid() bool {
	switch f {
	case UntaxedAmount, TaxAmount, TotalAmount:
		return true
	}
	return false
}

// Pick returns the value of field from amounts.
func (a LiquidationAmounts) Pick(field AmountField) decimal.Decimal {
	switch field {
	case UntaxedAmount:
		return a.Untaxed
	case TaxAmount:
		return a.Tax
	default:
		return a.Total
	}
}

// ComparisonOperator is a filter operator usable on derived totals.
type ComparisonOperator string

const (
	OpEqual        ComparisonOperator = "="
	OpNotEqual     ComparisonOperator = "!="
	OpLess         ComparisonOperator = "<"
	OpLessEqual    ComparisonOperator = "<="
	OpGreater      ComparisonOperator = ">"
	OpGreaterEqual ComparisonOperator = ">="
)

// IsValid reports whether op is supported.
func (op ComparisonOperator) IsValid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// AmountFilter restricts a listing by a derived total.
type AmountFilter struct {
	Field    AmountField
	Operator ComparisonOperator
	Value    decimal.Decimal
}

// LiquidationFilter selects liquidations of one company.
type LiquidationFilter struct {
	CompanyID     string
	State         *LiquidationState
	Type          *LiquidationType
	PartyID       *string
	Number        *string // substring match
	DateFrom      *time.Time
	DateTo        *time.Time
	AmountFilters []AmountFilter
	Limit         int
	Offset        int
}
