package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators teaches v to validate decimal fields by their canonical
// string form and adds the unitsign rule (a sign multiplier of 1 or -1).
func RegisterValidators(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterAlias("unitsign", "oneof=1 -1")
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// amountOperators is ordered so two-character operators match first.
var amountOperators = []domain.ComparisonOperator{
	domain.OpNotEqual, domain.OpLessEqual, domain.OpGreaterEqual,
	domain.OpEqual, domain.OpLess, domain.OpGreater,
}

// ParseAmountFilter parses "<field><op><value>", e.g. "tax_amount>=12.50".
func ParseAmountFilter(raw string) (domain.AmountFilter, error) {
	raw = strings.TrimSpace(raw)
	for _, op := range amountOperators {
		idx := strings.Index(raw, string(op))
		if idx <= 0 {
			continue
		}
		field := domain.AmountField(strings.TrimSpace(raw[:idx]))
		if !field.IsValid() {
			return domain.AmountFilter{}, fmt.Errorf("%w: unknown amount field %q", apperrors.ErrValidation, field)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(raw[idx+len(op):]))
		if err != nil {
			return domain.AmountFilter{}, fmt.Errorf("%w: invalid amount in filter %q", apperrors.ErrValidation, raw)
		}
		return domain.AmountFilter{Field: field, Operator: op, Value: value}, nil
	}
	return domain.AmountFilter{}, fmt.Errorf("%w: invalid amount filter %q", apperrors.ErrValidation, raw)
}
