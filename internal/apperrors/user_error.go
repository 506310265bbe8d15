package apperrors

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies a user-facing error in the message catalogue.
type Kind string

const (
	KindDeleteLiquidation      Kind = "delete_liquidation"
	KindNoLiquidationSequence  Kind = "no_liquidation_sequence"
	KindModifyTax              Kind = "modify"
	KindCreateTax              Kind = "create"
	KindInvalidAccountCompany  Kind = "invalid_account_company"
	KindInvalidBaseCodeCompany Kind = "invalid_base_code_company"
	KindInvalidTaxCodeCompany  Kind = "invalid_tax_code_company"
	KindInvalidAccountKind     Kind = "invalid_account_kind"
	KindInvalidSign            Kind = "invalid_sign"
	KindInvalidAddress         Kind = "invalid_liquidation_address"
	KindInvalidCompany         Kind = "invalid_company"
	KindAlreadyPosted          Kind = "already_posted"
	KindPostWithoutTaxes       Kind = "post_without_taxes"
	KindNotDraft               Kind = "not_draft"
	KindInvalidStateTransition Kind = "invalid_state_transition"
	KindNoPeriodDate           Kind = "no_period_date"
	KindNoRate                 Kind = "no_rate"
	KindUnbalancedMove         Kind = "unbalanced_move"
	KindEmptyMove              Kind = "empty_move"
	KindMovePosted             Kind = "move_posted"
	KindUnsupportedLiquidType  Kind = "unsupported_liquidation_type"
	KindMissingDefaultJournal  Kind = "no_default_journal"
)

// conflictKinds are state-guard errors; every other kind is a validation or configuration error.
var conflictKinds = map[Kind]bool{
	KindDeleteLiquidation:      true,
	KindModifyTax:              true,
	KindCreateTax:              true,
	KindAlreadyPosted:          true,
	KindNotDraft:               true,
	KindInvalidStateTransition: true,
	KindMovePosted:             true,
}

// UserError is a named, parameterised error meant to be shown to the user.
// It is never retried: the user corrects the data and resubmits.
type UserError struct {
	Kind   Kind
	Params map[string]any
}

// NewUserError builds a UserError for kind with the given named parameters.
func NewUserError(kind Kind, params map[string]any) *UserError {
	if params == nil {
		params = map[string]any{}
	}
	return &UserError{Kind: kind, Params: params}
}

func (e *UserError) Error() string {
	return e.Message(DefaultLanguage)
}

// Message renders the catalogue template for lang.
func (e *UserError) Message(lang string) string {
	tmpl, ok := lookupTemplate(lang, e.Kind)
	if !ok {
		return e.fallback()
	}
	return render(tmpl, e.Params)
}

// Is lets errors.Is classify user errors against the sentinel taxonomy.
func (e *UserError) Is(target error) bool {
	if conflictKinds[e.Kind] {
		return target == ErrConflict
	}
	return target == ErrValidation
}

func (e *UserError) fallback() string {
	if len(e.Params) == 0 {
		return string(e.Kind)
	}
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Kind, strings.Join(parts, ", "))
}

// render substitutes %(name)s placeholders.
func render(tmpl string, params map[string]any) string {
	if len(params) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "%("+k+")s", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
