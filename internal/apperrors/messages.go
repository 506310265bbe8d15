package apperrors

import (
	"errors"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no catalogue matches the caller's language.
const DefaultLanguage = "en"

var catalogue = map[string]map[Kind]string{
	"en": {
		KindDeleteLiquidation:      "You can not delete a liquidation that is posted!",
		KindNoLiquidationSequence:  `There is no liquidation sequence for liquidation "%(liquidation)s" on the period/fiscal year "%(period)s".`,
		KindModifyTax:              `You can not modify tax "%(tax)s" from liquidation "%(liquidation)s" because it is posted or paid.`,
		KindCreateTax:              `You can not add line "%(line)s" to liquidation "%(liquidation)s" because it is posted, paid or canceled.`,
		KindInvalidAccountCompany:  `You can not create liquidation "%(liquidation)s" on company "%(liquidation_company)s" using account "%(account)s" from company "%(account_company)s".`,
		KindInvalidBaseCodeCompany: `You can not create liquidation "%(liquidation)s" on company "%(liquidation_company)s" using base tax code "%(base_code)s" from company "%(base_code_company)s".`,
		KindInvalidTaxCodeCompany:  `You can not create liquidation "%(liquidation)s" on company "%(liquidation_company)s" using tax code "%(tax_code)s" from company "%(tax_code_company)s".`,
		KindInvalidAccountKind:     `Account "%(account)s" is a view account and can not be used on tax line "%(line)s".`,
		KindInvalidSign:            `The %(field)s of tax line "%(line)s" must be 1 or -1.`,
		KindInvalidAddress:         `Address "%(address)s" does not belong to party "%(party)s".`,
		KindInvalidCompany:         `%(model)s "%(record)s" does not belong to company "%(company)s".`,
		KindAlreadyPosted:          `Liquidation "%(liquidation)s" is already posted.`,
		KindPostWithoutTaxes:       `Liquidation "%(liquidation)s" can not be posted without tax lines.`,
		KindNotDraft:               `Liquidation "%(liquidation)s" can only be changed while it is in draft.`,
		KindInvalidStateTransition: `Liquidation "%(liquidation)s" can not go from "%(from)s" to "%(to)s".`,
		KindNoPeriodDate:           `No period defined for date "%(date)s" on company "%(company)s".`,
		KindNoRate:                 `No rate found for currency "%(currency)s" on "%(date)s".`,
		KindUnbalancedMove:         `Move "%(move)s" is not balanced (debit %(debit)s, credit %(credit)s).`,
		KindEmptyMove:              `Move "%(move)s" has no lines and can not be posted.`,
		KindMovePosted:             `Move "%(move)s" is already posted.`,
		KindUnsupportedLiquidType:  `Liquidation type "%(type)s" is not supported.`,
		KindMissingDefaultJournal:  `Company "%(company)s" has no expense journal to use as default.`,
	},
	"es": {
		KindDeleteLiquidation:      "¡No puede eliminar una liquidación que está contabilizada!",
		KindNoLiquidationSequence:  `No existe secuencia de liquidación para la liquidación "%(liquidation)s" en el período/ejercicio fiscal "%(period)s".`,
		KindModifyTax:              `No puede modificar el impuesto "%(tax)s" de la liquidación "%(liquidation)s" porque está contabilizada o pagada.`,
		KindCreateTax:              `No puede añadir la línea "%(line)s" a la liquidación "%(liquidation)s" porque está contabilizada, pagada o cancelada.`,
		KindInvalidAccountCompany:  `No puede crear la liquidación "%(liquidation)s" en la empresa "%(liquidation_company)s" usando la cuenta "%(account)s" de la empresa "%(account_company)s".`,
		KindInvalidBaseCodeCompany: `No puede crear la liquidación "%(liquidation)s" en la empresa "%(liquidation_company)s" usando el código de base "%(base_code)s" de la empresa "%(base_code_company)s".`,
		KindInvalidTaxCodeCompany:  `No puede crear la liquidación "%(liquidation)s" en la empresa "%(liquidation_company)s" usando el código de impuesto "%(tax_code)s" de la empresa "%(tax_code_company)s".`,
		KindInvalidAccountKind:     `La cuenta "%(account)s" es de tipo vista y no se puede usar en la línea de impuesto "%(line)s".`,
		KindInvalidSign:            `El campo %(field)s de la línea de impuesto "%(line)s" debe ser 1 o -1.`,
		KindInvalidAddress:         `La dirección "%(address)s" no pertenece al tercero "%(party)s".`,
		KindInvalidCompany:         `%(model)s "%(record)s" no pertenece a la empresa "%(company)s".`,
		KindAlreadyPosted:          `La liquidación "%(liquidation)s" ya está contabilizada.`,
		KindPostWithoutTaxes:       `La liquidación "%(liquidation)s" no se puede contabilizar sin líneas de impuesto.`,
		KindNotDraft:               `La liquidación "%(liquidation)s" solo se puede modificar en estado borrador.`,
		KindInvalidStateTransition: `La liquidación "%(liquidation)s" no puede pasar de "%(from)s" a "%(to)s".`,
		KindNoPeriodDate:           `No hay período definido para la fecha "%(date)s" en la empresa "%(company)s".`,
		KindNoRate:                 `No se encontró tasa para la moneda "%(currency)s" en "%(date)s".`,
		KindUnbalancedMove:         `El asiento "%(move)s" no está cuadrado (debe %(debit)s, haber %(credit)s).`,
		KindEmptyMove:              `El asiento "%(move)s" no tiene líneas y no se puede contabilizar.`,
		KindMovePosted:             `El asiento "%(move)s" ya está contabilizado.`,
		KindUnsupportedLiquidType:  `El tipo de liquidación "%(type)s" no está soportado.`,
		KindMissingDefaultJournal:  `La empresa "%(company)s" no tiene un diario de gastos para usar por defecto.`,
	},
}

var supportedTags = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supportedTags)

// MatchLanguage picks the catalogue language for an Accept-Language header value.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLanguage
	}
	base, _ := supportedTags[idx].Base()
	return base.String()
}

// lookupTemplate finds the template for kind in lang, falling back to the default language.
func lookupTemplate(lang string, kind Kind) (string, bool) {
	if msgs, ok := catalogue[normalizeLanguage(lang)]; ok {
		if tmpl, ok := msgs[kind]; ok {
			return tmpl, true
		}
	}
	tmpl, ok := catalogue[DefaultLanguage][kind]
	return tmpl, ok
}

func normalizeLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLanguage
	}
	base, _ := tag.Base()
	return base.String()
}

// Localize renders err for lang when it carries a UserError, otherwise returns err.Error().
func Localize(err error, lang string) string {
	if err == nil {
		return ""
	}
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message(lang)
	}
	return err.Error()
}
