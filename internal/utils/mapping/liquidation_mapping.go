package mapping

import (
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/SscSPs/purchase_settlement_app/internal/models"
)

// ToModelLiquidation converts a domain Liquidation to a model Liquidation
func ToModelLiquidation(d domain.Liquidation) models.Liquidation {
	return models.Liquidation{
		LiquidationID:   d.LiquidationID,
		CompanyID:       d.CompanyID,
		Type:            string(d.Type),
		Number:          d.Number,
		Reference:       d.Reference,
		Description:     d.Description,
		State:           string(d.State),
		LiquidationDate: d.LiquidationDate,
		AccountingDate:  d.AccountingDate,
		PartyID:         d.PartyID,
		AddressID:       d.AddressID,
		CurrencyCode:    d.CurrencyCode,
		JournalID:       d.JournalID,
		MoveID:          d.MoveID,
		AccountID:       d.AccountID,
		Comment:         d.Comment,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLiquidation converts a model Liquidation to a domain Liquidation
func ToDomainLiquidation(m models.Liquidation) domain.Liquidation {
	return domain.Liquidation{
		LiquidationID:   m.LiquidationID,
		CompanyID:       m.CompanyID,
		Type:            domain.LiquidationType(m.Type),
		Number:          m.Number,
		Reference:       m.Reference,
		Description:     m.Description,
		State:           domain.LiquidationState(m.State),
		LiquidationDate: m.LiquidationDate,
		AccountingDate:  m.AccountingDate,
		PartyID:         m.PartyID,
		AddressID:       m.AddressID,
		CurrencyCode:    m.CurrencyCode,
		JournalID:       m.JournalID,
		MoveID:          m.MoveID,
		AccountID:       m.AccountID,
		Comment:         m.Comment,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLiquidationSlice converts a slice of model Liquidations to domain Liquidations
func ToDomainLiquidationSlice(ms []models.Liquidation) []domain.Liquidation {
	ds := make([]domain.Liquidation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLiquidation(m)
	}
	return ds
}

// ToModelLiquidationTax converts a domain LiquidationTax to a model LiquidationTax
func ToModelLiquidationTax(d domain.LiquidationTax) models.LiquidationTax {
	var seq *int32
	if d.Sequence != nil {
		s := int32(*d.Sequence)
		seq = &s
	}
	return models.LiquidationTax{
		LiquidationTaxID: d.LiquidationTaxID,
		LiquidationID:    d.LiquidationID,
		Description:      d.Description,
		Sequence:         seq,
		AccountID:        d.AccountID,
		Base:             d.Base,
		Amount:           d.Amount,
		Manual:           d.Manual,
		BaseCodeID:       d.BaseCodeID,
		BaseSign:         d.BaseSign,
		TaxCodeID:        d.TaxCodeID,
		TaxSign:          d.TaxSign,
		TaxID:            d.TaxID,
		Subtype:          d.Subtype,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLiquidationTax converts a model LiquidationTax to a domain LiquidationTax
func ToDomainLiquidationTax(m models.LiquidationTax) domain.LiquidationTax {
	var seq *int
	if m.Sequence != nil {
		s := int(*m.Sequence)
		seq = &s
	}
	return domain.LiquidationTax{
		LiquidationTaxID: m.LiquidationTaxID,
		LiquidationID:    m.LiquidationID,
		Description:      m.Description,
		Sequence:         seq,
		AccountID:        m.AccountID,
		Base:             m.Base,
		Amount:           m.Amount,
		Manual:           m.Manual,
		BaseCodeID:       m.BaseCodeID,
		BaseSign:         m.BaseSign,
		TaxCodeID:        m.TaxCodeID,
		TaxSign:          m.TaxSign,
		TaxID:            m.TaxID,
		Subtype:          m.Subtype,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
