package mapping

import (
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/SscSPs/purchase_settlement_app/internal/models"
)

// ToModelMove converts a domain Move header to a model Move
func ToModelMove(d domain.Move) models.Move {
	var number *string
	if d.Number != "" {
		number = &d.Number
	}
	return models.Move{
		MoveID:      d.MoveID,
		CompanyID:   d.CompanyID,
		PeriodID:    d.PeriodID,
		JournalID:   d.JournalID,
		Number:      number,
		Date:        d.Date,
		Origin:      d.Origin,
		State:       string(d.State),
		PostDate:    d.PostDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMove converts a model Move to a domain Move without lines
func ToDomainMove(m models.Move) domain.Move {
	return domain.Move{
		MoveID:      m.MoveID,
		CompanyID:   m.CompanyID,
		PeriodID:    m.PeriodID,
		JournalID:   m.JournalID,
		Number:      domain.StringValue(m.Number),
		Date:        m.Date,
		Origin:      m.Origin,
		State:       domain.MoveState(m.State),
		PostDate:    m.PostDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMoveLine converts a domain MoveLine to a model MoveLine and its tax ledger rows
func ToModelMoveLine(d domain.MoveLine) (models.MoveLine, []models.TaxLedgerLine) {
	taxLines := make([]models.TaxLedgerLine, len(d.TaxLines))
	for i, t := range d.TaxLines {
		taxLines[i] = models.TaxLedgerLine{
			TaxLedgerLineID: t.TaxLedgerLineID,
			MoveLineID:      d.MoveLineID,
			CodeID:          t.CodeID,
			Amount:          t.Amount,
			TaxID:           t.TaxID,
		}
	}
	return models.MoveLine{
		MoveLineID:           d.MoveLineID,
		MoveID:               d.MoveID,
		AccountID:            d.AccountID,
		PartyID:              d.PartyID,
		Description:          d.Description,
		Debit:                d.Debit,
		Credit:               d.Credit,
		AmountSecondCurrency: d.AmountSecondCurrency,
		SecondCurrency:       d.SecondCurrency,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}, taxLines
}

// ToDomainMoveLine converts a model MoveLine to a domain MoveLine
func ToDomainMoveLine(m models.MoveLine) domain.MoveLine {
	return domain.MoveLine{
		MoveLineID:           m.MoveLineID,
		MoveID:               m.MoveID,
		AccountID:            m.AccountID,
		PartyID:              m.PartyID,
		Description:          m.Description,
		Debit:                m.Debit,
		Credit:               m.Credit,
		AmountSecondCurrency: m.AmountSecondCurrency,
		SecondCurrency:       m.SecondCurrency,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxLedgerLine converts a model TaxLedgerLine to a domain TaxLedgerLine
func ToDomainTaxLedgerLine(m models.TaxLedgerLine) domain.TaxLedgerLine {
	return domain.TaxLedgerLine{
		TaxLedgerLineID: m.TaxLedgerLineID,
		MoveLineID:      m.MoveLineID,
		CodeID:          m.CodeID,
		Amount:          m.Amount,
		TaxID:           m.TaxID,
	}
}
