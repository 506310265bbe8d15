package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Move is a row of the moves table.
type Move struct {
	MoveID    string     `db:"move_id"`
	CompanyID string     `db:"company_id"`
	PeriodID  string     `db:"period_id"`
	JournalID string     `db:"journal_id"`
	Number    *string    `db:"number"`
	Date      time.Time  `db:"date"`
	Origin    string     `db:"origin"`
	State     string     `db:"state"`
	PostDate  *time.Time `db:"post_date"`
	AuditFields
}

// MoveLine is a row of the move_lines table.
type MoveLine struct {
	MoveLineID           string           `db:"move_line_id"`
	MoveID               string           `db:"move_id"`
	AccountID            string           `db:"account_id"`
	PartyID              *string          `db:"party_id"`
	Description          string           `db:"description"`
	Debit                decimal.Decimal  `db:"debit"`
	Credit               decimal.Decimal  `db:"credit"`
	AmountSecondCurrency *decimal.Decimal `db:"amount_second_currency"`
	SecondCurrency       *string          `db:"second_currency"`
	AuditFields
}

// TaxLedgerLine is a row of the move_tax_lines table.
type TaxLedgerLine struct {
	TaxLedgerLineID string          `db:"tax_ledger_line_id"`
	MoveLineID      string          `db:"move_line_id"`
	CodeID          string          `db:"code_id"`
	Amount          decimal.Decimal `db:"amount"`
	TaxID           *string         `db:"tax_id"`
}
