package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveState is the ledger state of a move.
type MoveState string

const (
	MoveDraft  MoveState = "draft"
	MovePosted MoveState = "posted" // locked against edits
)

// Move is a double-entry journal entry: a header plus lines whose debits equal credits.
type Move struct {
	MoveID    string     `json:"moveID"`
	CompanyID string     `json:"companyID"`
	PeriodID  string     `json:"periodID"`
	JournalID string     `json:"journalID"`
	Number    string     `json:"number"` // Nullable, document number copied from the origin
	Date      time.Time  `json:"date"`
	Origin    string     `json:"origin"` // "<model>,<id>" of the document that generated the move
	State     MoveState  `json:"state"`
	PostDate  *time.Time `json:"postDate,omitempty"`
	Lines     []MoveLine `json:"lines,omitempty"`
	AuditFields
}

// MoveLine is one debit or credit of a move.
type MoveLine struct {
	MoveLineID           string           `json:"moveLineID"`
	MoveID               string           `json:"moveID"`
	AccountID            string           `json:"accountID"`
	PartyID              *string          `json:"partyID,omitempty"`
	Description          string           `json:"description"`
	Debit                decimal.Decimal  `json:"debit"`
	Credit               decimal.Decimal  `json:"credit"`
	AmountSecondCurrency *decimal.Decimal `json:"amountSecondCurrency,omitempty"` // signed like Debit-Credit
	SecondCurrency       *string          `json:"secondCurrency,omitempty"`
	TaxLines             []TaxLedgerLine  `json:"taxLines,omitempty"`
	AuditFields
}

// TaxLedgerLine records the amount a move line contributes to a tax code.
type TaxLedgerLine struct {
	TaxLedgerLineID string          `json:"taxLedgerLineID"`
	MoveLineID      string          `json:"moveLineID"`
	CodeID          string          `json:"codeID"`
	Amount          decimal.Decimal `json:"amount"`
	TaxID           *string         `json:"taxID,omitempty"`
}

// Balance returns Debit - Credit.
func (l MoveLine) Balance() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Reversed returns a copy of the line booked on the opposite side.
// The secondary amount changes sign with it; tax ledger amounts keep the sign
// given by the tax line's tax_sign.
func (l MoveLine) Reversed() MoveLine {
	r := l
	r.Debit, r.Credit = l.Credit, l.Debit
	if l.AmountSecondCurrency != nil {
		neg := l.AmountSecondCurrency.Neg()
		r.AmountSecondCurrency = &neg
	}
	return r
}

// NewSidedLine places a signed amount on the debit side when positive and on
// the credit side when negative.
func NewSidedLine(accountID string, signed decimal.Decimal) MoveLine {
	line := MoveLine{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.Zero}
	if signed.IsNegative() {
		line.Credit = signed.Neg()
	} else {
		line.Debit = signed
	}
	return line
}

// Totals sums the debit and credit columns of lines.
func Totals(lines []MoveLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether lines debit and credit the same total.
func IsBalanced(lines []MoveLine) bool {
	debit, credit := Totals(lines)
	return debit.Equal(credit)
}
