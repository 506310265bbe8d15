package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiquidationType is the kind of settlement document.
type LiquidationType string

const (
	OutLiquidation LiquidationType = "out_liquidation" // purchase liquidation issued by the company
	InLiquidation  LiquidationType = "in_liquidation"
	OutCreditNote  LiquidationType = "out_credit_note"
)

// IsValid reports whether t is a known liquidation type.
func (t LiquidationType) IsValid() bool {
	switch t {
	case OutLiquidation, InLiquidation, OutCreditNote:
		return true
	}
	return false
}

// TaxDebitsOnPositive reports whether a non-negative tax amount lands on the
// debit side of its tax move line.
func (t LiquidationType) TaxDebitsOnPositive() bool {
	return t == InLiquidation || t == OutCreditNote
}

// PrincipalSign turns the balance of the liquidation account into a positive total:
// -1 when the principal line is a credit, 1 when it is a debit.
func (t LiquidationType) PrincipalSign() decimal.Decimal {
	if t.TaxDebitsOnPositive() {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// DefaultJournalType is the journal type new liquidations of this type are booked in.
func (t LiquidationType) DefaultJournalType() JournalType {
	if t == InLiquidation {
		return JournalTypeRevenue
	}
	return JournalTypeExpense
}

// LiquidationState is the workflow state of a liquidation.
type LiquidationState string

const (
	LiquidationDraft     LiquidationState = "draft"
	LiquidationValidated LiquidationState = "validated"
	LiquidationPosted    LiquidationState = "posted"
)

var liquidationTransitions = map[LiquidationState][]LiquidationState{
	LiquidationDraft:     {LiquidationValidated, LiquidationPosted},
	LiquidationValidated: {LiquidationPosted},
}

// CanTransition reports whether the workflow allows moving from s to next.
// States only move forward.
func (s LiquidationState) CanTransition(next LiquidationState) bool {
	for _, allowed := range liquidationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Liquidation is a purchase-settlement document carrying retained taxes.
type Liquidation struct {
	LiquidationID   string           `json:"liquidationID"` // Primary Key (e.g., UUID)
	CompanyID       string           `json:"companyID"`
	Type            LiquidationType  `json:"type"`
	Number          *string          `json:"number,omitempty"` // set once, at first posting
	Reference       string           `json:"reference"`
	Description     string           `json:"description"`
	State           LiquidationState `json:"state"`
	LiquidationDate *time.Time       `json:"liquidationDate,omitempty"`
	AccountingDate  *time.Time       `json:"accountingDate,omitempty"`
	PartyID         string           `json:"partyID"`
	AddressID       string           `json:"addressID"` // must belong to PartyID
	CurrencyCode    string           `json:"currencyCode"`
	JournalID       string           `json:"journalID"`
	MoveID          *string          `json:"moveID,omitempty"` // set once, at posting
	AccountID       string           `json:"accountID"`
	Comment         string           `json:"comment"`
	TaxLines        []LiquidationTax `json:"taxLines,omitempty"`
	AuditFields
}

// LiquidationAmounts are the derived totals of a liquidation.
type LiquidationAmounts struct {
	Untaxed decimal.Decimal `json:"untaxedAmount"`
	Tax     decimal.Decimal `json:"taxAmount"`
	Total   decimal.Decimal `json:"totalAmount"`
}

// RecName is the label used in user-facing messages.
func (l Liquidation) RecName() string {
	if l.Number != nil && *l.Number != "" {
		return *l.Number
	}
	return l.LiquidationID
}

// IsPosted reports whether the liquidation has been posted.
func (l Liquidation) IsPosted() bool {
	return l.State == LiquidationPosted
}

// IsNumbered reports whether a number has been assigned.
func (l Liquidation) IsNumbered() bool {
	return l.Number != nil && *l.Number != ""
}

// CurrencyDate is the rate date used to convert the liquidation's amounts.
func (l Liquidation) CurrencyDate(today time.Time) time.Time {
	if l.LiquidationDate != nil {
		return DateOnly(*l.LiquidationDate)
	}
	return DateOnly(today)
}

// PeriodDate is the date that selects the accounting period used for numbering.
// Nil means the period resolver falls back to today.
func (l Liquidation) PeriodDate() *time.Time {
	if l.AccountingDate != nil {
		return l.AccountingDate
	}
	return l.LiquidationDate
}

// IsForeign reports whether the liquidation is expressed in a currency other than companyCurrency.
func (l Liquidation) IsForeign(companyCurrency string) bool {
	return l.CurrencyCode != companyCurrency
}

// Origin identifies the liquidation on the moves it generates.
func (l Liquidation) Origin() string {
	return "liquidation," + l.LiquidationID
}

// TaxSum is the sum of the tax line amounts.
func (l Liquidation) TaxSum() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range l.TaxLines {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// PostingLines builds the lines of the move generated when posting. Each tax
// projection is booked on the opposite side of its ToMoveLine result, and a
// principal line on the liquidation account carries the negated net so the move
// balances. The principal line is omitted when the net is zero.
func (l Liquidation) PostingLines(taxProjections []MoveLine, principalAccount Account, companyCurrency string) []MoveLine {
	lines := make([]MoveLine, 0, len(taxProjections)+1)
	net := decimal.Zero
	secondNet := decimal.Zero
	for _, p := range taxProjections {
		r := p.Reversed()
		net = net.Add(r.Balance())
		if r.AmountSecondCurrency != nil {
			secondNet = secondNet.Add(*r.AmountSecondCurrency)
		}
		lines = append(lines, r)
	}
	if net.IsZero() {
		return lines
	}

	principal := NewSidedLine(l.AccountID, net.Neg())
	if l.Number != nil {
		principal.Description = *l.Number
	}
	if l.IsForeign(companyCurrency) {
		second := secondNet.Neg()
		cur := l.CurrencyCode
		principal.AmountSecondCurrency = &second
		principal.SecondCurrency = &cur
	}
	if principalAccount.PartyRequired {
		party := l.PartyID
		principal.PartyID = &party
	}
	return append([]MoveLine{principal}, lines...)
}

// LiquidationDetail is a liquidation with the values derived on read.
type LiquidationDetail struct {
	Liquidation
	Amounts        LiquidationAmounts `json:"amounts"`
	CurrencyDigits int32              `json:"currencyDigits"`
	CurrencyDate   time.Time          `json:"currencyDate"`
	PartyLang      string             `json:"partyLang"`
}
