package domain

import "time"

// PeriodState tells whether moves may still be booked in a period.
type PeriodState string

const (
	PeriodOpen   PeriodState = "open"
	PeriodClosed PeriodState = "closed"
)

// LiquidationSequences holds the strict sequence used to number each liquidation type.
type LiquidationSequences struct {
	OutLiquidationSequenceID *string `json:"outLiquidationSequenceID,omitempty"`
	InLiquidationSequenceID  *string `json:"inLiquidationSequenceID,omitempty"`
	OutCreditNoteSequenceID  *string `json:"outCreditNoteSequenceID,omitempty"`
}

// For returns the sequence configured for t, or nil.
func (s LiquidationSequences) For(t LiquidationType) *string {
	switch t {
	case OutLiquidation:
		return s.OutLiquidationSequenceID
	case InLiquidation:
		return s.InLiquidationSequenceID
	case OutCreditNote:
		return s.OutCreditNoteSequenceID
	}
	return nil
}

// FiscalYear groups periods and provides fallback numbering sequences.
type FiscalYear struct {
	FiscalYearID string      `json:"fiscalYearID"`
	CompanyID    string      `json:"companyID"`
	Name         string      `json:"name"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	State        PeriodState `json:"state"`
	LiquidationSequences
	AuditFields
}

// Period is an accounting period within a fiscal year.
type Period struct {
	PeriodID     string      `json:"periodID"`
	CompanyID    string      `json:"companyID"`
	FiscalYearID string      `json:"fiscalYearID"`
	Name         string      `json:"name"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"` // inclusive
	State        PeriodState `json:"state"`
	LiquidationSequences
	FiscalYear *FiscalYear `json:"fiscalYear,omitempty"` // loaded with the period when resolving sequences
	AuditFields
}

// Contains reports whether date falls inside the period, bounds inclusive.
func (p Period) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// IsOpen reports whether the period still accepts moves.
func (p Period) IsOpen() bool {
	return p.State == PeriodOpen
}

// LiquidationSequenceID returns the period's own sequence for t, falling back to the fiscal year's.
func (p Period) LiquidationSequenceID(t LiquidationType) *string {
	if id := p.LiquidationSequences.For(t); id != nil {
		return id
	}
	if p.FiscalYear != nil {
		return p.FiscalYear.LiquidationSequences.For(t)
	}
	return nil
}

// RecName is the label used in user-facing messages.
func (p Period) RecName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PeriodID
}
