package domain

// JournalType groups journals by the documents they receive.
type JournalType string

const (
	JournalTypeExpense JournalType = "expense"
	JournalTypeRevenue JournalType = "revenue"
	JournalTypeCash    JournalType = "cash"
	JournalTypeGeneral JournalType = "general"
)

// Journal is the book a move is recorded in.
type Journal struct {
	JournalID string      `json:"journalID"`
	CompanyID string      `json:"companyID"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      JournalType `json:"type"`
	AuditFields
}
