package domain

// AccountKind classifies an account in the chart of accounts.
type AccountKind string

const (
	AccountKindReceivable AccountKind = "receivable"
	AccountKindPayable    AccountKind = "payable"
	AccountKindRevenue    AccountKind = "revenue"
	AccountKindExpense    AccountKind = "expense"
	AccountKindOther      AccountKind = "other"
	AccountKindView       AccountKind = "view" // grouping node, never carries move lines
)

// Account represents an entry of a company's chart of accounts.
type Account struct {
	AccountID     string      `json:"accountID"`     // Primary Key (e.g., UUID)
	CompanyID     string      `json:"companyID"`     // FK -> companies.company_id (NON-NULL)
	Code          string      `json:"code"`          // e.g. "2.1.03"
	Name          string      `json:"name"`          // User-defined name
	Kind          AccountKind `json:"kind"`          // receivable, payable, view, ...
	PartyRequired bool        `json:"partyRequired"` // move lines on this account must name a party
	AuditFields
}

// RecName is the label used in user-facing messages.
func (a Account) RecName() string {
	if a.Code == "" {
		return a.Name
	}
	return a.Code + " - " + a.Name
}

// CanCarryLines reports whether move lines may be booked on the account.
func (a Account) CanCarryLines() bool {
	return a.Kind != AccountKindView
}
