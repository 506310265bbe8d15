package domain

// Company owns accounts, taxes, journals, periods and liquidations.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // reference currency for the company's books
	AuditFields
}

// Party is a supplier or customer a liquidation is issued for.
type Party struct {
	PartyID string `json:"partyID"`
	Name    string `json:"name"`
	Lang    string `json:"lang"` // Nullable language code, e.g. "es"
	AuditFields
}

// Address belongs to exactly one party.
type Address struct {
	AddressID string `json:"addressID"`
	PartyID   string `json:"partyID"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Country   string `json:"country"`
	AuditFields
}

// RecName is the label used in user-facing messages.
func (a Address) RecName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Street != "" {
		return a.Street
	}
	return a.AddressID
}
