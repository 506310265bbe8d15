package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
)

// CompanyRepository reads companies
type CompanyRepository interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CurrencyRepository reads currencies and their rates
type CurrencyRepository interface {
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// FindLatestRate returns the most recent rate of code effective on or before date.
	FindLatestRate(ctx context.Context, code string, date time.Time) (*domain.CurrencyRate, error)
}

// PartyRepository reads parties and their addresses
type PartyRepository interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	FindAddressByID(ctx context.Context, addressID string) (*domain.Address, error)
}

// AccountRepository reads the chart of accounts
type AccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs returns the accounts found, keyed by id. Missing ids are absent.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// TaxRepository reads tax definitions and tax codes
type TaxRepository interface {
	FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error)
	FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.Tax, error)
	FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error)
}

// JournalRepository reads journals
type JournalRepository interface {
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindFirstJournalByType returns the oldest journal of company with type t.
	FindFirstJournalByType(ctx context.Context, companyID string, t domain.JournalType) (*domain.Journal, error)
}
