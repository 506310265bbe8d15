package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRegistryRepository reads the master data liquidations refer to: companies,
// currencies, parties, accounts, taxes and journals.
type PgxRegistryRepository struct {
	BaseRepository
}

func newPgxRegistryRepository(pool *pgxpool.Pool) *PgxRegistryRepository {
	return &PgxRegistryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.CompanyRepository  = (*PgxRegistryRepository)(nil)
	_ portsrepo.CurrencyRepository = (*PgxRegistryRepository)(nil)
	_ portsrepo.PartyRepository    = (*PgxRegistryRepository)(nil)
	_ portsrepo.AccountRepository  = (*PgxRegistryRepository)(nil)
	_ portsrepo.TaxRepository      = (*PgxRegistryRepository)(nil)
	_ portsrepo.JournalRepository  = (*PgxRegistryRepository)(nil)
)

func scanOne(err error, model, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(model, id)
	}
	return apperrors.NewAppError(500, "failed to find "+model+" "+id, err)
}

func (r *PgxRegistryRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	var c domain.Company
	err := r.q(ctx).QueryRow(ctx, `
		SELECT company_id, name, currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM companies WHERE company_id = $1`, companyID).Scan(
		&c.CompanyID, &c.Name, &c.CurrencyCode, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err := scanOne(err, "company", companyID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxRegistryRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	var c domain.Currency
	err := r.q(ctx).QueryRow(ctx, `
		SELECT currency_code, symbol, name, digits, rounding, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies WHERE currency_code = $1`, code).Scan(
		&c.CurrencyCode, &c.Symbol, &c.Name, &c.Digits, &c.Rounding, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err := scanOne(err, "currency", code); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxRegistryRepository) FindLatestRate(ctx context.Context, code string, date time.Time) (*domain.CurrencyRate, error) {
	var rate domain.CurrencyRate
	err := r.q(ctx).QueryRow(ctx, `
		SELECT currency_code, date, rate
		FROM currency_rates
		WHERE currency_code = $1 AND date <= $2
		ORDER BY date DESC
		LIMIT 1`, code, domain.DateOnly(date)).Scan(&rate.CurrencyCode, &rate.Date, &rate.Rate)
	if err := scanOne(err, "rate of", code); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *PgxRegistryRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	var p domain.Party
	var lang *string
	err := r.q(ctx).QueryRow(ctx, `
		SELECT party_id, name, lang, created_at, created_by, last_updated_at, last_updated_by
		FROM parties WHERE party_id = $1`, partyID).Scan(
		&p.PartyID, &p.Name, &lang, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err := scanOne(err, "party", partyID); err != nil {
		return nil, err
	}
	p.Lang = domain.StringValue(lang)
	return &p, nil
}

func (r *PgxRegistryRepository) FindAddressByID(ctx context.Context, addressID string) (*domain.Address, error) {
	var a domain.Address
	err := r.q(ctx).QueryRow(ctx, `
		SELECT address_id, party_id, name, street, city, country, created_at, created_by, last_updated_at, last_updated_by
		FROM addresses WHERE address_id = $1`, addressID).Scan(
		&a.AddressID, &a.PartyID, &a.Name, &a.Street, &a.City, &a.Country, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err := scanOne(err, "address", addressID); err != nil {
		return nil, err
	}
	return &a, nil
}

const accountSelectQuery = `
SELECT account_id, company_id, code, name, kind, party_required, created_at, created_by, last_updated_at, last_updated_by
FROM accounts
`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	var kind string
	err := row.Scan(&a.AccountID, &a.CompanyID, &a.Code, &a.Name, &kind, &a.PartyRequired, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
	a.Kind = domain.AccountKind(kind)
	return a, err
}

func (r *PgxRegistryRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	a, err := scanAccount(r.q(ctx).QueryRow(ctx, accountSelectQuery+`WHERE account_id = $1`, accountID))
	if err := scanOne(err, "account", accountID); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxRegistryRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	ids := uniqueIDs(accountIDs)
	if len(ids) == 0 {
		return accounts, nil
	}

	rows, err := r.q(ctx).Query(ctx, accountSelectQuery+`WHERE account_id = ANY($1)`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts[a.AccountID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accounts", err)
	}
	return accounts, nil
}

const taxSelectQuery = `
SELECT tax_id, company_id, name, description, type, rate, amount,
	invoice_account_id, invoice_base_code_id, invoice_base_sign, invoice_tax_code_id, invoice_tax_sign,
	created_at, created_by, last_updated_at, last_updated_by
FROM taxes
`

func scanTax(row pgx.Row) (domain.Tax, error) {
	var t domain.Tax
	var taxType string
	err := row.Scan(&t.TaxID, &t.CompanyID, &t.Name, &t.Description, &taxType, &t.Rate, &t.Amount,
		&t.InvoiceAccountID, &t.InvoiceBaseCodeID, &t.InvoiceBaseSign, &t.InvoiceTaxCodeID, &t.InvoiceTaxSign,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	t.Type = domain.TaxType(taxType)
	return t, err
}

func (r *PgxRegistryRepository) FindTaxByID(ctx context.Context, taxID string) (*domain.Tax, error) {
	t, err := scanTax(r.q(ctx).QueryRow(ctx, taxSelectQuery+`WHERE tax_id = $1`, taxID))
	if err := scanOne(err, "tax", taxID); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxRegistryRepository) FindTaxesByIDs(ctx context.Context, taxIDs []string) (map[string]domain.Tax, error) {
	taxes := make(map[string]domain.Tax, len(taxIDs))
	ids := uniqueIDs(taxIDs)
	if len(ids) == 0 {
		return taxes, nil
	}

	rows, err := r.q(ctx).Query(ctx, taxSelectQuery+`WHERE tax_id = ANY($1)`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query taxes", err)
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax", err)
		}
		taxes[t.TaxID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating taxes", err)
	}
	return taxes, nil
}

func (r *PgxRegistryRepository) FindTaxCodesByIDs(ctx context.Context, taxCodeIDs []string) (map[string]domain.TaxCode, error) {
	codes := make(map[string]domain.TaxCode, len(taxCodeIDs))
	ids := uniqueIDs(taxCodeIDs)
	if len(ids) == 0 {
		return codes, nil
	}

	rows, err := r.q(ctx).Query(ctx, `
		SELECT tax_code_id, company_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM tax_codes WHERE tax_code_id = ANY($1)`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax codes", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.TaxCode
		if err := rows.Scan(&c.TaxCodeID, &c.CompanyID, &c.Code, &c.Name, &c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax code", err)
		}
		codes[c.TaxCodeID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax codes", err)
	}
	return codes, nil
}

const journalSelectQuery = `
SELECT journal_id, company_id, code, name, type, created_at, created_by, last_updated_at, last_updated_by
FROM journals
`

func scanJournal(row pgx.Row) (domain.Journal, error) {
	var j domain.Journal
	var journalType string
	err := row.Scan(&j.JournalID, &j.CompanyID, &j.Code, &j.Name, &journalType, &j.CreatedAt, &j.CreatedBy, &j.LastUpdatedAt, &j.LastUpdatedBy)
	j.Type = domain.JournalType(journalType)
	return j, err
}

func (r *PgxRegistryRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	j, err := scanJournal(r.q(ctx).QueryRow(ctx, journalSelectQuery+`WHERE journal_id = $1`, journalID))
	if err := scanOne(err, "journal", journalID); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PgxRegistryRepository) FindFirstJournalByType(ctx context.Context, companyID string, t domain.JournalType) (*domain.Journal, error) {
	j, err := scanJournal(r.q(ctx).QueryRow(ctx,
		journalSelectQuery+`WHERE company_id = $1 AND type = $2 ORDER BY created_at, journal_id LIMIT 1`,
		companyID, string(t)))
	if err := scanOne(err, "journal of type", string(t)); err != nil {
		return nil, err
	}
	return &j, nil
}
