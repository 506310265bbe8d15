package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// taxLineRules checks the stored-state constraints of tax lines against their liquidation.
type taxLineRules struct {
	companyRepo portsrepo.CompanyRepository
	accountRepo portsrepo.AccountRepository
	taxRepo     portsrepo.TaxRepository
}

var (
	signPositive = decimal.NewFromInt(1)
	signNegative = decimal.NewFromInt(-1)
)

func validSign(d decimal.Decimal) bool {
	return d.Equal(signPositive) || d.Equal(signNegative)
}

// check returns the first rule violated by lines. The account, base code and
// tax code of every line must belong to the liquidation's company, the account
// must not be a view account and both signs must be 1 or -1.
func (r taxLineRules) check(ctx context.Context, liq domain.Liquidation, lines []domain.LiquidationTax) error {
	accountIDs := make([]string, 0, len(lines))
	codeIDs := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		if line.AccountID == "" {
			return fmt.Errorf("%w: tax line %q has no account", apperrors.ErrValidation, line.Description)
		}
		accountIDs = append(accountIDs, line.AccountID)
		if line.BaseCodeID != nil {
			codeIDs = append(codeIDs, *line.BaseCodeID)
		}
		if line.TaxCodeID != nil {
			codeIDs = append(codeIDs, *line.TaxCodeID)
		}
	}

	accounts, err := r.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return err
	}
	codes := map[string]domain.TaxCode{}
	if len(codeIDs) > 0 {
		if codes, err = r.taxRepo.FindTaxCodesByIDs(ctx, codeIDs); err != nil {
			return err
		}
	}

	names := companyNames{repo: r.companyRepo, cache: map[string]string{}}
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, line.AccountID)
		}
		if account.CompanyID != liq.CompanyID {
			return apperrors.NewUserError(apperrors.KindInvalidAccountCompany, map[string]any{
				"liquidation":         liq.RecName(),
				"liquidation_company": names.get(ctx, liq.CompanyID),
				"account":             account.RecName(),
				"account_company":     names.get(ctx, account.CompanyID),
			})
		}
		if !account.CanCarryLines() {
			return apperrors.NewUserError(apperrors.KindInvalidAccountKind, map[string]any{
				"account": account.RecName(),
				"line":    line.Description,
			})
		}

		if line.BaseCodeID != nil {
			code, ok := codes[*line.BaseCodeID]
			if !ok {
				return fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, *line.BaseCodeID)
			}
			if code.CompanyID != liq.CompanyID {
				return apperrors.NewUserError(apperrors.KindInvalidBaseCodeCompany, map[string]any{
					"liquidation":         liq.RecName(),
					"liquidation_company": names.get(ctx, liq.CompanyID),
					"base_code":           code.RecName(),
					"base_code_company":   names.get(ctx, code.CompanyID),
				})
			}
		}
		if line.TaxCodeID != nil {
			code, ok := codes[*line.TaxCodeID]
			if !ok {
				return fmt.Errorf("%w: tax code %s", apperrors.ErrNotFound, *line.TaxCodeID)
			}
			if code.CompanyID != liq.CompanyID {
				return apperrors.NewUserError(apperrors.KindInvalidTaxCodeCompany, map[string]any{
					"liquidation":         liq.RecName(),
					"liquidation_company": names.get(ctx, liq.CompanyID),
					"tax_code":            code.RecName(),
					"tax_code_company":    names.get(ctx, code.CompanyID),
				})
			}
		}

		if !validSign(line.BaseSign) {
			return apperrors.NewUserError(apperrors.KindInvalidSign, map[string]any{"field": "base_sign", "line": line.Description})
		}
		if !validSign(line.TaxSign) {
			return apperrors.NewUserError(apperrors.KindInvalidSign, map[string]any{"field": "tax_sign", "line": line.Description})
		}
	}
	return nil
}

// companyNames resolves company names for messages, falling back to the id.
type companyNames struct {
	repo  portsrepo.CompanyRepository
	cache map[string]string
}

func (c companyNames) get(ctx context.Context, companyID string) string {
	if name, ok := c.cache[companyID]; ok {
		return name
	}
	name := companyID
	if c.repo != nil {
		if company, err := c.repo.FindCompanyByID(ctx, companyID); err == nil && company.Name != "" {
			name = company.Name
		}
	}
	c.cache[companyID] = name
	return name
}
