package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// liquidationTaxService manages the retained tax lines of liquidations.
type liquidationTaxService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	liquidationRepo portsrepo.LiquidationRepositoryFacade
	taxLineRepo     portsrepo.LiquidationTaxRepositoryFacade
	companyRepo     portsrepo.CompanyRepository
	taxSvc          portssvc.TaxSvc
	currencySvc     portssvc.CurrencySvc
	rules           taxLineRules
	clock           portssvc.Clock
}

// NewLiquidationTaxService creates a new LiquidationTaxService.
func NewLiquidationTaxService(repos portsrepo.RepositoryProvider, taxSvc portssvc.TaxSvc, currencySvc portssvc.CurrencySvc, clock portssvc.Clock) portssvc.LiquidationTaxSvcFacade {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &liquidationTaxService{
		txManager:       repos.TxManager,
		liquidationRepo: repos.LiquidationRepo,
		taxLineRepo:     repos.TaxLineRepo,
		companyRepo:     repos.CompanyRepo,
		taxSvc:          taxSvc,
		currencySvc:     currencySvc,
		rules: taxLineRules{
			companyRepo: repos.CompanyRepo,
			accountRepo: repos.AccountRepo,
			taxRepo:     repos.TaxRepo,
		},
		clock: clock,
	}
}

var _ portssvc.LiquidationTaxSvcFacade = (*liquidationTaxService)(nil)

func (s *liquidationTaxService) AddTaxLines(ctx context.Context, companyID, liquidationID string, reqs []dto.TaxLineRequest, userID string) ([]domain.LiquidationTax, error) {
	var created []domain.LiquidationTax
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liq, err := s.lockLiquidation(ctx, companyID, liquidationID)
		if err != nil {
			return err
		}

		if liq.IsPosted() {
			var description string
			if len(reqs) > 0 && reqs[0].Description != nil {
				description = *reqs[0].Description
			}
			return apperrors.NewUserError(apperrors.KindCreateTax, map[string]any{
				"line":        description,
				"liquidation": liq.RecName(),
			})
		}

		now := s.clock.Now()
		lines := make([]domain.LiquidationTax, 0, len(reqs))
		for _, req := range reqs {
			line, err := s.buildLine(ctx, *liq, domain.NewLiquidationTax(liq.LiquidationID), req)
			if err != nil {
				return err
			}
			line.LiquidationTaxID = uuid.NewString()
			line.AuditFields = domain.NewAuditFields(userID, now)
			lines = append(lines, line)
		}

		if err := s.rules.check(ctx, *liq, lines); err != nil {
			return err
		}
		if err := s.taxLineRepo.SaveTaxLines(ctx, lines); err != nil {
			return err
		}
		created = lines
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to add tax lines", slog.String("liquidation_id", liquidationID))
		return nil, err
	}

	s.LogInfo(ctx, "Tax lines added",
		slog.String("liquidation_id", liquidationID),
		slog.Int("count", len(created)))
	return created, nil
}

func (s *liquidationTaxService) UpdateTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, req dto.TaxLineRequest, userID string) (*domain.LiquidationTax, error) {
	var updated domain.LiquidationTax
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liq, existing, err := s.lockTaxLine(ctx, companyID, liquidationID, taxLineID)
		if err != nil {
			return err
		}
		if liq.IsPosted() {
			return apperrors.NewUserError(apperrors.KindModifyTax, map[string]any{
				"tax":         existing.Description,
				"liquidation": liq.RecName(),
			})
		}

		line, err := s.buildLine(ctx, *liq, *existing, req)
		if err != nil {
			return err
		}
		if err := s.rules.check(ctx, *liq, []domain.LiquidationTax{line}); err != nil {
			return err
		}
		line.Touch(userID, s.clock.Now())
		if err := s.taxLineRepo.UpdateTaxLine(ctx, line); err != nil {
			return err
		}
		updated = line
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update tax line",
			slog.String("liquidation_id", liquidationID),
			slog.String("tax_line_id", taxLineID))
		return nil, err
	}
	return &updated, nil
}

func (s *liquidationTaxService) DeleteTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string, userID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liq, existing, err := s.lockTaxLine(ctx, companyID, liquidationID, taxLineID)
		if err != nil {
			return err
		}
		if liq.IsPosted() {
			return apperrors.NewUserError(apperrors.KindModifyTax, map[string]any{
				"tax":         existing.Description,
				"liquidation": liq.RecName(),
			})
		}
		return s.taxLineRepo.DeleteTaxLine(ctx, taxLineID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete tax line", slog.String("tax_line_id", taxLineID))
		return err
	}
	s.LogInfo(ctx, "Tax line deleted",
		slog.String("tax_line_id", taxLineID),
		slog.String("user_id", userID))
	return nil
}

func (s *liquidationTaxService) PreviewTaxLine(ctx context.Context, companyID, liquidationID string, req dto.TaxLineRequest) (*domain.LiquidationTax, error) {
	liq, err := s.liquidationRepo.FindLiquidationByID(ctx, companyID, liquidationID)
	if err != nil {
		return nil, err
	}
	line, err := s.buildLine(ctx, *liq, domain.NewLiquidationTax(liq.LiquidationID), req)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *liquidationTaxService) lockLiquidation(ctx context.Context, companyID, liquidationID string) (*domain.Liquidation, error) {
	liqs, err := s.liquidationRepo.FindLiquidationsByIDsForUpdate(ctx, companyID, []string{liquidationID})
	if err != nil {
		return nil, err
	}
	if len(liqs) != 1 {
		return nil, fmt.Errorf("%w: liquidation %s", apperrors.ErrNotFound, liquidationID)
	}
	return &liqs[0], nil
}

func (s *liquidationTaxService) lockTaxLine(ctx context.Context, companyID, liquidationID, taxLineID string) (*domain.Liquidation, *domain.LiquidationTax, error) {
	liq, err := s.lockLiquidation(ctx, companyID, liquidationID)
	if err != nil {
		return nil, nil, err
	}
	line, err := s.taxLineRepo.FindTaxLineByID(ctx, taxLineID)
	if err != nil {
		return nil, nil, err
	}
	if line.LiquidationID != liq.LiquidationID {
		return nil, nil, fmt.Errorf("%w: tax line %s on liquidation %s", apperrors.ErrNotFound, taxLineID, liquidationID)
	}
	return liq, line, nil
}

// buildLine applies req on top of line. A newly selected tax copies its booking
// configuration first, then explicit request fields win, then the amount is
// recomputed.
func (s *liquidationTaxService) buildLine(ctx context.Context, liq domain.Liquidation, line domain.LiquidationTax, req dto.TaxLineRequest) (domain.LiquidationTax, error) {
	var tax *domain.Tax
	if req.TaxID != nil {
		if *req.TaxID == "" {
			line.TaxID = nil
		} else {
			t, err := s.loadTax(ctx, liq, *req.TaxID)
			if err != nil {
				return line, err
			}
			tax = t
			line.ApplyTax(*tax, liq.Type)
		}
	} else if line.TaxID != nil {
		t, err := s.loadTax(ctx, liq, *line.TaxID)
		if err != nil {
			return line, err
		}
		tax = t
	}

	if req.Description != nil {
		line.Description = *req.Description
	}
	if req.Sequence != nil {
		line.Sequence = req.Sequence
	}
	if req.AccountID != nil {
		line.AccountID = *req.AccountID
	}
	if req.Base != nil {
		line.Base = *req.Base
	}
	if req.Amount != nil {
		line.Amount = *req.Amount
	}
	if req.Manual != nil {
		line.Manual = *req.Manual
	}
	if req.BaseCodeID != nil {
		line.BaseCodeID = emptyToNil(*req.BaseCodeID)
	}
	if req.BaseSign != nil {
		line.BaseSign = *req.BaseSign
	}
	if req.TaxCodeID != nil {
		line.TaxCodeID = emptyToNil(*req.TaxCodeID)
	}
	if req.TaxSign != nil {
		line.TaxSign = *req.TaxSign
	}
	if req.Subtype != nil {
		line.Subtype = *req.Subtype
	}

	currency, err := s.companyCurrency(ctx, liq.CompanyID)
	if err != nil {
		return line, err
	}
	var results []domain.TaxResult
	if tax != nil && line.Manual {
		results = s.taxSvc.Compute(ctx, []domain.Tax{*tax}, line.Base, decimal.NewFromInt(1))
	}
	line.Amount = line.ComputeAmount(results, tax, *currency)
	return line, nil
}

// companyCurrency returns the currency tax line amounts are rounded with.
func (s *liquidationTaxService) companyCurrency(ctx context.Context, companyID string) (*domain.Currency, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.currencySvc.GetCurrency(ctx, company.CurrencyCode)
}

func (s *liquidationTaxService) loadTax(ctx context.Context, liq domain.Liquidation, taxID string) (*domain.Tax, error) {
	tax, err := s.taxSvc.GetTax(ctx, taxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: tax %s does not exist", apperrors.ErrValidation, taxID)
		}
		return nil, err
	}
	if tax.CompanyID != liq.CompanyID {
		return nil, apperrors.NewUserError(apperrors.KindInvalidCompany, map[string]any{
			"model":   "Tax",
			"record":  tax.Name,
			"company": liq.CompanyID,
		})
	}
	return tax, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
