package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type taxService struct {
	BaseService
	taxRepo portsrepo.TaxRepository
}

// NewTaxService creates a new TaxService.
func NewTaxService(taxRepo portsrepo.TaxRepository) portssvc.TaxSvc {
	return &taxService{taxRepo: taxRepo}
}

var _ portssvc.TaxSvc = (*taxService)(nil)

func (s *taxService) GetTax(ctx context.Context, taxID string) (*domain.Tax, error) {
	tax, err := s.taxRepo.FindTaxByID(ctx, taxID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: tax %s not found", apperrors.ErrNotFound, taxID)
		}
		return nil, err
	}
	return tax, nil
}

func (s *taxService) Compute(_ context.Context, taxes []domain.Tax, base, quantity decimal.Decimal) []domain.TaxResult {
	return domain.ComputeTaxes(taxes, base, quantity)
}
