package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository) portssvc.CurrencySvc {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvc = (*currencyService)(nil)

func (s *currencyService) GetCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency %s not found", apperrors.ErrNotFound, code)
		}
		s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		return nil, err
	}
	return currency, nil
}

// Compute converts through the company reference currency: rates express one
// reference unit in each currency, so amount * rate(to) / rate(from).
func (s *currencyService) Compute(ctx context.Context, from string, amount decimal.Decimal, to string, date time.Time) (decimal.Decimal, error) {
	target, err := s.GetCurrency(ctx, to)
	if err != nil {
		return decimal.Zero, err
	}
	if from == to {
		return target.Round(amount), nil
	}

	fromRate, err := s.rate(ctx, from, date)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := s.rate(ctx, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	return target.Round(amount.Mul(toRate).Div(fromRate)), nil
}

func (s *currencyService) rate(ctx context.Context, code string, date time.Time) (decimal.Decimal, error) {
	day := domain.DateOnly(date)
	noRate := apperrors.NewUserError(apperrors.KindNoRate, map[string]any{
		"currency": code,
		"date":     day.Format(time.DateOnly),
	})

	rate, err := s.currencyRepo.FindLatestRate(ctx, code, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, noRate
		}
		s.LogError(ctx, err, "Failed to get currency rate", slog.String("currency_code", code))
		return decimal.Zero, err
	}
	if !rate.Rate.IsPositive() {
		return decimal.Zero, noRate
	}
	return rate.Rate, nil
}
