package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
)

type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepository
	clock      portssvc.Clock
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepository, clock portssvc.Clock) portssvc.PeriodSvc {
	if clock == nil {
		clock = NewSystemClock()
	}
	return &periodService{periodRepo: periodRepo, clock: clock}
}

var _ portssvc.PeriodSvc = (*periodService)(nil)

func (s *periodService) Find(ctx context.Context, companyID string, date *time.Time, testState bool) (*domain.Period, error) {
	day := domain.DateOnly(s.clock.Now())
	if date != nil {
		day = domain.DateOnly(*date)
	}

	period, err := s.periodRepo.FindPeriodByDate(ctx, companyID, day, testState)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUserError(apperrors.KindNoPeriodDate, map[string]any{
				"date":    day.Format(time.DateOnly),
				"company": companyID,
			})
		}
		s.LogError(ctx, err, "Failed to find period",
			slog.String("company_id", companyID),
			slog.Time("date", day))
		return nil, err
	}
	return period, nil
}
