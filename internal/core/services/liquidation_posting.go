package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
)

func (s *liquidationService) PostLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) ([]domain.Liquidation, error) {
	start := time.Now()
	defer func() { s.metrics.ObservePostDuration(time.Since(start)) }()

	var posted []domain.Liquidation
	var from []domain.LiquidationState
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liqs, err := s.liquidationRepo.FindLiquidationsByIDsForUpdate(ctx, companyID, liquidationIDs)
		if err != nil {
			return err
		}
		lines, err := s.taxLineRepo.FindTaxLinesByLiquidationIDs(ctx, liquidationIDs)
		if err != nil {
			return err
		}
		for i := range liqs {
			liqs[i].TaxLines = lines[liqs[i].LiquidationID]
			if liqs[i].IsPosted() {
				return apperrors.NewUserError(apperrors.KindAlreadyPosted, map[string]any{"liquidation": liqs[i].RecName()})
			}
			if len(liqs[i].TaxLines) == 0 {
				return apperrors.NewUserError(apperrors.KindPostWithoutTaxes, map[string]any{"liquidation": liqs[i].RecName()})
			}
		}

		company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		for i := range liqs {
			from = append(from, liqs[i].State)
			if err := s.setNumber(ctx, &liqs[i], userID, now); err != nil {
				return err
			}
			if err := s.createMove(ctx, company, &liqs[i], userID, now); err != nil {
				return err
			}
		}

		if err := s.liquidationRepo.UpdateLiquidationsState(ctx, liquidationIDs, domain.LiquidationPosted, userID, now); err != nil {
			return err
		}
		for i := range liqs {
			liqs[i].State = domain.LiquidationPosted
			liqs[i].Touch(userID, now)
		}
		posted = liqs
		return nil
	})
	if err != nil {
		s.metrics.IncPostFailure(err)
		s.LogError(ctx, err, "Failed to post liquidations",
			slog.String("company_id", companyID),
			slog.Int("count", len(liquidationIDs)))
		return nil, err
	}

	s.metrics.AddPosted(len(posted))
	for _, state := range from {
		s.metrics.IncTransition(string(state), string(domain.LiquidationPosted))
	}
	s.LogInfo(ctx, "Liquidations posted",
		slog.String("company_id", companyID),
		slog.Int("count", len(posted)))
	return posted, nil
}

// setNumber assigns the next number of the period's sequence for the
// liquidation type. A liquidation keeps its number once assigned. The
// liquidation date defaults to today when numbering.
func (s *liquidationService) setNumber(ctx context.Context, liq *domain.Liquidation, userID string, now time.Time) error {
	if liq.IsNumbered() {
		return nil
	}

	period, err := s.periodSvc.Find(ctx, liq.CompanyID, liq.PeriodDate(), true)
	if err != nil {
		return err
	}
	sequenceID := period.LiquidationSequenceID(liq.Type)
	if sequenceID == nil {
		return apperrors.NewUserError(apperrors.KindNoLiquidationSequence, map[string]any{
			"liquidation": liq.RecName(),
			"period":      period.RecName(),
		})
	}

	var newDate *time.Time
	date := domain.DateOnly(now)
	if liq.LiquidationDate != nil {
		date = domain.DateOnly(*liq.LiquidationDate)
	} else {
		newDate = &date
	}

	number, err := s.sequenceSvc.NextNumber(ctx, *sequenceID, date)
	if err != nil {
		return err
	}
	if err := s.liquidationRepo.SetLiquidationNumber(ctx, liq.LiquidationID, number, newDate, userID, now); err != nil {
		return err
	}

	liq.Number = &number
	liq.LiquidationDate = &date
	s.LogDebug(ctx, "Liquidation numbered",
		slog.String("liquidation_id", liq.LiquidationID),
		slog.String("number", number))
	return nil
}

// createMove books and posts the move of a numbered liquidation and links it.
func (s *liquidationService) createMove(ctx context.Context, company *domain.Company, liq *domain.Liquidation, userID string, now time.Time) error {
	if liq.MoveID != nil {
		return nil
	}

	// The move lives in the period of its own date, whatever the accounting date.
	moveDate := liq.CurrencyDate(now)
	period, err := s.periodSvc.Find(ctx, liq.CompanyID, &moveDate, true)
	if err != nil {
		return err
	}

	accountIDs := make([]string, 0, len(liq.TaxLines)+1)
	accountIDs = append(accountIDs, liq.AccountID)
	for _, t := range liq.TaxLines {
		accountIDs = append(accountIDs, t.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return err
	}
	principal, ok := accounts[liq.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, liq.AccountID)
	}

	rateDate := liq.CurrencyDate(now)
	var projections []domain.MoveLine
	for _, t := range liq.TaxLines {
		account, ok := accounts[t.AccountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, t.AccountID)
		}
		companyAmount := t.Amount
		if liq.IsForeign(company.CurrencyCode) {
			companyAmount, err = s.currencySvc.Compute(ctx, liq.CurrencyCode, t.Amount, company.CurrencyCode, rateDate)
			if err != nil {
				return err
			}
		}
		projections = append(projections, t.ToMoveLine(*liq, account, companyAmount, company.CurrencyCode)...)
	}
	lines := liq.PostingLines(projections, principal, company.CurrencyCode)

	move, err := s.ledgerSvc.CreateMove(ctx, domain.Move{
		CompanyID: liq.CompanyID,
		PeriodID:  period.PeriodID,
		JournalID: liq.JournalID,
		Number:    domain.StringValue(liq.Number),
		Date:      moveDate,
		Origin:    liq.Origin(),
	}, userID)
	if err != nil {
		return err
	}
	if err := s.liquidationRepo.SetLiquidationMove(ctx, liq.LiquidationID, move.MoveID, userID, now); err != nil {
		return err
	}
	if _, err := s.ledgerSvc.CreateLines(ctx, move.MoveID, lines, userID); err != nil {
		return err
	}
	if err := s.ledgerSvc.PostMoves(ctx, []string{move.MoveID}, userID); err != nil {
		return err
	}

	liq.MoveID = &move.MoveID
	debit, _ := domain.Totals(lines)
	s.LogDebug(ctx, "Liquidation move posted",
		slog.String("liquidation_id", liq.LiquidationID),
		slog.String("move_id", move.MoveID),
		slog.String("amount", debit.StringFixed(2)))
	return nil
}
