package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/SscSPs/purchase_settlement_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func (s *liquidationService) GetLiquidation(ctx context.Context, companyID, liquidationID string) (*domain.LiquidationDetail, error) {
	liq, err := s.liquidationRepo.FindLiquidationByID(ctx, companyID, liquidationID)
	if err != nil {
		return nil, err
	}
	lines, err := s.taxLineRepo.FindTaxLinesByLiquidationIDs(ctx, []string{liq.LiquidationID})
	if err != nil {
		return nil, err
	}
	liq.TaxLines = lines[liq.LiquidationID]
	domain.SortTaxLines(liq.TaxLines)

	details, err := s.details(ctx, []domain.Liquidation{*liq})
	if err != nil {
		return nil, err
	}
	detail := details[0]

	party, err := s.partyRepo.FindPartyByID(ctx, liq.PartyID)
	if err != nil {
		s.LogWarn(ctx, "Party of liquidation not found", slog.String("party_id", liq.PartyID))
	} else {
		detail.PartyLang = party.Lang
	}
	return &detail, nil
}

func (s *liquidationService) ListLiquidations(ctx context.Context, companyID string, params dto.ListLiquidationsParams) (*dto.ListLiquidationsResponse, error) {
	filter := domain.LiquidationFilter{
		CompanyID: companyID,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if params.PageToken != "" {
		offset, err := pagination.DecodeOffsetToken(params.PageToken, companyID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Offset = offset
	}
	if params.State != "" {
		state := domain.LiquidationState(params.State)
		filter.State = &state
	}
	if params.Type != "" {
		t := domain.LiquidationType(params.Type)
		filter.Type = &t
	}
	if params.PartyID != "" {
		filter.PartyID = &params.PartyID
	}
	if params.Number != "" {
		filter.Number = &params.Number
	}
	for _, raw := range params.Amount {
		f, err := dto.ParseAmountFilter(raw)
		if err != nil {
			return nil, err
		}
		filter.AmountFilters = append(filter.AmountFilters, f)
	}

	liqs, err := s.liquidationRepo.ListLiquidations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list liquidations", slog.String("company_id", companyID))
		return nil, err
	}

	resp := &dto.ListLiquidationsResponse{
		Liquidations: []dto.LiquidationResponse{},
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	if len(liqs) == 0 {
		return resp, nil
	}
	if len(liqs) == filter.Limit {
		resp.NextPageToken = pagination.EncodeOffsetToken(companyID, filter.Offset+filter.Limit)
	}

	ids := liquidationIDs(liqs)
	lines, err := s.taxLineRepo.FindTaxLinesByLiquidationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range liqs {
		liqs[i].TaxLines = lines[liqs[i].LiquidationID]
	}
	details, err := s.details(ctx, liqs)
	if err != nil {
		return nil, err
	}
	for i := range details {
		resp.Liquidations = append(resp.Liquidations, dto.ToLiquidationDetailResponse(&details[i]))
	}
	return resp, nil
}

func (s *liquidationService) GetAmounts(ctx context.Context, companyID string, ids []string, fields []domain.AmountField) (map[string]map[domain.AmountField]decimal.Decimal, error) {
	if len(fields) == 0 {
		fields = domain.AllAmountFields
	}
	liqs, err := s.liquidationRepo.FindLiquidationsByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	amounts, err := s.computeAmounts(ctx, liqs)
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[domain.AmountField]decimal.Decimal, len(liqs))
	for _, liq := range liqs {
		picked := make(map[domain.AmountField]decimal.Decimal, len(fields))
		for _, f := range fields {
			picked[f] = amounts[liq.LiquidationID].Pick(f)
		}
		result[liq.LiquidationID] = picked
	}
	return result, nil
}

// details attaches amounts, currency digits and currency date to liqs.
func (s *liquidationService) details(ctx context.Context, liqs []domain.Liquidation) ([]domain.LiquidationDetail, error) {
	amounts, err := s.computeAmounts(ctx, liqs)
	if err != nil {
		return nil, err
	}
	currencies, err := s.currencies(ctx, liqs)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	details := make([]domain.LiquidationDetail, len(liqs))
	for i, liq := range liqs {
		digits := domain.DefaultCurrencyDigits
		if c, ok := currencies[liq.CurrencyCode]; ok {
			digits = c.Digits
		}
		details[i] = domain.LiquidationDetail{
			Liquidation:    liq,
			Amounts:        amounts[liq.LiquidationID],
			CurrencyDigits: digits,
			CurrencyDate:   liq.CurrencyDate(now),
		}
	}
	return details, nil
}

// computeAmounts derives the totals of liqs with two aggregate queries.
// The tax amount is the sum of the tax lines. Once posted, the total is the
// balance of the move lines on the liquidation account, signed so it is
// positive, and the untaxed amount is what remains after tax. Before posting
// the total equals the tax amount and the untaxed amount is zero.
func (s *liquidationService) computeAmounts(ctx context.Context, liqs []domain.Liquidation) (map[string]domain.LiquidationAmounts, error) {
	ids := liquidationIDs(liqs)
	taxSums, err := s.liquidationRepo.SumTaxAmounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	var movedIDs []string
	for _, liq := range liqs {
		if liq.MoveID != nil {
			movedIDs = append(movedIDs, liq.LiquidationID)
		}
	}
	moveSums := map[string]decimal.Decimal{}
	if len(movedIDs) > 0 {
		if moveSums, err = s.liquidationRepo.SumMoveAmounts(ctx, movedIDs); err != nil {
			return nil, err
		}
	}

	currencies, err := s.currencies(ctx, liqs)
	if err != nil {
		return nil, err
	}

	result := make(map[string]domain.LiquidationAmounts, len(liqs))
	for _, liq := range liqs {
		round := func(d decimal.Decimal) decimal.Decimal { return d }
		if c, ok := currencies[liq.CurrencyCode]; ok {
			round = func(d decimal.Decimal) decimal.Decimal {
				if c.NeedsRounding(d) {
					return c.Round(d)
				}
				return d
			}
		}

		tax := round(taxSums[liq.LiquidationID])
		amounts := domain.LiquidationAmounts{Untaxed: decimal.Zero, Tax: tax, Total: tax}
		if liq.MoveID != nil {
			amounts.Total = round(moveSums[liq.LiquidationID].Mul(liq.Type.PrincipalSign()))
			amounts.Untaxed = amounts.Total.Sub(tax)
		}
		result[liq.LiquidationID] = amounts
	}
	return result, nil
}

func (s *liquidationService) currencies(ctx context.Context, liqs []domain.Liquidation) (map[string]domain.Currency, error) {
	currencies := map[string]domain.Currency{}
	for _, liq := range liqs {
		if _, ok := currencies[liq.CurrencyCode]; ok || liq.CurrencyCode == "" {
			continue
		}
		c, err := s.currencySvc.GetCurrency(ctx, liq.CurrencyCode)
		if err != nil {
			return nil, err
		}
		currencies[liq.CurrencyCode] = *c
	}
	return currencies, nil
}

func liquidationIDs(liqs []domain.Liquidation) []string {
	ids := make([]string, len(liqs))
	for i, l := range liqs {
		ids[i] = l.LiquidationID
	}
	return ids
}
