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
	"github.com/SscSPs/purchase_settlement_app/internal/observability"
	"github.com/google/uuid"
)

const defaultListLimit = 50

// liquidationService implements the LiquidationSvcFacade interface
type liquidationService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	liquidationRepo portsrepo.LiquidationRepositoryFacade
	taxLineRepo     portsrepo.LiquidationTaxRepositoryFacade
	companyRepo     portsrepo.CompanyRepository
	partyRepo       portsrepo.PartyRepository
	accountRepo     portsrepo.AccountRepository
	journalRepo     portsrepo.JournalRepository

	taxLineSvc  portssvc.LiquidationTaxSvcFacade
	currencySvc portssvc.CurrencySvc
	periodSvc   portssvc.PeriodSvc
	sequenceSvc portssvc.SequenceSvc
	ledgerSvc   portssvc.LedgerSvc

	clock   portssvc.Clock
	metrics *observability.SettlementMetrics
}

// LiquidationServiceOption is a functional option for configuring the liquidation service
type LiquidationServiceOption func(*liquidationService)

// WithClock overrides the clock used for "today".
func WithClock(clock portssvc.Clock) LiquidationServiceOption {
	return func(s *liquidationService) {
		s.clock = clock
	}
}

// WithMetrics records posting metrics on m.
func WithMetrics(m *observability.SettlementMetrics) LiquidationServiceOption {
	return func(s *liquidationService) {
		s.metrics = m
	}
}

// LiquidationCollaborators groups the services the liquidation workflow delegates to.
type LiquidationCollaborators struct {
	TaxLines portssvc.LiquidationTaxSvcFacade
	Currency portssvc.CurrencySvc
	Period   portssvc.PeriodSvc
	Sequence portssvc.SequenceSvc
	Ledger   portssvc.LedgerSvc
}

// NewLiquidationService creates a new LiquidationService with the provided options
func NewLiquidationService(repos portsrepo.RepositoryProvider, collaborators LiquidationCollaborators, options ...LiquidationServiceOption) portssvc.LiquidationSvcFacade {
	svc := &liquidationService{
		txManager:       repos.TxManager,
		liquidationRepo: repos.LiquidationRepo,
		taxLineRepo:     repos.TaxLineRepo,
		companyRepo:     repos.CompanyRepo,
		partyRepo:       repos.PartyRepo,
		accountRepo:     repos.AccountRepo,
		journalRepo:     repos.JournalRepo,
		taxLineSvc:      collaborators.TaxLines,
		currencySvc:     collaborators.Currency,
		periodSvc:       collaborators.Period,
		sequenceSvc:     collaborators.Sequence,
		ledgerSvc:       collaborators.Ledger,
		clock:           NewSystemClock(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LiquidationSvcFacade = (*liquidationService)(nil)

func (s *liquidationService) CreateLiquidation(ctx context.Context, companyID string, req dto.CreateLiquidationRequest, userID string) (*domain.Liquidation, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	liqType := req.Type
	if liqType == "" {
		liqType = domain.OutLiquidation
	}
	if !liqType.IsValid() {
		return nil, apperrors.NewUserError(apperrors.KindUnsupportedLiquidType, map[string]any{"type": string(liqType)})
	}

	now := s.clock.Now()
	liq := domain.Liquidation{
		LiquidationID:   uuid.NewString(),
		CompanyID:       companyID,
		Type:            liqType,
		Reference:       req.Reference,
		Description:     req.Description,
		State:           domain.LiquidationDraft,
		LiquidationDate: dateOnlyPtr(req.LiquidationDate),
		AccountingDate:  dateOnlyPtr(req.AccountingDate),
		PartyID:         req.PartyID,
		AddressID:       req.AddressID,
		CurrencyCode:    req.CurrencyCode,
		JournalID:       req.JournalID,
		AccountID:       req.AccountID,
		Comment:         req.Comment,
		AuditFields:     domain.NewAuditFields(userID, now),
	}
	if liq.CurrencyCode == "" {
		liq.CurrencyCode = company.CurrencyCode
	}
	if liq.JournalID == "" {
		journal, err := s.journalRepo.FindFirstJournalByType(ctx, companyID, liqType.DefaultJournalType())
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewUserError(apperrors.KindMissingDefaultJournal, map[string]any{"company": company.Name})
			}
			return nil, err
		}
		liq.JournalID = journal.JournalID
	}

	if err := s.validateHeader(ctx, company, liq); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.liquidationRepo.SaveLiquidation(ctx, liq); err != nil {
			return err
		}
		if len(req.TaxLines) == 0 {
			return nil
		}
		lines, err := s.taxLineSvc.AddTaxLines(ctx, companyID, liq.LiquidationID, req.TaxLines, userID)
		if err != nil {
			return err
		}
		liq.TaxLines = lines
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create liquidation", slog.String("company_id", companyID))
		return nil, err
	}

	domain.SortTaxLines(liq.TaxLines)
	s.LogInfo(ctx, "Liquidation created",
		slog.String("liquidation_id", liq.LiquidationID),
		slog.String("type", string(liq.Type)))
	return &liq, nil
}

func (s *liquidationService) UpdateLiquidation(ctx context.Context, companyID, liquidationID string, req dto.UpdateLiquidationRequest, userID string) (*domain.Liquidation, error) {
	var updated domain.Liquidation
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liqs, err := s.liquidationRepo.FindLiquidationsByIDsForUpdate(ctx, companyID, []string{liquidationID})
		if err != nil {
			return err
		}
		liq := liqs[0]
		if liq.State != domain.LiquidationDraft {
			return apperrors.NewUserError(apperrors.KindNotDraft, map[string]any{"liquidation": liq.RecName()})
		}

		applyUpdate(&liq, req)

		company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
		if err != nil {
			return err
		}
		if err := s.validateHeader(ctx, company, liq); err != nil {
			return err
		}

		liq.Touch(userID, s.clock.Now())
		if err := s.liquidationRepo.UpdateLiquidation(ctx, liq); err != nil {
			return err
		}
		lines, err := s.taxLineRepo.FindTaxLinesByLiquidationIDs(ctx, []string{liq.LiquidationID})
		if err != nil {
			return err
		}
		liq.TaxLines = lines[liq.LiquidationID]
		updated = liq
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update liquidation", slog.String("liquidation_id", liquidationID))
		return nil, err
	}
	return &updated, nil
}

func applyUpdate(liq *domain.Liquidation, req dto.UpdateLiquidationRequest) {
	if req.Reference != nil {
		liq.Reference = *req.Reference
	}
	if req.Description != nil {
		liq.Description = *req.Description
	}
	if req.LiquidationDate != nil {
		liq.LiquidationDate = dateOnlyPtr(req.LiquidationDate)
	}
	if req.AccountingDate != nil {
		liq.AccountingDate = dateOnlyPtr(req.AccountingDate)
	}
	if req.PartyID != nil {
		liq.PartyID = *req.PartyID
	}
	if req.AddressID != nil {
		liq.AddressID = *req.AddressID
	}
	if req.CurrencyCode != nil {
		liq.CurrencyCode = *req.CurrencyCode
	}
	if req.JournalID != nil {
		liq.JournalID = *req.JournalID
	}
	if req.AccountID != nil {
		liq.AccountID = *req.AccountID
	}
	if req.Comment != nil {
		liq.Comment = *req.Comment
	}
}

// validateHeader checks that the address belongs to the party and that the
// journal and principal account belong to the company.
func (s *liquidationService) validateHeader(ctx context.Context, company *domain.Company, liq domain.Liquidation) error {
	if _, err := s.currencySvc.GetCurrency(ctx, liq.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, liq.CurrencyCode)
		}
		return err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, liq.PartyID)
	if err != nil {
		return notFoundAsValidation(err, "party", liq.PartyID)
	}
	address, err := s.partyRepo.FindAddressByID(ctx, liq.AddressID)
	if err != nil {
		return notFoundAsValidation(err, "address", liq.AddressID)
	}
	if address.PartyID != party.PartyID {
		return apperrors.NewUserError(apperrors.KindInvalidAddress, map[string]any{
			"address": address.RecName(),
			"party":   party.Name,
		})
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, liq.JournalID)
	if err != nil {
		return notFoundAsValidation(err, "journal", liq.JournalID)
	}
	if journal.CompanyID != company.CompanyID {
		return apperrors.NewUserError(apperrors.KindInvalidCompany, map[string]any{
			"model":   "Journal",
			"record":  journal.Name,
			"company": company.Name,
		})
	}

	account, err := s.accountRepo.FindAccountByID(ctx, liq.AccountID)
	if err != nil {
		return notFoundAsValidation(err, "account", liq.AccountID)
	}
	if account.CompanyID != company.CompanyID {
		return apperrors.NewUserError(apperrors.KindInvalidCompany, map[string]any{
			"model":   "Account",
			"record":  account.RecName(),
			"company": company.Name,
		})
	}
	return nil
}

func (s *liquidationService) DeleteLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liqs, err := s.liquidationRepo.FindLiquidationsByIDsForUpdate(ctx, companyID, liquidationIDs)
		if err != nil {
			return err
		}
		for _, liq := range liqs {
			if liq.IsPosted() {
				return apperrors.NewUserError(apperrors.KindDeleteLiquidation, nil)
			}
		}
		return s.liquidationRepo.DeleteLiquidations(ctx, companyID, liquidationIDs)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete liquidations", slog.Int("count", len(liquidationIDs)))
		return err
	}
	s.LogInfo(ctx, "Liquidations deleted",
		slog.Int("count", len(liquidationIDs)),
		slog.String("user_id", userID))
	return nil
}

func (s *liquidationService) ValidateLiquidations(ctx context.Context, companyID string, liquidationIDs []string, userID string) ([]domain.Liquidation, error) {
	var validated []domain.Liquidation
	var from []domain.LiquidationState
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		liqs, err := s.liquidationRepo.FindLiquidationsByIDsForUpdate(ctx, companyID, liquidationIDs)
		if err != nil {
			return err
		}
		for _, liq := range liqs {
			if !liq.State.CanTransition(domain.LiquidationValidated) {
				return apperrors.NewUserError(apperrors.KindInvalidStateTransition, map[string]any{
					"liquidation": liq.RecName(),
					"from":        string(liq.State),
					"to":          string(domain.LiquidationValidated),
				})
			}
		}

		now := s.clock.Now()
		if err := s.liquidationRepo.UpdateLiquidationsState(ctx, liquidationIDs, domain.LiquidationValidated, userID, now); err != nil {
			return err
		}
		for i := range liqs {
			from = append(from, liqs[i].State)
			liqs[i].State = domain.LiquidationValidated
			liqs[i].Touch(userID, now)
		}
		validated = liqs
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to validate liquidations", slog.Int("count", len(liquidationIDs)))
		return nil, err
	}

	for _, state := range from {
		s.metrics.IncTransition(string(state), string(domain.LiquidationValidated))
	}
	return validated, nil
}
