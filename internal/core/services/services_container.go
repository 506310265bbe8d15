package services

import (
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/observability"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, metrics *observability.SettlementMetrics) *portssvc.ServiceContainer {
	clock := NewSystemClock()
	container := &portssvc.ServiceContainer{}

	// Collaborators first since the liquidation workflow depends on them
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Tax = NewTaxService(repos.TaxRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, clock)
	container.Sequence = NewSequenceService(repos.SequenceRepo)
	container.Ledger = NewLedgerService(repos.MoveRepo, clock)

	container.LiquidationTax = NewLiquidationTaxService(repos, container.Tax, container.Currency, clock)
	container.Liquidation = NewLiquidationService(repos, LiquidationCollaborators{
		TaxLines: container.LiquidationTax,
		Currency: container.Currency,
		Period:   container.Period,
		Sequence: container.Sequence,
		Ledger:   container.Ledger,
	}, WithClock(clock), WithMetrics(metrics))

	return container
}
