package pgsql

import (
	portsrepo "github.com/SscSPs/purchase_settlement_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	registryRepo := newPgxRegistryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       newPgxTxManager(dbPool),
		LiquidationRepo: newPgxLiquidationRepository(dbPool),
		TaxLineRepo:     newPgxLiquidationTaxRepository(dbPool),
		MoveRepo:        newPgxMoveRepository(dbPool),
		PeriodRepo:      newPgxPeriodRepository(dbPool),
		SequenceRepo:    newPgxSequenceRepository(dbPool),
		CompanyRepo:     registryRepo,
		CurrencyRepo:    registryRepo,
		PartyRepo:       registryRepo,
		AccountRepo:     registryRepo,
		TaxRepo:         registryRepo,
		JournalRepo:     registryRepo,
	}
}
