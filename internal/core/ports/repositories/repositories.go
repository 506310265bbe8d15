package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	LiquidationRepo LiquidationRepositoryFacade
	TaxLineRepo     LiquidationTaxRepositoryFacade
	MoveRepo        MoveRepositoryFacade
	PeriodRepo      PeriodRepository
	SequenceRepo    SequenceRepository
	CompanyRepo     CompanyRepository
	CurrencyRepo    CurrencyRepository
	PartyRepo       PartyRepository
	AccountRepo     AccountRepository
	TaxRepo         TaxRepository
	JournalRepo     JournalRepository
}
