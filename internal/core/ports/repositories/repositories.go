package repositories

// RepositoryContainer bundles all repository facades for injection into the
// service layer.
type RepositoryContainer struct {
	Account   AccountRepositoryFacade
	Journal   JournalRepositoryFacade
	Balance   BalanceRepositoryFacade
	Rate      RateRepositoryFacade
	Reporting ReportingRepositoryFacade
}
