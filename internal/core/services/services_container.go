package services

import (
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	portssvc "github.com/hawwa-platform/ledgercore/internal/core/ports/services"
	"github.com/hawwa-platform/ledgercore/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryContainer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Catalog and rates have no service dependencies; wire them first.
	container.Catalog = NewCatalogService(repos.Account)
	container.Rates = NewRatesService(repos.Rate)

	container.Journal = NewJournalService(repos.Journal, repos.Account)
	container.Balance = NewBalanceService(repos.Account, repos.Balance)

	postingAccounts := DefaultPostingAccounts()
	if cfg != nil {
		if cfg.CashAccountCode != "" {
			postingAccounts.CashCode = cfg.CashAccountCode
		}
		if cfg.RevenueAccountCode != "" {
			postingAccounts.RevenueCode = cfg.RevenueAccountCode
		}
		if cfg.ExpenseAccountCode != "" {
			postingAccounts.ExpenseCode = cfg.ExpenseAccountCode
		}
	}
	container.Posting = NewPostingService(container.Catalog, container.Journal, postingAccounts)
	container.Reporting = NewReportingService(repos.Balance, repos.Reporting, container.Rates)

	return container
}
