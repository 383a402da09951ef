package pgsql

import (
	portsrepo "github.com/hawwa-platform/ledgercore/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryContainer wires the pgsql repositories over one shared pool.
func NewRepositoryContainer(dbPool *pgxpool.Pool) *portsrepo.RepositoryContainer {
	return &portsrepo.RepositoryContainer{
		Account:   newPgxAccountRepository(dbPool),
		Journal:   newPgxJournalRepository(dbPool),
		Balance:   newPgxBalanceRepository(dbPool),
		Rate:      newPgxRateRepository(dbPool),
		Reporting: newPgxReportingRepository(dbPool),
	}
}
