package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		PeriodRepo:   newPgxPeriodRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		PurchaseRepo: newPgxPurchaseRepository(dbPool),
	}
}
