package pgsql

import (
	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:    newPgxCompanyRepository(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		EntryRepo:      newPgxEntryRepository(dbPool),
		PeriodRepo:     newPgxPeriodRepository(dbPool),
		ThirdPartyRepo: newPgxThirdPartyRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
		VATRepo:        newPgxVATRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
