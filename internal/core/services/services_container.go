// Package services implements the application's business logic on top of the
// repository ports.
package services

import (
	"time"

	portsrepo "github.com/mizanpro/mizan_backend/internal/core/ports/repositories"
	portssvc "github.com/mizanpro/mizan_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service with its repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider, jwtSecret string, jwtExpiry time.Duration) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Company:    NewCompanyService(repos.CompanyRepo, repos.AccountRepo, repos.JournalRepo),
		Account:    NewAccountService(repos.AccountRepo),
		Ledger:     NewLedgerService(repos.EntryRepo, repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo),
		Period:     NewPeriodService(repos.PeriodRepo, repos.EntryRepo),
		ThirdParty: NewThirdPartyService(repos.ThirdPartyRepo),
		Invoice:    NewInvoiceService(repos.InvoiceRepo, repos.ThirdPartyRepo),
		VAT:        NewVATService(repos.VATRepo, repos.CompanyRepo),
		User:       NewUserService(repos.UserRepo),
		Auth:       NewAuthService(repos.UserRepo, jwtSecret, jwtExpiry),
	}
}
