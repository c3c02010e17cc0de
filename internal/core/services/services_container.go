package services

import (
	portsrepo "github.com/enpointe-io/bank_backend/internal/core/ports/repositories"
	portssvc "github.com/enpointe-io/bank_backend/internal/core/ports/services"
	"github.com/enpointe-io/bank_backend/pkg/config"
)

// NewServiceContainer creates the service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:    NewUserService(repos.UserRepo, cfg.AdminEmailDomain),
		Account: NewAccountService(repos.AccountRepo),
		Ledger:  NewLedgerService(repos.TransactionRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.UserSvcFacade    = (*UserService)(nil)
	_ portssvc.AccountSvcFacade = (*AccountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*LedgerService)(nil)
)
