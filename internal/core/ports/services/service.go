package services

// ServiceContainer bundles the service facades handed to route
// registration at startup.
type ServiceContainer struct {
	User    UserSvcFacade
	Account AccountSvcFacade
	Ledger  LedgerSvcFacade
}
