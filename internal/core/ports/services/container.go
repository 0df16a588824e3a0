package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Account AccountSvcFacade
	Posting PostingSvcFacade
	Ledger  LedgerSvcFacade
	Export  ExportSvcFacade
	Entry   EntrySvcFacade
}
