package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service layer.
type RepositoryProvider struct {
	AccountRepo  AccountRepository
	JournalRepo  JournalRepository
	PeriodRepo   PeriodRepository
	CompanyRepo  CompanyRepository
	PurchaseRepo PurchaseRepository
}
