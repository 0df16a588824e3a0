package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, organizationID, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, organizationID int64, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountPostable(ctx context.Context, organizationID int64) (int, error) {
	args := m.Called(ctx, organizationID)
	return args.Int(0), args.Error(1)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySource(ctx context.Context, tenant domain.TenantContext, sourceType string, sourceID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, sourceType, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, serie, correlativo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenant domain.TenantContext, filter portsrepo.EntryFilter) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, tenant, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepository) ListEntriesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListPostedLines(ctx context.Context, tenant domain.TenantContext, filter portsrepo.LineFilter) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenant, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) ListPostedLinesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, tenant, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, tenant domain.TenantContext, entryID int64, status domain.EntryStatus) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, entryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) EnsurePeriod(ctx context.Context, name string) (*domain.Period, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) GetPeriodByName(ctx context.Context, name string) (*domain.Period, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

func (m *MockPeriodRepository) SetPeriodStatus(ctx context.Context, name string, status domain.PeriodStatus) (*domain.Period, error) {
	args := m.Called(ctx, name, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Mock PurchaseRepository ---

type MockPurchaseRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaseRepository = (*MockPurchaseRepository)(nil)

func (m *MockPurchaseRepository) FindPurchaseEvent(ctx context.Context, tenant domain.TenantContext, sourceID int64) (*domain.PurchaseEvent, error) {
	args := m.Called(ctx, tenant, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseEvent), args.Error(1)
}
