package repositories

import (
	"context"

	"github.com/quipuerp/accounting/internal/core/domain"
)

// PeriodRepository defines persistence for accounting periods.
type PeriodRepository interface {
	// EnsurePeriod fetches the period by name, creating it (status OPEN)
	// when absent. Implementations must be race-safe: insert-on-conflict-
	// do-nothing followed by a re-read, so concurrent first posts of a
	// month never produce duplicate rows.
	EnsurePeriod(ctx context.Context, name string) (*domain.Period, error)

	// GetPeriodByName returns apperrors.ErrNotFound when absent.
	GetPeriodByName(ctx context.Context, name string) (*domain.Period, error)

	SetPeriodStatus(ctx context.Context, name string, status domain.PeriodStatus) (*domain.Period, error)
}

// CompanyRepository reads company data owned by the platform's company module.
type CompanyRepository interface {
	// FindCompany returns apperrors.ErrNotFound when the company is absent.
	FindCompany(ctx context.Context, companyID int64) (*domain.Company, error)
}

// PurchaseRepository reads inventory purchase events owned by the inventory
// module. The accounting core never mutates them.
type PurchaseRepository interface {
	// FindPurchaseEvent loads the event with its items, serial numbers,
	// invoice reference and provider. A missing provider degrades to an
	// empty provider name, never an error.
	FindPurchaseEvent(ctx context.Context, tenant domain.TenantContext, sourceID int64) (*domain.PurchaseEvent, error)
}
