package repositories

import (
	"context"

	"github.com/quipuerp/accounting/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
// Code uniqueness per organization is enforced by the store (unique index),
// not re-checked here.
type AccountRepository interface {
	// ListByOrganization returns every account of the organization ordered
	// by code ascending.
	ListByOrganization(ctx context.Context, organizationID int64) ([]domain.Account, error)
	FindByID(ctx context.Context, organizationID, accountID int64) (*domain.Account, error)
	FindByCode(ctx context.Context, organizationID int64, code string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)
	// CountPostable supports the idempotent PCGE bootstrap check.
	CountPostable(ctx context.Context, organizationID int64) (int, error)
}
