// Package services defines the facades the HTTP layer programs against.
package services

import (
	"context"

	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/quipuerp/accounting/internal/dto"
)

// AccountSvcFacade exposes the chart of accounts directory.
type AccountSvcFacade interface {
	ListTree(ctx context.Context, tenant domain.TenantContext) ([]*domain.AccountNode, error)
	Create(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest) (*domain.Account, error)
	Update(ctx context.Context, tenant domain.TenantContext, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)
	EnsureDefaults(ctx context.Context, tenant domain.TenantContext) error
}

// PostingSvcFacade converts source business events into balanced entries.
type PostingSvcFacade interface {
	// PostInventoryPurchase returns apperrors.ErrAlreadyPosted when an
	// entry for the source already exists and apperrors.ErrNotFound when
	// the source event is missing.
	PostInventoryPurchase(ctx context.Context, tenant domain.TenantContext, sourceID int64) error
}

// LedgerSvcFacade serves the ledger and trial balance reporting paths.
type LedgerSvcFacade interface {
	GetLedger(ctx context.Context, tenant domain.TenantContext, q dto.LedgerQuery) (*dto.LedgerResult, error)
	GetTrialBalance(ctx context.Context, tenant domain.TenantContext, period string) ([]domain.TrialBalanceRow, error)
}

// ExportSvcFacade renders the regulatory plain-text books.
type ExportSvcFacade interface {
	ExportJournal(ctx context.Context, tenant domain.TenantContext, period string) (string, error)
	ExportLedger(ctx context.Context, tenant domain.TenantContext, period string) (string, error)
}

// EntrySvcFacade manages entry lifecycle and listings.
type EntrySvcFacade interface {
	List(ctx context.Context, tenant domain.TenantContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	Get(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error)
	FindByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error)
	CreateDraft(ctx context.Context, tenant domain.TenantContext, req dto.CreateEntryRequest) (*domain.JournalEntry, error)
	Post(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error)
	Void(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error)
	LockPeriod(ctx context.Context, period string) (*domain.Period, error)
	UnlockPeriod(ctx context.Context, period string) (*domain.Period, error)
}
