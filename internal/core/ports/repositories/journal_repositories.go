package repositories

import (
	"context"
	"time"

	"github.com/quipuerp/accounting/internal/core/domain"
)

// EntryFilter narrows entry listings. Zero values mean "no filter".
type EntryFilter struct {
	PeriodName string
	From       *time.Time // UTC instant, inclusive
	To         *time.Time // UTC instant, inclusive
	Offset     int
	Limit      int
}

// LineFilter narrows ledger line queries. Only lines of POSTED entries are
// ever returned by the implementations.
type LineFilter struct {
	AccountCode string     // empty = all accounts
	From        *time.Time // UTC instant, inclusive
	To          *time.Time // UTC instant, inclusive
}

// JournalRepository defines persistence for journal entries and their lines.
type JournalRepository interface {
	// CreateEntryWithLines persists the entry and its lines as one atomic
	// unit. The idempotency re-check runs inside the same transaction; a
	// concurrent duplicate for the same (sourceType, sourceID) surfaces as
	// apperrors.ErrAlreadyPosted via the unique constraint.
	CreateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error)

	// FindEntryBySource returns the entry created for a business event, or
	// apperrors.ErrNotFound.
	FindEntryBySource(ctx context.Context, tenant domain.TenantContext, sourceType string, sourceID int64) (*domain.JournalEntry, error)

	// FindEntryByID returns the entry with its lines in insertion order.
	FindEntryByID(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error)

	// FindEntryByInvoice locates an entry by its supplier invoice reference.
	FindEntryByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error)

	// ListEntries returns a page of entries (with lines) plus the unpaged
	// total, ordered by date descending.
	ListEntries(ctx context.Context, tenant domain.TenantContext, filter EntryFilter) ([]domain.JournalEntry, int64, error)

	// ListEntriesForExport returns POSTED entries of [from, to] ordered by
	// (date ASC, entry id ASC), lines in storage order.
	ListEntriesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.JournalEntry, error)

	// ListPostedLines returns lines of POSTED entries matching the filter,
	// ordered by (entry date ASC, line id ASC).
	ListPostedLines(ctx context.Context, tenant domain.TenantContext, filter LineFilter) ([]domain.LedgerLine, error)

	// ListPostedLinesForExport orders by (account code ASC, entry date ASC,
	// line id ASC) for the ledger book.
	ListPostedLinesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.LedgerLine, error)

	// UpdateEntryStatus transitions an entry's status and returns the
	// refreshed entry with lines.
	UpdateEntryStatus(ctx context.Context, tenant domain.TenantContext, entryID int64, status domain.EntryStatus) (*domain.JournalEntry, error)
}
