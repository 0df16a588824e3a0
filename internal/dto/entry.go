package dto

import (
	"time"

	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one line of a manual draft entry.
type EntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateEntryRequest creates a manual DRAFT entry.
type CreateEntryRequest struct {
	Date        time.Time          `json:"date" binding:"required"`
	Description string             `json:"description"`
	Serie       string             `json:"serie"`
	Correlativo string             `json:"correlativo"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams filters and pages the entry listing.
type ListEntriesParams struct {
	Period string     `form:"period" binding:"omitempty,period"`
	From   *time.Time `form:"from" time_format:"2006-01-02"`
	To     *time.Time `form:"to" time_format:"2006-01-02"`
	Page   int        `form:"page"`
	Size   int        `form:"size"`
}

// ListEntriesResponse is one page of entries plus the unpaged total.
type ListEntriesResponse struct {
	Data  []domain.JournalEntry `json:"data"`
	Total int64                 `json:"total"`
}
