package dto

import (
	"time"

	"github.com/quipuerp/accounting/internal/core/domain"
)

// LedgerQuery filters the ledger view. From/To are inclusive calendar dates
// interpreted in the books' local timezone.
type LedgerQuery struct {
	AccountCode string
	From        *time.Time
	To          *time.Time
	Page        int
	Size        int
}

// LedgerResult is one page of ledger movements plus the unpaged total. The
// running balances are computed over the full filtered set before paging.
type LedgerResult struct {
	Data  []domain.LedgerLine `json:"data"`
	Total int64               `json:"total"`
}
