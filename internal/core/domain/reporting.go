package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one movement of an account's ledger with the running
// balance after applying it. The balance is a view-time computation and
// is never persisted.
type LedgerLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"accountCode"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceRow summarizes one account over a period: opening balance,
// period movement, and closing = opening + debit - credit.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Opening     decimal.Decimal `json:"opening"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Closing     decimal.Decimal `json:"closing"`
}
