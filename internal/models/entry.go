package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID        int64
	PeriodID       int64
	Date           time.Time
	Description    *string
	ProviderName   *string
	Serie          *string
	Correlativo    *string
	Status         string
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	SourceType     *string
	SourceID       *int64
	OrganizationID int64
	CompanyID      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JournalLine is the database representation of one entry line.
type JournalLine struct {
	LineID      int64
	EntryID     int64
	AccountCode string
	Description *string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Period is the database representation of an accounting period.
type Period struct {
	PeriodID  int64
	Name      string
	Status    string
	CreatedAt time.Time
}

// Company carries the subset of company data the accounting core reads.
type Company struct {
	CompanyID int64
	Name      string
	TaxID     *string
}
