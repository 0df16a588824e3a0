package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	StatusDraft  EntryStatus = "DRAFT"
	StatusPosted EntryStatus = "POSTED"
	StatusVoid   EntryStatus = "VOID"
)

// SourceTypeInventoryEntry marks entries generated from inventory purchases.
const SourceTypeInventoryEntry = "inventory_entry"

// JournalEntry is a single balanced transaction. TotalDebit and TotalCredit
// must be equal; (SourceType, SourceID) form an idempotency key so at most
// one entry exists per source business event.
type JournalEntry struct {
	EntryID        int64           `json:"entryID"`
	PeriodID       int64           `json:"periodID"`
	Date           time.Time       `json:"date"` // UTC instant
	Description    string          `json:"description,omitempty"`
	ProviderName   string          `json:"providerName,omitempty"`
	Serie          string          `json:"serie,omitempty"`
	Correlativo    string          `json:"correlativo,omitempty"`
	Status         EntryStatus     `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	SourceType     string          `json:"sourceType,omitempty"`
	SourceID       *int64          `json:"sourceID,omitempty"`
	OrganizationID int64           `json:"organizationID"`
	CompanyID      int64           `json:"companyID"`
	Lines          []JournalLine   `json:"lines,omitempty"` // insertion order is significant
	AuditFields
}

// JournalLine is one debit/credit movement inside an entry. Exactly one of
// Debit/Credit is expected to be non-zero, though the model does not forbid
// both being zero.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
