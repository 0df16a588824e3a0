package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTerm distinguishes immediate settlement from supplier credit.
type PaymentTerm string

const (
	TermCash   PaymentTerm = "CASH"
	TermCredit PaymentTerm = "CREDIT"
)

// PurchaseItem is one line of an inventory purchase.
type PurchaseItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Serials     []string        `json:"serials,omitempty"`
}

// InvoiceRef is the supplier invoice backing a purchase.
type InvoiceRef struct {
	Serie       string `json:"serie"`
	Correlativo string `json:"correlativo"`
}

// PurchaseEvent is the source business event the posting engine consumes.
// It is read-only here; the inventory module owns its lifecycle.
type PurchaseEvent struct {
	EventID        int64           `json:"eventID"`
	Date           time.Time       `json:"date"`
	TotalGross     decimal.Decimal `json:"totalGross"` // tax-inclusive
	IGVRate        decimal.Decimal `json:"igvRate"`    // e.g. 0.18
	PaymentTerm    PaymentTerm     `json:"paymentTerm"`
	PaymentMethod  string          `json:"paymentMethod"` // free-form, e.g. "EFECTIVO", "YAPE"
	ProviderName   string          `json:"providerName,omitempty"`
	Invoice        *InvoiceRef     `json:"invoice,omitempty"`
	Items          []PurchaseItem  `json:"items"`
	OrganizationID int64           `json:"organizationID"`
	CompanyID      int64           `json:"companyID"`
}
