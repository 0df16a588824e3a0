package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TenantContext identifies the organization and company every call operates
// on. It is resolved by the HTTP layer and passed through unchanged.
type TenantContext struct {
	OrganizationID int64 `json:"organizationID"`
	CompanyID      int64 `json:"companyID"`
}
