package mapping

import (
	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/quipuerp/accounting/internal/models"
)

// ToDomainAccount converts a model Account to its domain form.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		ParentID:       m.ParentID,
		Level:          m.Level,
		IsPostable:     m.IsPostable,
		AccountType:    domain.AccountType(m.AccountType),
		OrganizationID: m.OrganizationID,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelAccount converts a domain Account to its database form.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		ParentID:       d.ParentID,
		Level:          d.Level,
		IsPostable:     d.IsPostable,
		AccountType:    string(d.AccountType),
		OrganizationID: d.OrganizationID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainAccountSlice converts a slice of model accounts preserving order.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
