package mapping

import (
	"github.com/quipuerp/accounting/internal/core/domain"
	"github.com/quipuerp/accounting/internal/models"
)

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToDomainEntry converts a model JournalEntry to its domain form.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		PeriodID:       m.PeriodID,
		Date:           m.Date,
		Description:    strOrEmpty(m.Description),
		ProviderName:   strOrEmpty(m.ProviderName),
		Serie:          strOrEmpty(m.Serie),
		Correlativo:    strOrEmpty(m.Correlativo),
		Status:         domain.EntryStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		SourceType:     strOrEmpty(m.SourceType),
		SourceID:       m.SourceID,
		OrganizationID: m.OrganizationID,
		CompanyID:      m.CompanyID,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelEntry converts a domain JournalEntry to its database form.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		PeriodID:       d.PeriodID,
		Date:           d.Date,
		Description:    strOrNil(d.Description),
		ProviderName:   strOrNil(d.ProviderName),
		Serie:          strOrNil(d.Serie),
		Correlativo:    strOrNil(d.Correlativo),
		Status:         string(d.Status),
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		SourceType:     strOrNil(d.SourceType),
		SourceID:       d.SourceID,
		OrganizationID: d.OrganizationID,
		CompanyID:      d.CompanyID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// ToDomainLine converts a model JournalLine to its domain form.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountCode: m.AccountCode,
		Description: strOrEmpty(m.Description),
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainLineSlice converts a slice of model lines preserving order.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLine(m)
	}
	return out
}

// ToModelLine converts a domain JournalLine to its database form.
func ToModelLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountCode: d.AccountCode,
		Description: strOrNil(d.Description),
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainPeriod converts a model Period to its domain form.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:  m.PeriodID,
		Name:      m.Name,
		Status:    domain.PeriodStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainCompany converts a model Company to its domain form. A missing
// tax id maps to the empty string; the export layer applies the placeholder.
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID: m.CompanyID,
		Name:      m.Name,
		TaxID:     strOrEmpty(m.TaxID),
	}
}
