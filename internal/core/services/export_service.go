package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/middleware"
	"github.com/quipuerp/accounting/internal/utils/periods"
)

const (
	currencyPEN     = "PEN"
	journalBookCode = "5.1"
	exportDateFmt   = "02/01/2006"
)

// exportService renders the regulatory plain-text books: pipe-delimited
// rows, one per journal line, ordered and numbered the way the tax
// authority's loader expects them.
type exportService struct {
	journalRepo portsrepo.JournalRepository
	companyRepo portsrepo.CompanyRepository
	loc         *time.Location
}

// NewExportService creates the book export service.
func NewExportService(journalRepo portsrepo.JournalRepository, companyRepo portsrepo.CompanyRepository, loc *time.Location) portssvc.ExportSvcFacade {
	return &exportService{journalRepo: journalRepo, companyRepo: companyRepo, loc: loc}
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// entryCode renders the journal entry correlative, e.g. "M000042".
func entryCode(entryID int64) string {
	return fmt.Sprintf("M%06d", entryID)
}

// taxID resolves the company RUC, falling back to the placeholder when the
// company record is missing or unreadable.
func (s *exportService) taxID(ctx context.Context, tenant domain.TenantContext) string {
	company, err := s.companyRepo.FindCompany(ctx, tenant.CompanyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve company tax id for export",
				slog.Int64("company_id", tenant.CompanyID),
				slog.String("error", err.Error()))
		}
		return domain.PlaceholderTaxID
	}
	if company.TaxID == "" {
		return domain.PlaceholderTaxID
	}
	return company.TaxID
}

// ExportJournal renders the journal book ("libro diario") for a "YYYY-MM"
// period. Only POSTED entries participate; an empty period yields the empty
// string. The row sequence is a single monotonic counter across the whole
// file, never reset per entry.
func (s *exportService) ExportJournal(ctx context.Context, tenant domain.TenantContext, period string) (string, error) {
	from, to, err := periods.MonthBounds(period, s.loc)
	if err != nil {
		return "", err
	}

	entries, err := s.journalRepo.ListEntriesForExport(ctx, tenant, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to load entries for journal export %s: %w", period, err)
	}
	if len(entries) == 0 {
		return "", nil
	}

	ruc := s.taxID(ctx, tenant)
	year, month := periodParts(period)

	var rows []string
	seq := 0
	for _, entry := range entries {
		code := entryCode(entry.EntryID)
		glosa := entry.Description
		if glosa == "" {
			glosa = "Entry " + code
		}
		date := entry.Date.In(s.loc).Format(exportDateFmt)
		for _, line := range entry.Lines {
			seq++
			fields := []string{
				ruc,
				year,
				month,
				code,
				fmt.Sprintf("%06d", seq),
				date,
				journalBookCode,
				entry.Serie,
				entry.Correlativo,
				"",
				line.AccountCode,
				lineGlosa(line, glosa),
				line.Debit.StringFixed(2),
				line.Credit.StringFixed(2),
				currencyPEN,
				"1",
				"", "", "", "",
			}
			rows = append(rows, strings.Join(fields, "|"))
		}
	}
	return strings.Join(rows, "\n"), nil
}

// ExportLedger renders the ledger book ("libro mayor"): every posted line of
// the period grouped by account code, same sequence discipline as the
// journal book.
func (s *exportService) ExportLedger(ctx context.Context, tenant domain.TenantContext, period string) (string, error) {
	from, to, err := periods.MonthBounds(period, s.loc)
	if err != nil {
		return "", err
	}

	lines, err := s.journalRepo.ListPostedLinesForExport(ctx, tenant, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to load lines for ledger export %s: %w", period, err)
	}
	if len(lines) == 0 {
		return "", nil
	}

	ruc := s.taxID(ctx, tenant)
	year, month := periodParts(period)

	rows := make([]string, 0, len(lines))
	for i, line := range lines {
		code := entryCode(line.EntryID)
		glosa := line.Description
		if glosa == "" {
			glosa = "Entry " + code
		}
		fields := []string{
			ruc,
			year,
			month,
			line.AccountCode,
			"",
			code,
			fmt.Sprintf("%06d", i+1),
			line.Date.In(s.loc).Format(exportDateFmt),
			glosa,
			line.Debit.StringFixed(2),
			line.Credit.StringFixed(2),
			currencyPEN,
			"1",
			"", "", "", "",
		}
		rows = append(rows, strings.Join(fields, "|"))
	}
	return strings.Join(rows, "\n"), nil
}

// lineGlosa prefers the line's own description, then the entry's.
func lineGlosa(line domain.JournalLine, entryGlosa string) string {
	if line.Description != "" {
		return line.Description
	}
	return entryGlosa
}

// periodParts splits "2025-02" into ("2025", "02"). Callers validate the
// format through MonthBounds first.
func periodParts(period string) (year, month string) {
	return period[:4], period[5:]
}
