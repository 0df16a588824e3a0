package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	"github.com/quipuerp/accounting/internal/models"
	"github.com/quipuerp/accounting/internal/utils/mapping"
)

// sourceUniqueConstraint backs the one-entry-per-business-event guarantee.
const sourceUniqueConstraint = "journal_entries_source_uq"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, period_id, entry_date, description, provider_name, serie, correlativo, status, total_debit, total_credit, source_type, source_id, organization_id, company_id, created_at, updated_at`

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.PeriodID,
		&m.Date,
		&m.Description,
		&m.ProviderName,
		&m.Serie,
		&m.Correlativo,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.SourceType,
		&m.SourceID,
		&m.OrganizationID,
		&m.CompanyID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateEntryWithLines inserts the header and its lines in one transaction.
// A unique violation on the source constraint means another caller posted
// the same business event first.
func (r *PgxJournalRepository) CreateEntryWithLines(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelEntry(entry)
	entryQuery := fmt.Sprintf(`
		INSERT INTO journal_entries (
			period_id, entry_date, description, provider_name, serie, correlativo,
			status, total_debit, total_credit, source_type, source_id,
			organization_id, company_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s;`, entryColumns)

	created, err := scanEntry(tx.QueryRow(ctx, entryQuery,
		m.PeriodID, m.Date, m.Description, m.ProviderName, m.Serie, m.Correlativo,
		m.Status, m.TotalDebit, m.TotalCredit, m.SourceType, m.SourceID,
		m.OrganizationID, m.CompanyID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == sourceUniqueConstraint {
			return nil, apperrors.ErrAlreadyPosted
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry", err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_code, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5);`
	for _, line := range lines {
		ml := mapping.ToModelLine(line)
		batch.Queue(lineQuery, created.EntryID, ml.AccountCode, ml.Description, ml.Debit, ml.Credit)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return nil, apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to flush journal line batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	out := mapping.ToDomainEntry(*created)
	out.Lines = make([]domain.JournalLine, len(lines))
	copy(out.Lines, lines)
	for i := range out.Lines {
		out.Lines[i].EntryID = created.EntryID
	}
	return &out, nil
}

func (r *PgxJournalRepository) FindEntryBySource(ctx context.Context, tenant domain.TenantContext, sourceType string, sourceID int64) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE organization_id = $1 AND company_id = $2 AND source_type = $3 AND source_id = $4;`, entryColumns)

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenant.OrganizationID, tenant.CompanyID, sourceType, sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no entry for source %s/%d", sourceType, sourceID))
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by source", err)
	}
	return r.withLines(ctx, *m)
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE organization_id = $1 AND company_id = $2 AND entry_id = $3;`, entryColumns)

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenant.OrganizationID, tenant.CompanyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", entryID))
		}
		return nil, apperrors.NewAppError(500, "failed to find entry", err)
	}
	return r.withLines(ctx, *m)
}

func (r *PgxJournalRepository) FindEntryByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries
		WHERE organization_id = $1 AND company_id = $2 AND serie = $3 AND correlativo = $4
		ORDER BY entry_id DESC
		LIMIT 1;`, entryColumns)

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, tenant.OrganizationID, tenant.CompanyID, serie, correlativo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no entry for invoice %s-%s", serie, correlativo))
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by invoice", err)
	}
	return r.withLines(ctx, *m)
}

// ListEntries pages entries newest-first with an unpaged total.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenant domain.TenantContext, filter portsrepo.EntryFilter) ([]domain.JournalEntry, int64, error) {
	where := ` WHERE e.organization_id = $1 AND e.company_id = $2`
	args := []interface{}{tenant.OrganizationID, tenant.CompanyID}

	if filter.PeriodName != "" {
		args = append(args, filter.PeriodName)
		where += ` AND e.period_id = (SELECT period_id FROM periods WHERE name = $` + strconv.Itoa(len(args)) + `)`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries e`+where, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM journal_entries e`, qualifyColumns("e", entryColumns)) + where +
		` ORDER BY e.entry_date DESC, e.entry_id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list entries", err)
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		out = append(out, mapping.ToDomainEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed iterating entry rows", err)
	}

	if err := r.attachLines(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListEntriesForExport returns POSTED entries of the range in posting order.
func (r *PgxJournalRepository) ListEntriesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM journal_entries e
		WHERE e.organization_id = $1 AND e.company_id = $2 AND e.status = $3
		  AND e.entry_date >= $4 AND e.entry_date <= $5
		ORDER BY e.entry_date ASC, e.entry_id ASC;`, qualifyColumns("e", entryColumns))

	rows, err := r.Pool.Query(ctx, query, tenant.OrganizationID, tenant.CompanyID, string(domain.StatusPosted), from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries for export", err)
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		out = append(out, mapping.ToDomainEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating entry rows", err)
	}

	if err := r.attachLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

const ledgerLineSelect = `
	SELECT l.line_id, l.entry_id, e.entry_date, l.account_code, l.description, l.debit, l.credit
	FROM journal_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id`

func scanLedgerLine(rows pgx.Rows) (domain.LedgerLine, error) {
	var line domain.LedgerLine
	var description *string
	if err := rows.Scan(&line.LineID, &line.EntryID, &line.Date, &line.AccountCode, &description, &line.Debit, &line.Credit); err != nil {
		return domain.LedgerLine{}, err
	}
	if description != nil {
		line.Description = *description
	}
	return line, nil
}

func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, tenant domain.TenantContext, filter portsrepo.LineFilter) ([]domain.LedgerLine, error) {
	where := ` WHERE e.organization_id = $1 AND e.company_id = $2 AND e.status = $3`
	args := []interface{}{tenant.OrganizationID, tenant.CompanyID, string(domain.StatusPosted)}

	if filter.AccountCode != "" {
		args = append(args, filter.AccountCode)
		where += ` AND l.account_code = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}

	query := ledgerLineSelect + where + ` ORDER BY e.entry_date ASC, l.line_id ASC;`
	return r.queryLedgerLines(ctx, query, args...)
}

func (r *PgxJournalRepository) ListPostedLinesForExport(ctx context.Context, tenant domain.TenantContext, from, to time.Time) ([]domain.LedgerLine, error) {
	query := ledgerLineSelect + `
	WHERE e.organization_id = $1 AND e.company_id = $2 AND e.status = $3
	  AND e.entry_date >= $4 AND e.entry_date <= $5
	ORDER BY l.account_code ASC, e.entry_date ASC, l.line_id ASC;`
	return r.queryLedgerLines(ctx, query, tenant.OrganizationID, tenant.CompanyID, string(domain.StatusPosted), from, to)
}

func (r *PgxJournalRepository) queryLedgerLines(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger lines", err)
	}
	defer rows.Close()

	var out []domain.LedgerLine
	for rows.Next() {
		line, err := scanLedgerLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger line", err)
		}
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating ledger lines", err)
	}
	return out, nil
}

func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, tenant domain.TenantContext, entryID int64, status domain.EntryStatus) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`
		UPDATE journal_entries
		SET status = $1, updated_at = now()
		WHERE organization_id = $2 AND company_id = $3 AND entry_id = $4
		RETURNING %s;`, entryColumns)

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, string(status), tenant.OrganizationID, tenant.CompanyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %d not found", entryID))
		}
		return nil, apperrors.NewAppError(500, "failed to update entry status", err)
	}
	return r.withLines(ctx, *m)
}

// withLines loads the entry's lines and returns the assembled domain form.
func (r *PgxJournalRepository) withLines(ctx context.Context, m models.JournalEntry) (*domain.JournalEntry, error) {
	entry := mapping.ToDomainEntry(m)
	entries := []domain.JournalEntry{entry}
	if err := r.attachLines(ctx, entries); err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// attachLines bulk-loads lines for the given entries in one query.
func (r *PgxJournalRepository) attachLines(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]int64, len(entries))
	index := make(map[int64]int, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
		index[e.EntryID] = i
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, entry_id, account_code, description, debit, credit
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY line_id ASC;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountCode, &m.Description, &m.Debit, &m.Credit); err != nil {
			return apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		if i, ok := index[m.EntryID]; ok {
			entries[i].Lines = append(entries[i].Lines, mapping.ToDomainLine(m))
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed iterating journal lines", err)
	}
	return nil
}

// qualifyColumns prefixes each column of a comma-separated list with a table
// alias for use in joined queries.
func qualifyColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
