package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	"github.com/quipuerp/accounting/internal/models"
	"github.com/quipuerp/accounting/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	pool *pgxpool.Pool
}

// newPgxCompanyRepository creates a read-only repository over the platform's
// companies table.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{pool: pool}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) FindCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	var m models.Company
	err := r.pool.QueryRow(ctx,
		`SELECT company_id, name, tax_id FROM companies WHERE company_id = $1;`,
		companyID).Scan(&m.CompanyID, &m.Name, &m.TaxID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("company %d not found", companyID))
		}
		return nil, apperrors.NewAppError(500, "failed to find company", err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}
