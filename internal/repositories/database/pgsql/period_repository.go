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

type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxPeriodRepository creates a new repository for accounting periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{pool: pool}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, name, status, created_at`

func scanPeriod(row pgx.Row) (*models.Period, error) {
	var m models.Period
	if err := row.Scan(&m.PeriodID, &m.Name, &m.Status, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// EnsurePeriod inserts the period if absent and re-reads it. ON CONFLICT DO
// NOTHING makes concurrent first posts of a month race-safe: whoever loses
// the insert still reads the winner's row.
func (r *PgxPeriodRepository) EnsurePeriod(ctx context.Context, name string) (*domain.Period, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO periods (name, status)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING;`, name, string(domain.PeriodOpen))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure period "+name, err)
	}
	return r.GetPeriodByName(ctx, name)
}

func (r *PgxPeriodRepository) GetPeriodByName(ctx context.Context, name string) (*domain.Period, error) {
	query := fmt.Sprintf(`SELECT %s FROM periods WHERE name = $1;`, periodColumns)

	m, err := scanPeriod(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("period %s not found", name))
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+name, err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}

func (r *PgxPeriodRepository) SetPeriodStatus(ctx context.Context, name string, status domain.PeriodStatus) (*domain.Period, error) {
	query := fmt.Sprintf(`
		UPDATE periods SET status = $1 WHERE name = $2
		RETURNING %s;`, periodColumns)

	m, err := scanPeriod(r.pool.QueryRow(ctx, query, string(status), name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("period %s not found", name))
		}
		return nil, apperrors.NewAppError(500, "failed to set status of period "+name, err)
	}
	period := mapping.ToDomainPeriod(*m)
	return &period, nil
}
