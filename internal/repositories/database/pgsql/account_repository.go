package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	"github.com/quipuerp/accounting/internal/models"
	"github.com/quipuerp/accounting/internal/utils/mapping"
)

// uniqueViolationCode is the Postgres error code for unique constraint hits.
const uniqueViolationCode = "23505"

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, parent_id, level, is_postable, account_type, organization_id, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.ParentID,
		&m.Level,
		&m.IsPostable,
		&m.AccountType,
		&m.OrganizationID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxAccountRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE organization_id = $1 ORDER BY code ASC;`, accountColumns)

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating account rows", err)
	}
	return mapping.ToDomainAccountSlice(out), nil
}

func (r *PgxAccountRepository) FindByID(ctx context.Context, organizationID, accountID int64) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE organization_id = $1 AND account_id = $2;`, accountColumns)

	m, err := scanAccount(r.pool.QueryRow(ctx, query, organizationID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", accountID))
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAccountRepository) FindByCode(ctx context.Context, organizationID int64, code string) (*domain.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE organization_id = $1 AND code = $2;`, accountColumns)

	m, err := scanAccount(r.pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", code))
		}
		return nil, apperrors.NewAppError(500, "failed to find account by code", err)
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := fmt.Sprintf(`
		INSERT INTO accounts (code, name, parent_id, level, is_postable, account_type, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s;`, accountColumns)

	created, err := scanAccount(r.pool.QueryRow(ctx, query,
		m.Code, m.Name, m.ParentID, m.Level, m.IsPostable, m.AccountType, m.OrganizationID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", account.Code), apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert account", err)
	}
	acc := mapping.ToDomainAccount(*created)
	return &acc, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := fmt.Sprintf(`
		UPDATE accounts
		SET code = $1, name = $2, parent_id = $3, level = $4, is_postable = $5, account_type = $6, updated_at = now()
		WHERE organization_id = $7 AND account_id = $8
		RETURNING %s;`, accountColumns)

	updated, err := scanAccount(r.pool.QueryRow(ctx, query,
		m.Code, m.Name, m.ParentID, m.Level, m.IsPostable, m.AccountType, m.OrganizationID, m.AccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %d not found", account.AccountID))
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", account.Code), apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to update account", err)
	}
	acc := mapping.ToDomainAccount(*updated)
	return &acc, nil
}

func (r *PgxAccountRepository) CountPostable(ctx context.Context, organizationID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE organization_id = $1 AND is_postable;`,
		organizationID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count postable accounts", err)
	}
	return count, nil
}
