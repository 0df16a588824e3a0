package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
)

type PgxPurchaseRepository struct {
	pool *pgxpool.Pool
}

// newPgxPurchaseRepository creates a read-only repository over the inventory
// module's purchase tables. The accounting core only ever reads them.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepository {
	return &PgxPurchaseRepository{pool: pool}
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

func (r *PgxPurchaseRepository) FindPurchaseEvent(ctx context.Context, tenant domain.TenantContext, sourceID int64) (*domain.PurchaseEvent, error) {
	event := domain.PurchaseEvent{
		EventID:        sourceID,
		OrganizationID: tenant.OrganizationID,
		CompanyID:      tenant.CompanyID,
	}

	var providerName *string
	var invoiceSerie, invoiceCorrelativo *string
	var gross, rate decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT ie.entry_date, ie.total_gross, ie.igv_rate, ie.payment_term, ie.payment_method,
		       p.name, inv.serie, inv.correlativo
		FROM inventory_entries ie
		LEFT JOIN providers p ON p.provider_id = ie.provider_id
		LEFT JOIN invoices inv ON inv.invoice_id = ie.invoice_id
		WHERE ie.organization_id = $1 AND ie.company_id = $2 AND ie.inventory_entry_id = $3;`,
		tenant.OrganizationID, tenant.CompanyID, sourceID).
		Scan(&event.Date, &gross, &rate, &event.PaymentTerm, &event.PaymentMethod,
			&providerName, &invoiceSerie, &invoiceCorrelativo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("inventory entry %d not found", sourceID))
		}
		return nil, apperrors.NewAppError(500, "failed to load inventory entry", err)
	}
	event.TotalGross = gross
	event.IGVRate = rate
	// Missing provider rows degrade to an empty name, the posting still runs.
	if providerName != nil {
		event.ProviderName = *providerName
	}
	if invoiceSerie != nil && invoiceCorrelativo != nil {
		event.Invoice = &domain.InvoiceRef{Serie: *invoiceSerie, Correlativo: *invoiceCorrelativo}
	}

	items, err := r.loadItems(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	event.Items = items
	return &event, nil
}

func (r *PgxPurchaseRepository) loadItems(ctx context.Context, sourceID int64) ([]domain.PurchaseItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ii.item_id, ii.product_name, ii.quantity, ii.unit_price,
		       COALESCE(array_agg(s.serial_number ORDER BY s.serial_id) FILTER (WHERE s.serial_number IS NOT NULL), '{}')
		FROM inventory_entry_items ii
		LEFT JOIN inventory_serials s ON s.item_id = ii.item_id
		WHERE ii.inventory_entry_id = $1
		GROUP BY ii.item_id, ii.product_name, ii.quantity, ii.unit_price
		ORDER BY ii.item_id ASC;`, sourceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load inventory items", err)
	}
	defer rows.Close()

	var items []domain.PurchaseItem
	for rows.Next() {
		var itemID int64
		var item domain.PurchaseItem
		if err := rows.Scan(&itemID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Serials); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating inventory items", err)
	}
	return items, nil
}
