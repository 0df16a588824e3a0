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
	"github.com/quipuerp/accounting/internal/utils/accounting"
	"github.com/quipuerp/accounting/internal/utils/periods"
)

// postingService turns inventory purchase events into balanced journal
// entries. One event maps to at most one entry, enforced twice: a lookup
// before building the entry and a unique constraint inside the insert
// transaction for concurrent callers.
type postingService struct {
	journalRepo  portsrepo.JournalRepository
	periodRepo   portsrepo.PeriodRepository
	purchaseRepo portsrepo.PurchaseRepository
	loc          *time.Location
}

// NewPostingService creates the automatic posting engine. loc is the
// company's accounting timezone, used only to name the target period.
func NewPostingService(
	journalRepo portsrepo.JournalRepository,
	periodRepo portsrepo.PeriodRepository,
	purchaseRepo portsrepo.PurchaseRepository,
	loc *time.Location,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo:  journalRepo,
		periodRepo:   periodRepo,
		purchaseRepo: purchaseRepo,
		loc:          loc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

func (s *postingService) PostInventoryPurchase(ctx context.Context, tenant domain.TenantContext, sourceID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	event, err := s.purchaseRepo.FindPurchaseEvent(ctx, tenant, sourceID)
	if err != nil {
		return fmt.Errorf("failed to load purchase event %d: %w", sourceID, err)
	}

	existing, err := s.journalRepo.FindEntryBySource(ctx, tenant, domain.SourceTypeInventoryEntry, sourceID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for existing entry: %w", err)
	}
	if existing != nil {
		logger.Info("Purchase already posted, skipping",
			slog.Int64("source_id", sourceID),
			slog.Int64("entry_id", existing.EntryID))
		return apperrors.ErrAlreadyPosted
	}

	split, err := accounting.SplitTax(event.TotalGross, event.IGVRate)
	if err != nil {
		return fmt.Errorf("failed to split tax for purchase %d: %w", sourceID, err)
	}

	settlement := domain.ResolveSettlementMethod(event.PaymentTerm, event.PaymentMethod)

	now := time.Now()
	periodName := periods.NameFor(now, s.loc)
	period, err := s.periodRepo.EnsurePeriod(ctx, periodName)
	if err != nil {
		return fmt.Errorf("failed to ensure period %s: %w", periodName, err)
	}
	if period.Status == domain.PeriodLocked {
		return apperrors.NewAppError(409, fmt.Sprintf("period %s is locked", periodName), apperrors.ErrPeriodLocked)
	}

	glosa := buildPurchaseGlosa(event)

	lines := []domain.JournalLine{
		{
			AccountCode: domain.AccountPurchases,
			Description: glosa,
			Debit:       split.Net,
		},
		{
			AccountCode: domain.AccountInputTax,
			Description: "IGV",
			Debit:       split.Tax,
		},
		{
			AccountCode: settlement.AccountCode(),
			Description: fmt.Sprintf("Payment %s - %s", event.PaymentTerm, event.PaymentMethod),
			Credit:      split.Amount,
		},
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return fmt.Errorf("generated entry does not balance: %w", err)
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	srcID := sourceID
	entry := domain.JournalEntry{
		PeriodID:       period.PeriodID,
		Date:           now.UTC(),
		Description:    glosa,
		ProviderName:   event.ProviderName,
		Status:         domain.StatusPosted,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		SourceType:     domain.SourceTypeInventoryEntry,
		SourceID:       &srcID,
		OrganizationID: tenant.OrganizationID,
		CompanyID:      tenant.CompanyID,
	}
	if event.Invoice != nil {
		entry.Serie = event.Invoice.Serie
		entry.Correlativo = event.Invoice.Correlativo
	}

	created, err := s.journalRepo.CreateEntryWithLines(ctx, entry, lines)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) {
			logger.Info("Purchase posted concurrently by another caller",
				slog.Int64("source_id", sourceID))
			return apperrors.ErrAlreadyPosted
		}
		return fmt.Errorf("failed to persist journal entry for purchase %d: %w", sourceID, err)
	}

	logger.Info("Purchase posted",
		slog.Int64("source_id", sourceID),
		slog.Int64("entry_id", created.EntryID),
		slog.String("period", periodName),
		slog.String("settlement", settlement.String()),
		slog.String("gross", split.Amount.String()))
	return nil
}

// buildPurchaseGlosa composes the entry description from the event's first
// item, its first serial number, the remaining item count and the invoice
// reference, in that order.
func buildPurchaseGlosa(event *domain.PurchaseEvent) string {
	var b strings.Builder
	b.WriteString("Compra")

	if len(event.Items) > 0 {
		primary := event.Items[0]
		b.WriteString(" ")
		b.WriteString(primary.ProductName)
		if len(primary.Serials) > 0 {
			b.WriteString(" S/N ")
			b.WriteString(primary.Serials[0])
		}
		if rest := len(event.Items) - 1; rest > 0 {
			fmt.Fprintf(&b, " +%d more items", rest)
		}
	}

	if event.Invoice != nil && event.Invoice.Serie != "" {
		fmt.Fprintf(&b, " %s-%s", event.Invoice.Serie, event.Invoice.Correlativo)
	}

	if event.ProviderName != "" {
		b.WriteString(" de ")
		b.WriteString(event.ProviderName)
	}
	return b.String()
}
