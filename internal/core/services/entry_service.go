package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/middleware"
	"github.com/quipuerp/accounting/internal/utils/accounting"
	"github.com/quipuerp/accounting/internal/utils/periods"
)

const (
	defaultEntryPage = 1
	defaultEntrySize = 25
)

// entryService manages manual journal entries and the period lock. Status
// moves only forward: DRAFT -> POSTED -> VOID.
type entryService struct {
	journalRepo portsrepo.JournalRepository
	periodRepo  portsrepo.PeriodRepository
	loc         *time.Location
}

// NewEntryService creates the entry lifecycle service.
func NewEntryService(journalRepo portsrepo.JournalRepository, periodRepo portsrepo.PeriodRepository, loc *time.Location) portssvc.EntrySvcFacade {
	return &entryService{journalRepo: journalRepo, periodRepo: periodRepo, loc: loc}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) List(ctx context.Context, tenant domain.TenantContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	page := params.Page
	if page < 1 {
		page = defaultEntryPage
	}
	size := params.Size
	if size < 1 {
		size = defaultEntrySize
	}

	from, to := periods.RangeBounds(params.From, params.To, s.loc)
	filter := portsrepo.EntryFilter{
		PeriodName: params.Period,
		From:       from,
		To:         to,
		Offset:     (page - 1) * size,
		Limit:      size,
	}

	entries, total, err := s.journalRepo.ListEntries(ctx, tenant, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return &dto.ListEntriesResponse{Data: entries, Total: total}, nil
}

func (s *entryService) Get(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", entryID, err)
	}
	return entry, nil
}

func (s *entryService) FindByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error) {
	if serie == "" || correlativo == "" {
		return nil, apperrors.NewAppError(400, "serie and correlativo are required", apperrors.ErrValidation)
	}
	entry, err := s.journalRepo.FindEntryByInvoice(ctx, tenant, serie, correlativo)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry for invoice %s-%s: %w", serie, correlativo, err)
	}
	return entry, nil
}

// CreateDraft stores a balanced manual entry in DRAFT status. The target
// period is derived from the entry date and created on first use; a locked
// period rejects the draft.
func (s *entryService) CreateDraft(ctx context.Context, tenant domain.TenantContext, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	lines := make([]domain.JournalLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, apperrors.NewAppError(400, "line amounts must not be negative", apperrors.ErrValidation)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return nil, apperrors.NewAppError(400, "a line is either a debit or a credit, not both", apperrors.ErrValidation)
		}
		lines = append(lines, domain.JournalLine{
			AccountCode: l.AccountCode,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, err
	}

	period, err := s.ensureOpenPeriod(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	entry := domain.JournalEntry{
		PeriodID:       period.PeriodID,
		Date:           req.Date.UTC(),
		Description:    req.Description,
		Serie:          req.Serie,
		Correlativo:    req.Correlativo,
		Status:         domain.StatusDraft,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		OrganizationID: tenant.OrganizationID,
		CompanyID:      tenant.CompanyID,
	}

	created, err := s.journalRepo.CreateEntryWithLines(ctx, entry, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft entry: %w", err)
	}

	logger.Info("Draft entry created",
		slog.Int64("entry_id", created.EntryID),
		slog.String("period", period.Name))
	return created, nil
}

// Post transitions a DRAFT entry to POSTED after re-checking the balance
// and the period lock.
func (s *entryService) Post(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}
	if entry.Status != domain.StatusDraft {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("only DRAFT entries can be posted, entry %d is %s", entryID, entry.Status), apperrors.ErrValidation)
	}
	if err := accounting.ValidateBalance(entry.Lines); err != nil {
		return nil, err
	}
	if _, err := s.ensureOpenPeriod(ctx, entry.Date); err != nil {
		return nil, err
	}

	updated, err := s.journalRepo.UpdateEntryStatus(ctx, tenant, entryID, domain.StatusPosted)
	if err != nil {
		return nil, fmt.Errorf("failed to post entry %d: %w", entryID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Entry posted", slog.Int64("entry_id", entryID))
	return updated, nil
}

// Void transitions a POSTED entry to VOID, removing it from every report
// and export. Voiding is blocked once the entry's period is locked.
func (s *entryService) Void(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenant, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}
	if entry.Status != domain.StatusPosted {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("only POSTED entries can be voided, entry %d is %s", entryID, entry.Status), apperrors.ErrValidation)
	}
	if _, err := s.ensureOpenPeriod(ctx, entry.Date); err != nil {
		return nil, err
	}

	updated, err := s.journalRepo.UpdateEntryStatus(ctx, tenant, entryID, domain.StatusVoid)
	if err != nil {
		return nil, fmt.Errorf("failed to void entry %d: %w", entryID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Entry voided", slog.Int64("entry_id", entryID))
	return updated, nil
}

// LockPeriod closes a period to further postings. Locking a period that was
// never touched creates it first, so a month can be closed preemptively.
func (s *entryService) LockPeriod(ctx context.Context, period string) (*domain.Period, error) {
	if _, _, err := periods.MonthBounds(period, s.loc); err != nil {
		return nil, err
	}
	if _, err := s.periodRepo.EnsurePeriod(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to ensure period %s: %w", period, err)
	}
	locked, err := s.periodRepo.SetPeriodStatus(ctx, period, domain.PeriodLocked)
	if err != nil {
		return nil, fmt.Errorf("failed to lock period %s: %w", period, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Period locked", slog.String("period", period))
	return locked, nil
}

// UnlockPeriod reopens a locked period. Unknown periods are a not-found,
// not an implicit create.
func (s *entryService) UnlockPeriod(ctx context.Context, period string) (*domain.Period, error) {
	if _, _, err := periods.MonthBounds(period, s.loc); err != nil {
		return nil, err
	}
	if _, err := s.periodRepo.GetPeriodByName(ctx, period); err != nil {
		return nil, fmt.Errorf("failed to load period %s: %w", period, err)
	}
	unlocked, err := s.periodRepo.SetPeriodStatus(ctx, period, domain.PeriodOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock period %s: %w", period, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Period unlocked", slog.String("period", period))
	return unlocked, nil
}

// ensureOpenPeriod resolves the period owning a date, creating it when
// absent, and rejects locked periods.
func (s *entryService) ensureOpenPeriod(ctx context.Context, date time.Time) (*domain.Period, error) {
	name := periods.NameFor(date, s.loc)
	period, err := s.periodRepo.EnsurePeriod(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure period %s: %w", name, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, apperrors.NewAppError(409,
			fmt.Sprintf("period %s is locked", name), apperrors.ErrPeriodLocked)
	}
	return period, nil
}
