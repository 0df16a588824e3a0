package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/middleware"
	"github.com/quipuerp/accounting/internal/utils/periods"
)

const (
	defaultLedgerPage = 1
	defaultLedgerSize = 25
)

// ledgerService derives the ledger view and the trial balance from posted
// journal lines. Running balances are never stored; every call folds over
// the full filtered movement set so the numbers cannot drift from the
// journal.
type ledgerService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	loc         *time.Location
}

// NewLedgerService creates the reporting service. loc is the books' local
// timezone used to translate calendar dates into query instants.
func NewLedgerService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, loc *time.Location) portssvc.LedgerSvcFacade {
	return &ledgerService{journalRepo: journalRepo, accountRepo: accountRepo, loc: loc}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetLedger returns one page of movements with running balances computed
// over the complete filtered set, so page boundaries never reset the
// balance. A store failure degrades to an empty page: the dashboard widget
// that renders this view must not break when reporting is unavailable.
func (s *ledgerService) GetLedger(ctx context.Context, tenant domain.TenantContext, q dto.LedgerQuery) (*dto.LedgerResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, to := periods.RangeBounds(q.From, q.To, s.loc)
	filter := portsrepo.LineFilter{
		AccountCode: q.AccountCode,
		From:        from,
		To:          to,
	}

	lines, err := s.journalRepo.ListPostedLines(ctx, tenant, filter)
	if err != nil {
		logger.Error("Failed to load ledger lines, serving empty result",
			slog.String("account_code", q.AccountCode),
			slog.String("error", err.Error()))
		return &dto.LedgerResult{Data: []domain.LedgerLine{}, Total: 0}, nil
	}

	balance := decimal.Zero
	for i := range lines {
		balance = balance.Add(lines[i].Debit).Sub(lines[i].Credit)
		lines[i].Balance = balance
	}

	page := q.Page
	if page < 1 {
		page = defaultLedgerPage
	}
	size := q.Size
	if size < 1 {
		size = defaultLedgerSize
	}

	total := int64(len(lines))
	start := (page - 1) * size
	if start >= len(lines) {
		return &dto.LedgerResult{Data: []domain.LedgerLine{}, Total: total}, nil
	}
	end := start + size
	if end > len(lines) {
		end = len(lines)
	}
	return &dto.LedgerResult{Data: lines[start:end], Total: total}, nil
}

// trialAccumulator collects one account's totals while scanning lines.
type trialAccumulator struct {
	opening decimal.Decimal
	debit   decimal.Decimal
	credit  decimal.Decimal
}

// GetTrialBalance computes opening, period movement and closing per account
// for a "YYYY-MM" period. Lines strictly before the month start feed the
// opening balance; lines inside the month feed the period columns.
func (s *ledgerService) GetTrialBalance(ctx context.Context, tenant domain.TenantContext, period string) ([]domain.TrialBalanceRow, error) {
	if period == "" {
		return []domain.TrialBalanceRow{}, nil
	}

	monthStart, monthEnd, err := periods.MonthBounds(period, s.loc)
	if err != nil {
		return nil, err
	}

	// One scan over everything up to the month end; the month start
	// splits each line into opening versus period movement.
	lines, err := s.journalRepo.ListPostedLines(ctx, tenant, portsrepo.LineFilter{To: &monthEnd})
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for trial balance %s: %w", period, err)
	}

	acc := make(map[string]*trialAccumulator)
	for _, line := range lines {
		a, ok := acc[line.AccountCode]
		if !ok {
			a = &trialAccumulator{
				opening: decimal.Zero,
				debit:   decimal.Zero,
				credit:  decimal.Zero,
			}
			acc[line.AccountCode] = a
		}
		if line.Date.Before(monthStart) {
			a.opening = a.opening.Add(line.Debit).Sub(line.Credit)
		} else {
			a.debit = a.debit.Add(line.Debit)
			a.credit = a.credit.Add(line.Credit)
		}
	}

	names := make(map[string]string)
	if accounts, err := s.accountRepo.ListByOrganization(ctx, tenant.OrganizationID); err == nil {
		for _, account := range accounts {
			names[account.Code] = account.Name
		}
	} else {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to resolve account names for trial balance",
			slog.String("error", err.Error()))
	}

	rows := make([]domain.TrialBalanceRow, 0, len(acc))
	for code, a := range acc {
		rows = append(rows, domain.TrialBalanceRow{
			AccountCode: code,
			AccountName: names[code],
			Opening:     a.opening,
			Debit:       a.debit,
			Credit:      a.credit,
			Closing:     a.opening.Add(a.debit).Sub(a.credit),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}
