package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/quipuerp/accounting/internal/core/domain"
	portsrepo "github.com/quipuerp/accounting/internal/core/ports/repositories"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/middleware"
)

// postableCodeLength: accounts with codes this long or longer accept postings.
const postableCodeLength = 4

// accountService maintains the chart of accounts directory.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the account directory service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListTree loads every account of the organization and assembles the
// parent/child forest. Accounts whose parent is missing become roots;
// leaves keep a nil children slice so the JSON form carries no empty
// collections. Read-only.
func (s *accountService) ListTree(ctx context.Context, tenant domain.TenantContext) ([]*domain.AccountNode, error) {
	accounts, err := s.accountRepo.ListByOrganization(ctx, tenant.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	nodes := make(map[int64]*domain.AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &domain.AccountNode{Account: acc}
	}

	var roots []*domain.AccountNode
	for _, acc := range accounts { // iterate the ordered slice, not the map
		node := nodes[acc.AccountID]
		if acc.ParentID != nil {
			if parent, ok := nodes[*acc.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortTree(roots)
	return roots, nil
}

func sortTree(nodes []*domain.AccountNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortTree(n.Children)
		}
	}
}

// Create stores a new account. Level and the postable flag are derived from
// the code; code uniqueness is the store's responsibility.
func (s *accountService) Create(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		Code:           req.Code,
		Name:           req.Name,
		ParentID:       req.ParentID,
		Level:          len(req.Code),
		IsPostable:     len(req.Code) >= postableCodeLength,
		AccountType:    domain.AccountType(req.AccountType),
		OrganizationID: tenant.OrganizationID,
	}

	created, err := s.accountRepo.CreateAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to create account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account %s: %w", req.Code, err)
	}

	logger.Info("Account created", slog.String("code", created.Code), slog.Int64("account_id", created.AccountID))
	return created, nil
}

// Update applies the same derivation in place.
func (s *accountService) Update(ctx context.Context, tenant domain.TenantContext, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindByID(ctx, tenant.OrganizationID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}

	existing.Code = req.Code
	existing.Name = req.Name
	existing.ParentID = req.ParentID
	existing.Level = len(req.Code)
	existing.IsPostable = len(req.Code) >= postableCodeLength
	if req.AccountType != "" {
		existing.AccountType = domain.AccountType(req.AccountType)
	}

	updated, err := s.accountRepo.UpdateAccount(ctx, *existing)
	if err != nil {
		logger.Error("Failed to update account", slog.Int64("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account %d: %w", accountID, err)
	}
	return updated, nil
}

// accountSeed is one row of the default PCGE chart.
type accountSeed struct {
	code        string
	name        string
	parentCode  string
	accountType domain.AccountType
}

// Minimum PCGE accounts required by the automatic purchase journal.
var defaultPCGEAccounts = []accountSeed{
	{"10", "Efectivo y equivalentes de efectivo", "", domain.Asset},
	{"101", "Caja", "10", domain.Asset},
	{"1011", "Caja - Moneda Nacional", "101", domain.Asset},
	{"104", "Cuentas corrientes en instituciones financieras", "10", domain.Asset},
	{"1041", "Cuentas corrientes operativas", "104", domain.Asset},
	{"20", "Mercaderias", "", domain.Asset},
	{"201", "Mercaderias manufacturadas", "20", domain.Asset},
	{"2011", "Mercaderias manufacturadas - Costo", "201", domain.Asset},
	{"40", "Tributos, contraprestaciones y aportes", "", domain.Liability},
	{"401", "Gobierno central", "40", domain.Liability},
	{"4011", "IGV - Cuenta propia", "401", domain.Liability},
	{"42", "Cuentas por pagar comerciales - Terceros", "", domain.Liability},
	{"421", "Facturas, boletas y otros comprobantes por pagar", "42", domain.Liability},
	{"4211", "No emitidas", "421", domain.Liability},
	{"60", "Compras", "", domain.Expense},
	{"601", "Mercaderias", "60", domain.Expense},
	{"6011", "Mercaderias manufacturadas", "601", domain.Expense},
	{"69", "Costo de ventas", "", domain.Expense},
	{"691", "Mercaderias", "69", domain.Expense},
	{"6911", "Mercaderias manufacturadas", "691", domain.Expense},
	{"70", "Ventas de mercaderias", "", domain.Income},
	{"701", "Mercaderias", "70", domain.Income},
	{"7011", "Mercaderias manufacturadas", "701", domain.Income},
}

// EnsureDefaults seeds the minimum PCGE chart for an organization. Safe to
// call repeatedly: existing codes are kept as-is.
func (s *accountService) EnsureDefaults(ctx context.Context, tenant domain.TenantContext) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	postable, err := s.accountRepo.CountPostable(ctx, tenant.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if postable >= 8 {
		return nil
	}

	existing, err := s.accountRepo.ListByOrganization(ctx, tenant.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to list accounts for bootstrap: %w", err)
	}
	codeToID := make(map[string]int64, len(existing))
	for _, acc := range existing {
		codeToID[acc.Code] = acc.AccountID
	}

	created := 0
	for _, seed := range defaultPCGEAccounts {
		if _, ok := codeToID[seed.code]; ok {
			continue
		}
		var parentID *int64
		if seed.parentCode != "" {
			if id, ok := codeToID[seed.parentCode]; ok {
				parentID = &id
			}
		}
		account, err := s.accountRepo.CreateAccount(ctx, domain.Account{
			Code:           seed.code,
			Name:           seed.name,
			ParentID:       parentID,
			Level:          len(seed.code),
			IsPostable:     len(seed.code) >= postableCodeLength,
			AccountType:    seed.accountType,
			OrganizationID: tenant.OrganizationID,
		})
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", seed.code, err)
		}
		codeToID[seed.code] = account.AccountID
		created++
	}

	if created > 0 {
		logger.Info("Seeded default PCGE accounts", slog.Int("created", created), slog.Int64("organization_id", tenant.OrganizationID))
	}
	return nil
}
