package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/handlers"
	"github.com/quipuerp/accounting/internal/middleware"
	"github.com/quipuerp/accounting/internal/platform/config"
)

// --- Mock service facades ---

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) ListTree(ctx context.Context, tenant domain.TenantContext) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}
func (m *MockAccountService) Create(ctx context.Context, tenant domain.TenantContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, tenant, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) Update(ctx context.Context, tenant domain.TenantContext, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, tenant, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) EnsureDefaults(ctx context.Context, tenant domain.TenantContext) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

type MockPostingService struct{ mock.Mock }

func (m *MockPostingService) PostInventoryPurchase(ctx context.Context, tenant domain.TenantContext, sourceID int64) error {
	args := m.Called(ctx, tenant, sourceID)
	return args.Error(0)
}

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) GetLedger(ctx context.Context, tenant domain.TenantContext, q dto.LedgerQuery) (*dto.LedgerResult, error) {
	args := m.Called(ctx, tenant, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LedgerResult), args.Error(1)
}
func (m *MockLedgerService) GetTrialBalance(ctx context.Context, tenant domain.TenantContext, period string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenant, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) ExportJournal(ctx context.Context, tenant domain.TenantContext, period string) (string, error) {
	args := m.Called(ctx, tenant, period)
	return args.String(0), args.Error(1)
}
func (m *MockExportService) ExportLedger(ctx context.Context, tenant domain.TenantContext, period string) (string, error) {
	args := m.Called(ctx, tenant, period)
	return args.String(0), args.Error(1)
}

type MockEntryService struct{ mock.Mock }

func (m *MockEntryService) List(ctx context.Context, tenant domain.TenantContext, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenant, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockEntryService) Get(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) FindByInvoice(ctx context.Context, tenant domain.TenantContext, serie, correlativo string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, serie, correlativo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) CreateDraft(ctx context.Context, tenant domain.TenantContext, req dto.CreateEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) Post(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) Void(ctx context.Context, tenant domain.TenantContext, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenant, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) LockPeriod(ctx context.Context, period string) (*domain.Period, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}
func (m *MockEntryService) UnlockPeriod(ctx context.Context, period string) (*domain.Period, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Period), args.Error(1)
}

// --- Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAccountSvc *MockAccountService
	mockPostingSvc *MockPostingService
	mockLedgerSvc  *MockLedgerService
	mockExportSvc  *MockExportService
	mockEntrySvc   *MockEntryService
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockAccountSvc = new(MockAccountService)
	s.mockPostingSvc = new(MockPostingService)
	s.mockLedgerSvc = new(MockLedgerService)
	s.mockExportSvc = new(MockExportService)
	s.mockEntrySvc = new(MockEntryService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Account: s.mockAccountSvc,
		Posting: s.mockPostingSvc,
		Ledger:  s.mockLedgerSvc,
		Export:  s.mockExportSvc,
		Entry:   s.mockEntrySvc,
	})
}

func (s *HandlerTestSuite) request(method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(middleware.HeaderOrganizationID, "1")
	req.Header.Set(middleware.HeaderCompanyID, "7")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) TestPostInventoryPurchase_Created() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockPostingSvc.On("PostInventoryPurchase", mock.Anything, tenant, int64(42)).Return(nil).Once()

	w := s.request(http.MethodPost, "/api/v1/postings/inventory/42", nil)
	assert.Equal(s.T(), http.StatusCreated, w.Code)
	s.mockPostingSvc.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestPostInventoryPurchase_AlreadyPostedIsConflict() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockPostingSvc.On("PostInventoryPurchase", mock.Anything, tenant, int64(42)).
		Return(apperrors.ErrAlreadyPosted).Once()

	w := s.request(http.MethodPost, "/api/v1/postings/inventory/42", nil)
	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestPostInventoryPurchase_MissingTenantHeader() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/postings/inventory/42", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	s.mockPostingSvc.AssertNotCalled(s.T(), "PostInventoryPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreateDraft_UnbalancedIsBadRequest() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockEntrySvc.On("CreateDraft", mock.Anything, tenant, mock.AnythingOfType("dto.CreateEntryRequest")).
		Return(nil, apperrors.ErrUnbalanced).Once()

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Lines: []dto.EntryLineRequest{
			{AccountCode: "6011", Debit: decimal.NewFromInt(100)},
			{AccountCode: "1011", Credit: decimal.NewFromInt(90)},
		},
	})
	w := s.request(http.MethodPost, "/api/v1/entries", body)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestGetEntry_NotFound() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockEntrySvc.On("Get", mock.Anything, tenant, int64(99)).
		Return(nil, apperrors.ErrNotFound).Once()

	w := s.request(http.MethodGet, "/api/v1/entries/99", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListEntries_InvalidPeriodRejectedByBinding() {
	w := s.request(http.MethodGet, "/api/v1/entries?period=febrero", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	s.mockEntrySvc.AssertNotCalled(s.T(), "List", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestExportJournal_ServesAttachment() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockExportSvc.On("ExportJournal", mock.Anything, tenant, "2025-02").
		Return("20123456789|2025|02|M000007|000001|10/02/2025", nil).Once()

	w := s.request(http.MethodGet, "/api/v1/export/journal/2025-02", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Disposition"), "libro_diario_202502.txt")
	assert.Contains(s.T(), w.Body.String(), "M000007")
}

func (s *HandlerTestSuite) TestExportJournal_BadPeriodIsBadRequest() {
	tenant := domain.TenantContext{OrganizationID: 1, CompanyID: 7}
	s.mockExportSvc.On("ExportJournal", mock.Anything, tenant, "2025-13").
		Return("", apperrors.NewAppError(400, "period must be YYYY-MM", apperrors.ErrValidation)).Once()

	w := s.request(http.MethodGet, "/api/v1/export/journal/2025-13", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestLockPeriod() {
	s.mockEntrySvc.On("LockPeriod", mock.Anything, "2025-02").
		Return(&domain.Period{PeriodID: 3, Name: "2025-02", Status: domain.PeriodLocked}, nil).Once()

	w := s.request(http.MethodPost, "/api/v1/periods/2025-02/lock", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var period domain.Period
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &period))
	assert.Equal(s.T(), domain.PeriodLocked, period.Status)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
