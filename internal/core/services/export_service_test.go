package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/quipuerp/accounting/internal/apperrors"
	"github.com/quipuerp/accounting/internal/core/domain"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/core/services"
)

type ExportServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.ExportSvcFacade
	loc             *time.Location
	tenant          domain.TenantContext
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.loc = time.FixedZone("-05", -5*3600)
	s.service = services.NewExportService(s.mockJournalRepo, s.mockCompanyRepo, s.loc)
	s.tenant = domain.TenantContext{OrganizationID: 1, CompanyID: 7}
}

func (s *ExportServiceTestSuite) postedEntries() []domain.JournalEntry {
	d1 := time.Date(2025, 2, 10, 17, 0, 0, 0, time.UTC) // Feb 10 noon in -05
	d2 := time.Date(2025, 2, 15, 17, 0, 0, 0, time.UTC)
	return []domain.JournalEntry{
		{
			EntryID:     7,
			Date:        d1,
			Description: "Compra Laptop HP 15 S/N SN-001 F001-000123",
			Serie:       "F001",
			Correlativo: "000123",
			Status:      domain.StatusPosted,
			Lines: []domain.JournalLine{
				{LineID: 1, AccountCode: "6011", Debit: decimal.NewFromInt(100)},
				{LineID: 2, AccountCode: "4011", Description: "IGV", Debit: decimal.NewFromInt(18)},
				{LineID: 3, AccountCode: "1011", Description: "Payment CASH - EFECTIVO", Credit: decimal.NewFromInt(118)},
			},
		},
		{
			EntryID: 9,
			Date:    d2,
			Status:  domain.StatusPosted,
			Lines: []domain.JournalLine{
				{LineID: 4, AccountCode: "6011", Debit: decimal.NewFromInt(50)},
				{LineID: 5, AccountCode: "4211", Credit: decimal.NewFromInt(50)},
			},
		},
	}
}

func (s *ExportServiceTestSuite) TestExportJournal_SequenceAndLayout() {
	ctx := context.Background()
	s.mockJournalRepo.On("ListEntriesForExport", ctx, s.tenant, mock.Anything, mock.Anything).
		Return(s.postedEntries(), nil).Once()
	s.mockCompanyRepo.On("FindCompany", ctx, int64(7)).
		Return(&domain.Company{CompanyID: 7, TaxID: "20123456789"}, nil).Once()

	out, err := s.service.ExportJournal(ctx, s.tenant, "2025-02")
	require.NoError(s.T(), err)
	require.False(s.T(), strings.HasSuffix(out, "\n"))

	rows := strings.Split(out, "\n")
	require.Len(s.T(), rows, 5)

	for i, row := range rows {
		fields := strings.Split(row, "|")
		require.Len(s.T(), fields, 20, "row %d", i)
		assert.Equal(s.T(), "20123456789", fields[0])
		assert.Equal(s.T(), "2025", fields[1])
		assert.Equal(s.T(), "02", fields[2])
		assert.Equal(s.T(), "PEN", fields[14])
	}

	// One monotonic counter across the file, not reset per entry.
	for i, row := range rows {
		fields := strings.Split(row, "|")
		assert.Equal(s.T(), []string{"000001", "000002", "000003", "000004", "000005"}[i], fields[4])
	}

	first := strings.Split(rows[0], "|")
	assert.Equal(s.T(), "M000007", first[3])
	assert.Equal(s.T(), "10/02/2025", first[5])
	assert.Equal(s.T(), "F001", first[7])
	assert.Equal(s.T(), "000123", first[8])
	assert.Equal(s.T(), "6011", first[10])
	assert.Equal(s.T(), "100.00", first[12])
	assert.Equal(s.T(), "0.00", first[13])

	// Lines without their own glosa inherit the entry's; entries without a
	// description fall back to the entry code.
	assert.Contains(s.T(), first[11], "Compra Laptop HP 15")
	fourth := strings.Split(rows[3], "|")
	assert.Equal(s.T(), "M000009", fourth[3])
	assert.Equal(s.T(), "Entry M000009", fourth[11])
}

func (s *ExportServiceTestSuite) TestExportJournal_EmptyPeriod() {
	ctx := context.Background()
	s.mockJournalRepo.On("ListEntriesForExport", ctx, s.tenant, mock.Anything, mock.Anything).
		Return([]domain.JournalEntry{}, nil).Once()

	out, err := s.service.ExportJournal(ctx, s.tenant, "2025-03")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "", out)
	s.mockCompanyRepo.AssertNotCalled(s.T(), "FindCompany", mock.Anything, mock.Anything)
}

func (s *ExportServiceTestSuite) TestExportJournal_MissingCompanyUsesPlaceholderRUC() {
	ctx := context.Background()
	s.mockJournalRepo.On("ListEntriesForExport", ctx, s.tenant, mock.Anything, mock.Anything).
		Return(s.postedEntries(), nil).Once()
	s.mockCompanyRepo.On("FindCompany", ctx, int64(7)).
		Return(nil, apperrors.ErrNotFound).Once()

	out, err := s.service.ExportJournal(ctx, s.tenant, "2025-02")
	require.NoError(s.T(), err)
	for _, row := range strings.Split(out, "\n") {
		assert.True(s.T(), strings.HasPrefix(row, domain.PlaceholderTaxID+"|"))
	}
}

func (s *ExportServiceTestSuite) TestExportJournal_BadPeriod() {
	ctx := context.Background()
	_, err := s.service.ExportJournal(ctx, s.tenant, "2025/02")
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ExportServiceTestSuite) TestExportLedger_GroupedRows() {
	ctx := context.Background()
	lines := []domain.LedgerLine{
		{LineID: 2, EntryID: 7, AccountCode: "4011", Description: "IGV", Date: time.Date(2025, 2, 10, 17, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(18), Credit: decimal.Zero},
		{LineID: 1, EntryID: 7, AccountCode: "6011", Date: time.Date(2025, 2, 10, 17, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{LineID: 4, EntryID: 9, AccountCode: "6011", Date: time.Date(2025, 2, 15, 17, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(50), Credit: decimal.Zero},
	}
	s.mockJournalRepo.On("ListPostedLinesForExport", ctx, s.tenant, mock.Anything, mock.Anything).
		Return(lines, nil).Once()
	s.mockCompanyRepo.On("FindCompany", ctx, int64(7)).
		Return(&domain.Company{CompanyID: 7, TaxID: "20123456789"}, nil).Once()

	out, err := s.service.ExportLedger(ctx, s.tenant, "2025-02")
	require.NoError(s.T(), err)

	rows := strings.Split(out, "\n")
	require.Len(s.T(), rows, 3)

	first := strings.Split(rows[0], "|")
	require.Len(s.T(), first, 17)
	assert.Equal(s.T(), "4011", first[3])
	assert.Equal(s.T(), "M000007", first[5])
	assert.Equal(s.T(), "000001", first[6])
	assert.Equal(s.T(), "10/02/2025", first[7])
	assert.Equal(s.T(), "IGV", first[8])
	assert.Equal(s.T(), "18.00", first[9])

	last := strings.Split(rows[2], "|")
	assert.Equal(s.T(), "000003", last[6])
	assert.Equal(s.T(), "M000009", last[5])
}

func (s *ExportServiceTestSuite) TestExportLedger_EmptyPeriod() {
	ctx := context.Background()
	s.mockJournalRepo.On("ListPostedLinesForExport", ctx, s.tenant, mock.Anything, mock.Anything).
		Return([]domain.LedgerLine{}, nil).Once()

	out, err := s.service.ExportLedger(ctx, s.tenant, "2025-03")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "", out)
}

func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
