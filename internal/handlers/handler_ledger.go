package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/middleware"
)

// ledgerHandler handles HTTP requests for ledger views and the trial balance.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers reporting routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/ledger", h.getLedger)
		reports.GET("/trial-balance/:period", h.getTrialBalance)
	}
}

const queryDateLayout = "2006-01-02"

func parseQueryDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// getLedger godoc
// @Summary Ledger movements with running balances
// @Description Pages posted movements; running balances continue across pages
// @Tags reports
// @Produce json
// @Param accountCode query string false "Account code filter"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.LedgerResult
// @Router /reports/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	from, ok := parseQueryDate(c, "from")
	if !ok {
		return
	}
	to, ok := parseQueryDate(c, "to")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "25"))

	result, err := h.ledgerService.GetLedger(c.Request.Context(), tenant, dto.LedgerQuery{
		AccountCode: c.Query("accountCode"),
		From:        from,
		To:          to,
		Page:        page,
		Size:        size,
	})
	if err != nil {
		logger.Error("Failed to get ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ledger"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// getTrialBalance godoc
// @Summary Trial balance for a period
// @Description Opening, period movement and closing per account for a YYYY-MM period
// @Tags reports
// @Produce json
// @Param period path string true "Period name (YYYY-MM)"
// @Success 200 {array} domain.TrialBalanceRow
// @Failure 400 {object} map[string]string "Invalid period name"
// @Router /reports/trial-balance/{period} [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	rows, err := h.ledgerService.GetTrialBalance(c.Request.Context(), tenant, c.Param("period"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get trial balance")
		return
	}
	c.JSON(http.StatusOK, rows)
}
