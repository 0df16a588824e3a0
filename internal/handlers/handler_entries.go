package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/dto"
	"github.com/quipuerp/accounting/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries and period locks.
type entryHandler struct {
	entryService   portssvc.EntrySvcFacade
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade, ps portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{entryService: es, postingService: ps}
}

// registerEntryRoutes registers journal entry, posting and period routes.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(entryService, postingService)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.GET("/by-invoice", h.findByInvoice)
		entries.POST("", h.createDraft)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/void", h.voidEntry)
	}

	rg.POST("/postings/inventory/:sourceID", h.postInventoryPurchase)

	periodsGroup := rg.Group("/periods")
	{
		periodsGroup.POST("/:name/lock", h.lockPeriod)
		periodsGroup.POST("/:name/unlock", h.unlockPeriod)
	}
}

// listEntries godoc
// @Summary List journal entries
// @Description Pages entries newest-first, optionally filtered by period or date range
// @Tags entries
// @Produce json
// @Param period query string false "Period name (YYYY-MM)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.entryService.List(c.Request.Context(), tenant, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, err := h.entryService.Get(c.Request.Context(), tenant, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// findByInvoice godoc
// @Summary Find the entry created for a supplier invoice
// @Tags entries
// @Produce json
// @Param serie query string true "Invoice serie"
// @Param correlativo query string true "Invoice correlative"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} map[string]string "No entry for invoice"
// @Router /entries/by-invoice [get]
func (h *entryHandler) findByInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	entry, err := h.entryService.FindByInvoice(c.Request.Context(), tenant, c.Query("serie"), c.Query("correlativo"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to find entry by invoice")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// createDraft godoc
// @Summary Create a manual draft entry
// @Description Stores a balanced entry in DRAFT status; debits must equal credits
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} map[string]string "Unbalanced or invalid entry"
// @Failure 409 {object} map[string]string "Period locked"
// @Router /entries [post]
func (h *entryHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateDraft(c.Request.Context(), tenant, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// postEntry godoc
// @Summary Post a draft entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} map[string]string "Entry is not a draft"
// @Failure 409 {object} map[string]string "Period locked"
// @Router /entries/{id}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, err := h.entryService.Post(c.Request.Context(), tenant, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// voidEntry godoc
// @Summary Void a posted entry
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 400 {object} map[string]string "Entry is not posted"
// @Failure 409 {object} map[string]string "Period locked"
// @Router /entries/{id}/void [post]
func (h *entryHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, err := h.entryService.Void(c.Request.Context(), tenant, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to void entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// postInventoryPurchase godoc
// @Summary Post the journal entry for an inventory purchase
// @Description Creates the balanced purchase entry for an inventory event; retries are conflict-safe
// @Tags postings
// @Produce json
// @Param sourceID path int true "Inventory entry ID"
// @Success 201 {object} map[string]string "Posted"
// @Failure 404 {object} map[string]string "Inventory entry not found"
// @Failure 409 {object} map[string]string "Already posted or period locked"
// @Router /postings/inventory/{sourceID} [post]
func (h *entryHandler) postInventoryPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	sourceID, err := strconv.ParseInt(c.Param("sourceID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source id"})
		return
	}

	if err := h.postingService.PostInventoryPurchase(c.Request.Context(), tenant, sourceID); err != nil {
		respondServiceError(c, logger, err, "Failed to post purchase")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "posted"})
}

// lockPeriod godoc
// @Summary Lock an accounting period
// @Tags periods
// @Produce json
// @Param name path string true "Period name (YYYY-MM)"
// @Success 200 {object} domain.Period
// @Failure 400 {object} map[string]string "Invalid period name"
// @Router /periods/{name}/lock [post]
func (h *entryHandler) lockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, err := h.entryService.LockPeriod(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to lock period")
		return
	}
	c.JSON(http.StatusOK, period)
}

// unlockPeriod godoc
// @Summary Unlock an accounting period
// @Tags periods
// @Produce json
// @Param name path string true "Period name (YYYY-MM)"
// @Success 200 {object} domain.Period
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{name}/unlock [post]
func (h *entryHandler) unlockPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, err := h.entryService.UnlockPeriod(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to unlock period")
		return
	}
	c.JSON(http.StatusOK, period)
}
