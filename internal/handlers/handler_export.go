package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quipuerp/accounting/internal/core/domain"
	portssvc "github.com/quipuerp/accounting/internal/core/ports/services"
	"github.com/quipuerp/accounting/internal/middleware"
)

// exportHandler serves the regulatory plain-text book downloads.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers the book export routes.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	export := rg.Group("/export")
	{
		export.GET("/journal/:period", h.exportJournal)
		export.GET("/ledger/:period", h.exportLedger)
	}
}

// exportJournal godoc
// @Summary Export the journal book
// @Description Pipe-delimited journal book for a YYYY-MM period; empty periods yield an empty file
// @Tags export
// @Produce plain
// @Param period path string true "Period name (YYYY-MM)"
// @Success 200 {string} string "Book contents"
// @Failure 400 {object} map[string]string "Invalid period name"
// @Router /export/journal/{period} [get]
func (h *exportHandler) exportJournal(c *gin.Context) {
	h.serveBook(c, "diario", h.exportService.ExportJournal)
}

// exportLedger godoc
// @Summary Export the ledger book
// @Description Pipe-delimited ledger book for a YYYY-MM period, grouped by account
// @Tags export
// @Produce plain
// @Param period path string true "Period name (YYYY-MM)"
// @Success 200 {string} string "Book contents"
// @Failure 400 {object} map[string]string "Invalid period name"
// @Router /export/ledger/{period} [get]
func (h *exportHandler) exportLedger(c *gin.Context) {
	h.serveBook(c, "mayor", h.exportService.ExportLedger)
}

func (h *exportHandler) serveBook(c *gin.Context, book string, render func(context.Context, domain.TenantContext, string) (string, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenant, ok := middleware.GetTenantFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant context missing"})
		return
	}

	period := c.Param("period")
	content, err := render(c.Request.Context(), tenant, period)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export book")
		return
	}

	filename := fmt.Sprintf("libro_%s_%s.txt", book, strings.ReplaceAll(period, "-", ""))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
