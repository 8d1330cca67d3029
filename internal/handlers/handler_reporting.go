package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
	"github.com/jangbu-app/jangbu_backend/internal/dto"
	"github.com/jangbu-app/jangbu_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/general-ledger/:id", h.getGeneralLedger)
	}
}

// parsePeriod parses the from/to query dates. Both are required; there is no
// implicit default period.
func parsePeriod(c *gin.Context, params dto.ReportPeriodParams) (time.Time, time.Time, bool) {
	from, err := time.Parse(accounting.DateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "from must be a valid calendar date (YYYY-MM-DD)",
		})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(accounting.DateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "to must be a valid calendar date (YYYY-MM-DD)",
		})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, ok := parsePeriod(c, params)
	if !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	from, to, ok := parsePeriod(c, params.ReportPeriodParams)
	if !ok {
		return
	}

	ledger, err := h.reportingService.GeneralLedger(c.Request.Context(), accountID, from, to, params.Search)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(ledger))
}
