package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	portssvc "github.com/mizanpro/mizan_backend/internal/core/ports/services"
	"github.com/mizanpro/mizan_backend/internal/middleware"
	"github.com/mizanpro/mizan_backend/internal/utils/export"
)

// reportHandler handles HTTP requests for the trial balance and general ledger.
type reportHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportHandler(ls portssvc.LedgerSvcFacade) *reportHandler {
	return &reportHandler{ledgerService: ls}
}

// registerReportRoutes registers reporting routes within a company.
func registerReportRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance", h.getBalance)
		reports.GET("/general-ledger", h.getGeneralLedger)
	}
}

// getBalance godoc
// @Summary Trial balance
// @Description Computes the trial balance over a period from validated entries. Pass format=csv for a CSV export.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period_id query string true "Period ID"
// @Param   format query string false "Output format" Enums(json, csv)
// @Success 200 {object} domain.Balance
// @Failure 400 {object} map[string]string "Missing period"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/balance [get]
func (h *reportHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Query("period_id")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_id query parameter is required"})
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), companyID, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to compute balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	if c.Query("format") == "csv" {
		csvBytes, err := export.BalanceCSV(balance)
		if err != nil {
			logger.Error("Failed to render balance CSV", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render CSV"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="balance_`+periodID+`.csv"`)
		c.Data(http.StatusOK, "text/csv", csvBytes)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// getGeneralLedger godoc
// @Summary General ledger
// @Description Lists validated movements over a period with running balances, grouped by account and optionally filtered to one account. Pass format=csv for a CSV export.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   period_id query string true "Period ID"
// @Param   account_id query string false "Restrict to one account"
// @Param   format query string false "Output format" Enums(json, csv)
// @Success 200 {object} domain.GeneralLedger
// @Failure 400 {object} map[string]string "Missing period"
// @Failure 404 {object} map[string]string "Period or account not found"
// @Failure 500 {object} map[string]string "Failed to compute general ledger"
// @Security BearerAuth
// @Router /companies/{company_id}/reports/general-ledger [get]
func (h *reportHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	periodID := c.Query("period_id")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_id query parameter is required"})
		return
	}

	var accountID *string
	if v := c.Query("account_id"); v != "" {
		accountID = &v
	}

	ledger, err := h.ledgerService.GetGeneralLedger(c.Request.Context(), companyID, periodID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period or account not found"})
		} else {
			logger.Error("Failed to compute general ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute general ledger"})
		}
		return
	}

	if c.Query("format") == "csv" {
		csvBytes, err := export.GeneralLedgerCSV(ledger)
		if err != nil {
			logger.Error("Failed to render general ledger CSV", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render CSV"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="general_ledger_`+periodID+`.csv"`)
		c.Data(http.StatusOK, "text/csv", csvBytes)
		return
	}

	c.JSON(http.StatusOK, ledger)
}
