package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	portssvc "github.com/mizanpro/mizan_backend/internal/core/ports/services"
	"github.com/mizanpro/mizan_backend/internal/dto"
	"github.com/mizanpro/mizan_backend/internal/middleware"
)

// vatHandler handles HTTP requests related to VAT lines and declarations.
type vatHandler struct {
	vatService portssvc.VATSvcFacade
}

func newVATHandler(vs portssvc.VATSvcFacade) *vatHandler {
	return &vatHandler{vatService: vs}
}

// registerVATRoutes registers routes related to VAT within a company.
func registerVATRoutes(rg *gin.RouterGroup, vatService portssvc.VATSvcFacade) {
	h := newVATHandler(vatService)

	vat := rg.Group("/vat")
	{
		vat.POST("/lines", h.addVATLine)
		vat.DELETE("/lines/:vat_line_id", h.deleteVATLine)

		declarations := vat.Group("/declarations")
		{
			declarations.POST("", h.createDeclaration)
			declarations.GET("", h.listDeclarations)
			declarations.GET("/:declaration_id", h.getDeclaration)
			declarations.POST("/:declaration_id/recalculate", h.recalculateDeclaration)
			declarations.POST("/:declaration_id/adjustments", h.addAdjustment)
			declarations.POST("/:declaration_id/status", h.changeDeclarationStatus)
			declarations.POST("/:declaration_id/lock", h.lockDeclaration)
			declarations.GET("/:declaration_id/xml", h.downloadSimplTVAXML)
		}
	}
}

// addVATLine godoc
// @Summary Record a VAT line
// @Description Records one taxable operation, collected or deductible. The VAT amount is computed from the base when omitted.
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   line body dto.CreateVATLineRequest true "VAT line details"
// @Success 201 {object} dto.VATLineResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to record VAT line"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/lines [post]
func (h *vatHandler) addVATLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateVATLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddVATLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	line, err := h.vatService.AddVATLine(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record VAT line", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record VAT line"})
		}
		return
	}

	logger.Info("VAT line recorded", slog.String("vat_line_id", line.VATLineID), slog.String("type", string(line.Type)))
	c.JSON(http.StatusCreated, dto.ToVATLineResponse(line))
}

// deleteVATLine godoc
// @Summary Delete a VAT line
// @Tags vat
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   vat_line_id path string true "VAT line ID"
// @Success 204 "VAT line deleted"
// @Failure 404 {object} map[string]string "VAT line not found"
// @Failure 409 {object} map[string]string "VAT line belongs to a locked declaration"
// @Failure 500 {object} map[string]string "Failed to delete VAT line"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/lines/{vat_line_id} [delete]
func (h *vatHandler) deleteVATLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	vatLineID := c.Param("vat_line_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.vatService.DeleteVATLine(c.Request.Context(), companyID, vatLineID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "VAT line not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to delete VAT line", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete VAT line"})
		}
		return
	}

	logger.Info("VAT line deleted", slog.String("vat_line_id", vatLineID))
	c.Status(http.StatusNoContent)
}

// createDeclaration godoc
// @Summary Open a VAT declaration
// @Description Opens a declaration over a date range, monthly or quarterly
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration body dto.CreateDeclarationRequest true "Declaration details"
// @Success 201 {object} dto.DeclarationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Declaration overlaps an existing one"
// @Failure 500 {object} map[string]string "Failed to create declaration"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations [post]
func (h *vatHandler) createDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateDeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDeclaration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decl, err := h.vatService.CreateDeclaration(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create declaration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create declaration"})
		}
		return
	}

	logger.Info("Declaration created", slog.String("declaration_id", decl.DeclarationID))
	c.JSON(http.StatusCreated, dto.ToDeclarationResponse(decl))
}

// getDeclaration godoc
// @Summary Get a declaration by ID
// @Tags vat
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Success 200 {object} dto.DeclarationResponse
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 500 {object} map[string]string "Failed to retrieve declaration"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id} [get]
func (h *vatHandler) getDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	decl, err := h.vatService.GetDeclarationByID(c.Request.Context(), companyID, declarationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else {
			logger.Error("Failed to get declaration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve declaration"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDeclarationResponse(decl))
}

// listDeclarations godoc
// @Summary List declarations
// @Tags vat
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {array} dto.DeclarationResponse
// @Failure 500 {object} map[string]string "Failed to list declarations"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations [get]
func (h *vatHandler) listDeclarations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	decls, err := h.vatService.ListDeclarations(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list declarations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list declarations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDeclarationResponses(decls))
}

// recalculateDeclaration godoc
// @Summary Recalculate a declaration
// @Description Rebuilds the per-rate buckets from the VAT lines in the declaration's range, applies adjustments and the carried credit, and recomputes the net position
// @Tags vat
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Success 200 {object} dto.DeclarationResponse
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 409 {object} map[string]string "Declaration is locked or submitted"
// @Failure 500 {object} map[string]string "Failed to recalculate declaration"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id}/recalculate [post]
func (h *vatHandler) recalculateDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decl, err := h.vatService.RecalculateDeclaration(c.Request.Context(), companyID, declarationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to recalculate declaration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recalculate declaration"})
		}
		return
	}

	logger.Info("Declaration recalculated", slog.String("declaration_id", decl.DeclarationID))
	c.JSON(http.StatusOK, dto.ToDeclarationResponse(decl))
}

// addAdjustment godoc
// @Summary Add a manual adjustment
// @Description Records a signed correction on a declaration and recalculates its totals
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Param   adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 200 {object} dto.DeclarationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 409 {object} map[string]string "Declaration is locked or submitted"
// @Failure 500 {object} map[string]string "Failed to add adjustment"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id}/adjustments [post]
func (h *vatHandler) addAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decl, err := h.vatService.AddAdjustment(c.Request.Context(), companyID, declarationID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to add adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add adjustment"})
		}
		return
	}

	logger.Info("Adjustment added", slog.String("declaration_id", decl.DeclarationID))
	c.JSON(http.StatusOK, dto.ToDeclarationResponse(decl))
}

// changeDeclarationStatus godoc
// @Summary Change a declaration's status
// @Description Moves a declaration through its lifecycle. Submitting locks the declaration.
// @Tags vat
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Param   status body dto.ChangeDeclarationStatusRequest true "Target status"
// @Success 200 {object} dto.DeclarationResponse
// @Failure 400 {object} map[string]string "Invalid input format or transition"
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 409 {object} map[string]string "Transition not allowed from the current status"
// @Failure 500 {object} map[string]string "Failed to change status"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id}/status [post]
func (h *vatHandler) changeDeclarationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	var req dto.ChangeDeclarationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeDeclarationStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	decl, err := h.vatService.ChangeDeclarationStatus(c.Request.Context(), companyID, declarationID, req.Status, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to change declaration status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		}
		return
	}

	logger.Info("Declaration status changed", slog.String("declaration_id", decl.DeclarationID), slog.String("status", string(decl.Status)))
	c.JSON(http.StatusOK, dto.ToDeclarationResponse(decl))
}

// lockDeclaration godoc
// @Summary Lock a declaration
// @Description Freezes a declaration against further edits and recalculation
// @Tags vat
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Success 204 "Declaration locked"
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 409 {object} map[string]string "Declaration is already locked"
// @Failure 500 {object} map[string]string "Failed to lock declaration"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id}/lock [post]
func (h *vatHandler) lockDeclaration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.vatService.LockDeclaration(c.Request.Context(), companyID, declarationID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to lock declaration", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lock declaration"})
		}
		return
	}

	logger.Info("Declaration locked", slog.String("declaration_id", declarationID))
	c.Status(http.StatusNoContent)
}

// downloadSimplTVAXML godoc
// @Summary Download the SIMPL-TVA XML
// @Description Renders the declaration as a SIMPL-TVA XML file for the tax portal
// @Tags vat
// @Produce  xml
// @Param   company_id path string true "Company ID"
// @Param   declaration_id path string true "Declaration ID"
// @Success 200 {string} string "SIMPL-TVA XML document"
// @Failure 404 {object} map[string]string "Declaration not found"
// @Failure 500 {object} map[string]string "Failed to generate XML"
// @Security BearerAuth
// @Router /companies/{company_id}/vat/declarations/{declaration_id}/xml [get]
func (h *vatHandler) downloadSimplTVAXML(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	declarationID := c.Param("declaration_id")

	xmlBytes, err := h.vatService.GenerateSimplTVAXML(c.Request.Context(), companyID, declarationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Declaration not found"})
		} else {
			logger.Error("Failed to generate SIMPL-TVA XML", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate XML"})
		}
		return
	}

	logger.Info("SIMPL-TVA XML generated", slog.String("declaration_id", declarationID))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "simpl_tva_"+declarationID+".xml"))
	c.Data(http.StatusOK, "application/xml", xmlBytes)
}
