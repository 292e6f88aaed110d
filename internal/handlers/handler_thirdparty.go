package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mizanpro/mizan_backend/internal/apperrors"
	portssvc "github.com/mizanpro/mizan_backend/internal/core/ports/services"
	"github.com/mizanpro/mizan_backend/internal/dto"
	"github.com/mizanpro/mizan_backend/internal/middleware"
)

// thirdPartyHandler handles HTTP requests related to customers and suppliers.
type thirdPartyHandler struct {
	thirdPartyService portssvc.ThirdPartySvcFacade
}

func newThirdPartyHandler(ts portssvc.ThirdPartySvcFacade) *thirdPartyHandler {
	return &thirdPartyHandler{thirdPartyService: ts}
}

// registerThirdPartyRoutes registers routes related to third parties within
// a company.
func registerThirdPartyRoutes(rg *gin.RouterGroup, thirdPartyService portssvc.ThirdPartySvcFacade) {
	h := newThirdPartyHandler(thirdPartyService)

	parties := rg.Group("/third-parties")
	{
		parties.POST("", h.createThirdParty)
		parties.GET("", h.listThirdParties)
		parties.GET("/:third_party_id", h.getThirdParty)
		parties.PUT("/:third_party_id", h.updateThirdParty)
		parties.DELETE("/:third_party_id", h.deactivateThirdParty)
	}
}

// createThirdParty godoc
// @Summary Create a third party
// @Description Registers a customer or supplier. The code is assigned from the CLI or SUP sequence.
// @Tags third-parties
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   thirdParty body dto.CreateThirdPartyRequest true "Third party details"
// @Success 201 {object} dto.ThirdPartyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Third party already exists"
// @Failure 500 {object} map[string]string "Failed to create third party"
// @Security BearerAuth
// @Router /companies/{company_id}/third-parties [post]
func (h *thirdPartyHandler) createThirdParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateThirdPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateThirdParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create third party", slog.String("third_party_name", req.Name))

	tp, err := h.thirdPartyService.CreateThirdParty(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create third party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create third party"})
		}
		return
	}

	logger.Info("Third party created", slog.String("third_party_id", tp.ThirdPartyID), slog.String("code", tp.Code))
	c.JSON(http.StatusCreated, dto.ToThirdPartyResponse(tp))
}

// getThirdParty godoc
// @Summary Get a third party by ID
// @Tags third-parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   third_party_id path string true "Third party ID"
// @Success 200 {object} dto.ThirdPartyResponse
// @Failure 404 {object} map[string]string "Third party not found"
// @Failure 500 {object} map[string]string "Failed to retrieve third party"
// @Security BearerAuth
// @Router /companies/{company_id}/third-parties/{third_party_id} [get]
func (h *thirdPartyHandler) getThirdParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	thirdPartyID := c.Param("third_party_id")

	tp, err := h.thirdPartyService.GetThirdPartyByID(c.Request.Context(), companyID, thirdPartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Third party not found"})
		} else {
			logger.Error("Failed to get third party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve third party"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToThirdPartyResponse(tp))
}

// listThirdParties godoc
// @Summary List third parties
// @Description Lists the company's third parties in code order, optionally filtered by type
// @Tags third-parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   type query string false "Type filter" Enums(CLIENT, SUPPLIER, BOTH)
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ThirdPartyResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list third parties"
// @Security BearerAuth
// @Router /companies/{company_id}/third-parties [get]
func (h *thirdPartyHandler) listThirdParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListThirdPartiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	parties, err := h.thirdPartyService.ListThirdParties(c.Request.Context(), companyID, params)
	if err != nil {
		logger.Error("Failed to list third parties", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list third parties"})
		return
	}

	c.JSON(http.StatusOK, dto.ToThirdPartyResponses(parties))
}

// updateThirdParty godoc
// @Summary Update a third party
// @Description Updates a third party's mutable fields. Type and code are immutable.
// @Tags third-parties
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   third_party_id path string true "Third party ID"
// @Param   thirdParty body dto.UpdateThirdPartyRequest true "Fields to update"
// @Success 200 {object} dto.ThirdPartyResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Third party not found"
// @Failure 500 {object} map[string]string "Failed to update third party"
// @Security BearerAuth
// @Router /companies/{company_id}/third-parties/{third_party_id} [put]
func (h *thirdPartyHandler) updateThirdParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	thirdPartyID := c.Param("third_party_id")

	var req dto.UpdateThirdPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateThirdParty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tp, err := h.thirdPartyService.UpdateThirdParty(c.Request.Context(), companyID, thirdPartyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Third party not found"})
		} else {
			logger.Error("Failed to update third party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update third party"})
		}
		return
	}

	logger.Info("Third party updated", slog.String("third_party_id", tp.ThirdPartyID))
	c.JSON(http.StatusOK, dto.ToThirdPartyResponse(tp))
}

// deactivateThirdParty godoc
// @Summary Deactivate a third party
// @Description Marks a third party inactive. Third parties with documents are never deleted.
// @Tags third-parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   third_party_id path string true "Third party ID"
// @Success 204 "Third party deactivated"
// @Failure 404 {object} map[string]string "Third party not found"
// @Failure 500 {object} map[string]string "Failed to deactivate third party"
// @Security BearerAuth
// @Router /companies/{company_id}/third-parties/{third_party_id} [delete]
func (h *thirdPartyHandler) deactivateThirdParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	thirdPartyID := c.Param("third_party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.thirdPartyService.DeactivateThirdParty(c.Request.Context(), companyID, thirdPartyID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Third party not found"})
		} else {
			logger.Error("Failed to deactivate third party", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate third party"})
		}
		return
	}

	logger.Info("Third party deactivated", slog.String("third_party_id", thirdPartyID))
	c.Status(http.StatusNoContent)
}
