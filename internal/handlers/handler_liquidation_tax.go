package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/SscSPs/purchase_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// liquidationTaxHandler handles HTTP requests on the tax lines of a liquidation.
type liquidationTaxHandler struct {
	taxLineService portssvc.LiquidationTaxSvcFacade
}

func newLiquidationTaxHandler(ts portssvc.LiquidationTaxSvcFacade) *liquidationTaxHandler {
	return &liquidationTaxHandler{taxLineService: ts}
}

// addTaxLines godoc
// @Summary Add tax lines
// @Description Adds tax lines to a liquidation that is not posted
// @Tags liquidation-taxes
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Param   request body dto.AddTaxLinesRequest true "Tax lines"
// @Success 201 {array} dto.TaxLineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 409 {object} ErrorResponse "Liquidation is posted"
// @Failure 500 {object} ErrorResponse "Failed to add tax lines"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID}/taxes [post]
func (h *liquidationTaxHandler) addTaxLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddTaxLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTaxLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	lines, err := h.taxLineService.AddTaxLines(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"), req.TaxLines, userID)
	if err != nil {
		respondError(c, err, "Failed to add tax lines")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaxLineResponses(lines))
}

// previewTaxLine godoc
// @Summary Preview a tax line
// @Description Returns the tax line as it would be stored, with defaults from its tax and the computed amount, without saving it
// @Tags liquidation-taxes
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Param   request body dto.TaxLineRequest true "Tax line"
// @Success 200 {object} dto.TaxLineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 500 {object} ErrorResponse "Failed to preview tax line"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID}/taxes/preview [post]
func (h *liquidationTaxHandler) previewTaxLine(c *gin.Context) {
	var req dto.TaxLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for PreviewTaxLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if _, ok := actingUser(c); !ok {
		return
	}

	line, err := h.taxLineService.PreviewTaxLine(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"), req)
	if err != nil {
		respondError(c, err, "Failed to preview tax line")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxLineResponse(line, 0))
}

// updateTaxLine godoc
// @Summary Update a tax line
// @Description Changes a tax line and recomputes its amount
// @Tags liquidation-taxes
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Param   taxLineID path string true "Tax line ID"
// @Param   request body dto.TaxLineRequest true "Fields to change"
// @Success 200 {object} dto.TaxLineResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Tax line not found"
// @Failure 409 {object} ErrorResponse "Liquidation is posted"
// @Failure 500 {object} ErrorResponse "Failed to update tax line"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID}/taxes/{taxLineID} [put]
func (h *liquidationTaxHandler) updateTaxLine(c *gin.Context) {
	var req dto.TaxLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for UpdateTaxLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	line, err := h.taxLineService.UpdateTaxLine(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"), c.Param("taxLineID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update tax line")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxLineResponse(line, 0))
}

// deleteTaxLine godoc
// @Summary Delete a tax line
// @Description Removes a tax line from a liquidation that is not posted
// @Tags liquidation-taxes
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Param   taxLineID path string true "Tax line ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Tax line not found"
// @Failure 409 {object} ErrorResponse "Liquidation is posted"
// @Failure 500 {object} ErrorResponse "Failed to delete tax line"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID}/taxes/{taxLineID} [delete]
func (h *liquidationTaxHandler) deleteTaxLine(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.taxLineService.DeleteTaxLine(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"), c.Param("taxLineID"), userID); err != nil {
		respondError(c, err, "Failed to delete tax line")
		return
	}
	c.Status(http.StatusNoContent)
}
