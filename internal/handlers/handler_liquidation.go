package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/purchase_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/purchase_settlement_app/internal/dto"
	"github.com/SscSPs/purchase_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// liquidationHandler handles HTTP requests related to liquidations.
type liquidationHandler struct {
	liquidationService portssvc.LiquidationSvcFacade
}

func newLiquidationHandler(ls portssvc.LiquidationSvcFacade) *liquidationHandler {
	return &liquidationHandler{liquidationService: ls}
}

// createLiquidation godoc
// @Summary Create a liquidation
// @Description Creates a draft liquidation, optionally with tax lines
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidation body dto.CreateLiquidationRequest true "Liquidation details"
// @Success 201 {object} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse "Invalid input or configuration"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Company not found"
// @Failure 500 {object} ErrorResponse "Failed to create liquidation"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations [post]
func (h *liquidationHandler) createLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLiquidation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	liquidation, err := h.liquidationService.CreateLiquidation(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create liquidation")
		return
	}

	logger.Info("Liquidation created", slog.String("liquidation_id", liquidation.LiquidationID))
	c.JSON(http.StatusCreated, dto.ToLiquidationResponse(liquidation))
}

// getLiquidation godoc
// @Summary Get a liquidation
// @Description Retrieves a liquidation with its ordered tax lines and derived amounts
// @Tags liquidations
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve liquidation"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID} [get]
func (h *liquidationHandler) getLiquidation(c *gin.Context) {
	if _, ok := actingUser(c); !ok {
		return
	}

	detail, err := h.liquidationService.GetLiquidation(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve liquidation")
		return
	}
	c.JSON(http.StatusOK, dto.ToLiquidationDetailResponse(detail))
}

// listLiquidations godoc
// @Summary List liquidations
// @Description Lists liquidations of a company, newest liquidation date first. Amount filters use "<field><op><value>".
// @Tags liquidations
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   state query string false "Workflow state"
// @Param   type query string false "Liquidation type"
// @Param   partyID query string false "Party ID"
// @Param   number query string false "Number substring"
// @Param   dateFrom query string false "Liquidation date lower bound (YYYY-MM-DD)"
// @Param   dateTo query string false "Liquidation date upper bound (YYYY-MM-DD)"
// @Param   amount query []string false "Amount filter, e.g. total_amount>=100" collectionFormat(multi)
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Param   pageToken query string false "Token from a previous page, overrides offset"
// @Success 200 {object} dto.ListLiquidationsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list liquidations"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations [get]
func (h *liquidationHandler) listLiquidations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := actingUser(c); !ok {
		return
	}

	var params dto.ListLiquidationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListLiquidations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.liquidationService.ListLiquidations(c.Request.Context(), c.Param("companyID"), params)
	if err != nil {
		respondError(c, err, "Failed to list liquidations")
		return
	}
	logger.Debug("Liquidations listed", slog.Int("count", len(resp.Liquidations)))
	c.JSON(http.StatusOK, resp)
}

// updateLiquidation godoc
// @Summary Update a draft liquidation
// @Description Changes header fields of a draft liquidation
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Param   liquidation body dto.UpdateLiquidationRequest true "Fields to change"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 409 {object} ErrorResponse "Liquidation is not a draft"
// @Failure 500 {object} ErrorResponse "Failed to update liquidation"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID} [put]
func (h *liquidationHandler) updateLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLiquidation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	liquidation, err := h.liquidationService.UpdateLiquidation(c.Request.Context(), c.Param("companyID"), c.Param("liquidationID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update liquidation")
		return
	}
	c.JSON(http.StatusOK, dto.ToLiquidationResponse(liquidation))
}

// deleteLiquidation godoc
// @Summary Delete a liquidation
// @Description Deletes a liquidation that is not posted, with its tax lines
// @Tags liquidations
// @Param   companyID path string true "Company ID"
// @Param   liquidationID path string true "Liquidation ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 409 {object} ErrorResponse "Liquidation is posted"
// @Failure 500 {object} ErrorResponse "Failed to delete liquidation"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/{liquidationID} [delete]
func (h *liquidationHandler) deleteLiquidation(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	ids := []string{c.Param("liquidationID")}
	if err := h.liquidationService.DeleteLiquidations(c.Request.Context(), c.Param("companyID"), ids, userID); err != nil {
		respondError(c, err, "Failed to delete liquidation")
		return
	}
	c.Status(http.StatusNoContent)
}

// batch binds a LiquidationIDsRequest and the acting user.
func (h *liquidationHandler) batch(c *gin.Context) (dto.LiquidationIDsRequest, string, bool) {
	var req dto.LiquidationIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind liquidation ids", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return req, "", false
	}
	userID, ok := actingUser(c)
	return req, userID, ok
}

// deleteLiquidations godoc
// @Summary Delete liquidations
// @Description Deletes the liquidations and their tax lines. Nothing is deleted if any of them is posted.
// @Tags liquidations
// @Accept  json
// @Param   companyID path string true "Company ID"
// @Param   request body dto.LiquidationIDsRequest true "Liquidation IDs"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 409 {object} ErrorResponse "A liquidation is posted"
// @Failure 500 {object} ErrorResponse "Failed to delete liquidations"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/delete [post]
func (h *liquidationHandler) deleteLiquidations(c *gin.Context) {
	req, userID, ok := h.batch(c)
	if !ok {
		return
	}
	if err := h.liquidationService.DeleteLiquidations(c.Request.Context(), c.Param("companyID"), req.LiquidationIDs, userID); err != nil {
		respondError(c, err, "Failed to delete liquidations")
		return
	}
	c.Status(http.StatusNoContent)
}

// validateLiquidations godoc
// @Summary Validate liquidations
// @Description Moves draft liquidations to validated
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   request body dto.LiquidationIDsRequest true "Liquidation IDs"
// @Success 200 {array} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Invalid state transition"
// @Failure 500 {object} ErrorResponse "Failed to validate liquidations"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/validate [post]
func (h *liquidationHandler) validateLiquidations(c *gin.Context) {
	req, userID, ok := h.batch(c)
	if !ok {
		return
	}
	liquidations, err := h.liquidationService.ValidateLiquidations(c.Request.Context(), c.Param("companyID"), req.LiquidationIDs, userID)
	if err != nil {
		respondError(c, err, "Failed to validate liquidations")
		return
	}
	c.JSON(http.StatusOK, dto.ToLiquidationResponses(liquidations))
}

// postLiquidations godoc
// @Summary Post liquidations
// @Description Numbers the liquidations, creates and posts their moves, and marks them posted in one transaction
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   request body dto.LiquidationIDsRequest true "Liquidation IDs"
// @Success 200 {array} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse "Missing period, sequence or rate"
// @Failure 409 {object} ErrorResponse "Already posted"
// @Failure 500 {object} ErrorResponse "Failed to post liquidations"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/post [post]
func (h *liquidationHandler) postLiquidations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, userID, ok := h.batch(c)
	if !ok {
		return
	}
	liquidations, err := h.liquidationService.PostLiquidations(c.Request.Context(), c.Param("companyID"), req.LiquidationIDs, userID)
	if err != nil {
		respondError(c, err, "Failed to post liquidations")
		return
	}
	logger.Info("Liquidations posted", slog.Int("count", len(liquidations)))
	c.JSON(http.StatusOK, dto.ToLiquidationResponses(liquidations))
}

// getAmounts godoc
// @Summary Derived amounts
// @Description Returns the requested derived totals per liquidation. Empty fields means all.
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   request body dto.AmountsRequest true "Liquidation IDs and fields"
// @Success 200 {object} dto.AmountsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Liquidation not found"
// @Failure 500 {object} ErrorResponse "Failed to compute amounts"
// @Security BearerAuth
// @Router /companies/{companyID}/liquidations/amounts [post]
func (h *liquidationHandler) getAmounts(c *gin.Context) {
	var req dto.AmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for amounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if _, ok := actingUser(c); !ok {
		return
	}

	amounts, err := h.liquidationService.GetAmounts(c.Request.Context(), c.Param("companyID"), req.LiquidationIDs, req.Fields)
	if err != nil {
		respondError(c, err, "Failed to compute amounts")
		return
	}
	c.JSON(http.StatusOK, dto.AmountsResponse{Amounts: amounts})
}
