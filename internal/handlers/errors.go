package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string         `json:"error"`
	Kind   string         `json:"kind,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// respondError maps err onto a status code and writes a localized body.
// Internal errors are logged and hidden behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	lang := middleware.GetLanguageFromCtx(ctx)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	resp := ErrorResponse{Error: apperrors.Localize(err, lang)}
	var userErr *apperrors.UserError
	if errors.As(err, &userErr) {
		resp.Kind = string(userErr.Kind)
		resp.Params = userErr.Params
	}
	c.JSON(status, resp)
}

// actingUser returns the authenticated user id or answers 401.
func actingUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
