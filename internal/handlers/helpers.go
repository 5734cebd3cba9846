package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/middleware"
	"github.com/vignesh678/stock-glass-visualizer/internal/uuid"
)

// ErrorResponse documents the error body for swagger.
type ErrorResponse = middleware.ErrorBody

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parseLotID reads a lot id path parameter. Anything that is not a UUID
// cannot name a lot, so it is reported as not found.
func parseLotID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.ErrLotNotFound
	}
	return id, nil
}

// parseStockID parses a catalog id path parameter.
func parseStockID(c *gin.Context, param string) (int, error) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RenderError(c, err)
}

// bindError turns a request binding failure into an INVALID_INPUT error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}
