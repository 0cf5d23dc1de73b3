package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/optionform/internal/domain/dto"
	"github.com/guttosm/optionform/internal/logger"
)

// ErrorHandler turns errors attached with c.Error() into a JSON error body,
// unless a handler already wrote a response.
//
// Errors that are already a dto.ErrorResponse are returned as-is; anything
// else becomes a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Err(last).Str("request_id", toString(rid)).Msg("request failed")

	var resp dto.ErrorResponse
	if errors.As(last, &resp) {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last))
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
