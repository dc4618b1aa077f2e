package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"salonbook-backend/apperrors"

	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithAppError maps a service error onto an HTTP status.
func RespondWithAppError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.Is(err, apperrors.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidState):
		RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		LoggerFromContext(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
