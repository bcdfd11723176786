package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/models"
)

// statusFromError maps domain error kinds to HTTP statuses so clients can
// tell "your request was invalid" apart from "the system is unavailable".
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrCarNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCarUnavailable),
		errors.Is(err, models.ErrCarHasActiveBookings),
		errors.Is(err, models.ErrBookingNotActive),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrLockTimeout):
		return http.StatusConflict
	case errors.Is(err, models.ErrStorageFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), helpers.ErrorResponse(err.Error()))
}

func claimsFromContext(c *gin.Context) (*helpers.SessionClaims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
		return nil, false
	}
	claims, ok := userClaims.(*helpers.SessionClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, helpers.ErrorResponse("invalid user claims"))
		return nil, false
	}
	return claims, true
}
