package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/services"
)

func GetDashboardStats(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ss.GetDashboardStats(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}

func ListCustomers(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := ss.ListCustomers(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(customers, ""))
	}
}

func ListPayments(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := ss.ListPayments(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(payments, ""))
	}
}

func ListBookingPayments(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID := strings.TrimSpace(c.Param("id"))
		if bookingID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("booking ID is required"))
			return
		}

		payments, err := ss.ListBookingPayments(c.Request.Context(), bookingID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(payments, ""))
	}
}
