package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/services"
)

type createBookingPayload struct {
	CarID         string `json:"car_id" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		var payload createBookingPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		start, err := helpers.ParseDate(payload.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		end, err := helpers.ParseDate(payload.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.CreateBooking(c.Request.Context(), &services.CreateBookingRequest{
			CustomerID:    claims.UserID,
			CarID:         payload.CarID,
			StartDate:     start,
			EndDate:       end,
			PaymentMethod: payload.PaymentMethod,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(booking, "Booking created successfully"))
	}
}

func GetBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		bookingID := strings.TrimSpace(c.Param("id"))
		if bookingID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("booking ID is required"))
			return
		}

		booking, err := bs.GetBooking(c.Request.Context(), bookingID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if !claims.IsAdmin() && !claims.IsOwner(booking.CustomerID) {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("forbidden: you can only view your own bookings"))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(booking, ""))
	}
}

func ListBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := bs.ListBookings(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(bookings, ""))
	}
}

func ListCustomerBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		customerID := strings.TrimSpace(c.Param("id"))
		if customerID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("customer ID is required"))
			return
		}

		if !claims.IsAdmin() && !claims.IsOwner(customerID) {
			c.JSON(http.StatusForbidden, helpers.ErrorResponse("forbidden: you can only view your own bookings"))
			return
		}

		bookings, err := bs.ListCustomerBookings(c.Request.Context(), customerID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(bookings, ""))
	}
}

func CancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return closeBooking(bs, "cancel")
}

func CompleteBooking(bs *services.BookingService) gin.HandlerFunc {
	return closeBooking(bs, "complete")
}

func closeBooking(bs *services.BookingService, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromContext(c)
		if !ok {
			return
		}

		bookingID := strings.TrimSpace(c.Param("id"))
		if bookingID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("booking ID is required"))
			return
		}

		booking, err := bs.GetBooking(c.Request.Context(), bookingID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		// Customers may cancel their own bookings; completing is an
		// admin action (car returned and checked in).
		message := "Booking completed successfully"
		if action == "cancel" {
			message = "Booking cancelled successfully"
			if !claims.IsAdmin() && !claims.IsOwner(booking.CustomerID) {
				c.JSON(http.StatusForbidden, helpers.ErrorResponse("forbidden: you can only cancel your own bookings"))
				return
			}
			err = bs.CancelBooking(c.Request.Context(), bookingID)
		} else {
			if !claims.IsAdmin() {
				c.JSON(http.StatusForbidden, helpers.ErrorResponse("only admins can complete bookings"))
				return
			}
			err = bs.CompleteBooking(c.Request.Context(), bookingID)
		}
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, message))
	}
}
