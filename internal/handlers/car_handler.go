package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/models"
	"github.com/joshua-takyi/carhive/internal/services"
)

type createCarRequest struct {
	models.Car
	Images []string `json:"images"`
}

func CreateCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		car, err := cs.CreateCar(c.Request.Context(), &req.Car, req.Images)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(car, "Car created successfully"))
	}
}

func ListCars(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cars, err := cs.ListCars(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(cars, ""))
	}
}

func ListAvailableCars(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cars, err := cs.ListAvailableCars(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(cars, ""))
	}
}

func GetCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := strings.TrimSpace(c.Param("id"))
		if carID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("car ID is required"))
			return
		}

		car, err := cs.GetCar(c.Request.Context(), carID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(car, ""))
	}
}

func UpdateCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := strings.TrimSpace(c.Param("id"))
		if carID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("car ID is required"))
			return
		}

		var data map[string]interface{}
		if err := c.ShouldBindJSON(&data); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		if err := cs.UpdateCar(c.Request.Context(), carID, data); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Car updated successfully"))
	}
}

func DeleteCar(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := strings.TrimSpace(c.Param("id"))
		if carID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("car ID is required"))
			return
		}

		if err := cs.DeleteCar(c.Request.Context(), carID); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Car deleted successfully"))
	}
}

func SetCarMaintenance(cs *services.CarService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := strings.TrimSpace(c.Param("id"))
		if carID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("car ID is required"))
			return
		}

		if err := cs.SetCarMaintenance(c.Request.Context(), carID); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "Car marked for maintenance"))
	}
}

// CheckCarAvailability answers whether the car is free for the requested
// range, e.g. GET /cars/CAR_123/availability?start=2026-01-01&end=2026-01-05.
func CheckCarAvailability(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID := strings.TrimSpace(c.Param("id"))
		if carID == "" {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("car ID is required"))
			return
		}

		start, err := helpers.ParseDate(c.Query("start"))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}
		end, err := helpers.ParseDate(c.Query("end"))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		available, err := bs.IsCarAvailable(c.Request.Context(), carID, start, end, c.Query("exclude_booking_id"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"car_id":    carID,
			"available": available,
		}, ""))
	}
}
