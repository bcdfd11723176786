package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carhive/internal/container"
	"github.com/joshua-takyi/carhive/internal/handlers"
	"github.com/joshua-takyi/carhive/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "carhive-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.Register(container.AuthService))
		v1.POST("/login", handlers.Login(container.AuthService))
		v1.POST("/logout", handlers.Logout())
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.AuthService, container.Logger))

	protected.GET("/profile", handlers.Profile(container.AuthService))

	carRoutes := protected.Group("/cars")
	{
		carRoutes.GET("/", handlers.ListCars(container.CarService))
		carRoutes.GET("/available", handlers.ListAvailableCars(container.CarService))
		carRoutes.GET("/:id", handlers.GetCar(container.CarService))
		carRoutes.GET("/:id/availability", handlers.CheckCarAvailability(container.BookingService))

		adminCars := carRoutes.Group("/")
		adminCars.Use(middleware.RequireAdmin())
		{
			adminCars.POST("/", handlers.CreateCar(container.CarService))
			adminCars.PATCH("/:id", handlers.UpdateCar(container.CarService))
			adminCars.POST("/:id/maintenance", handlers.SetCarMaintenance(container.CarService))
			adminCars.DELETE("/:id", handlers.DeleteCar(container.CarService))
		}
	}

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
		bookingRoutes.GET("/customer/:id", handlers.ListCustomerBookings(container.BookingService))
		bookingRoutes.POST("/:id/cancel", handlers.CancelBooking(container.BookingService))
		bookingRoutes.POST("/:id/complete", handlers.CompleteBooking(container.BookingService))

		bookingRoutes.GET("/", middleware.RequireAdmin(), handlers.ListBookings(container.BookingService))
	}

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RequireAdmin())
	{
		adminRoutes.GET("/stats", handlers.GetDashboardStats(container.StatsService))
		adminRoutes.GET("/customers", handlers.ListCustomers(container.StatsService))
		adminRoutes.GET("/payments", handlers.ListPayments(container.StatsService))
		adminRoutes.GET("/payments/booking/:id", handlers.ListBookingPayments(container.StatsService))
	}

	return r
}
