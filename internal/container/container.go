package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/carhive/internal/lock"
	"github.com/joshua-takyi/carhive/internal/models"
	"github.com/joshua-takyi/carhive/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client

	AuthService    *services.AuthService
	CarService     *services.CarService
	BookingService *services.BookingService
	StatsService   *services.StatsService
}

// NewContainer creates a new dependency injection container. When a Redis
// client is provided the per-car lock is shared across instances; otherwise
// an in-process lock serializes bookings for this node only.
func NewContainer(
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
	jwtSecret string,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)

	var carLocker lock.CarLocker
	if redisClient != nil {
		carLocker = lock.NewRedisLocker(redisClient)
	} else {
		carLocker = lock.NewMemoryLocker()
	}

	authService := services.NewAuthService(repo, jwtSecret, logger)
	carService := services.NewCarService(repo, repo, cld, logger)
	bookingService := services.NewBookingService(repo, repo, repo, repo, carLocker, logger)
	statsService := services.NewStatsService(repo, repo, repo, repo)

	return &Container{
		Logger:         logger,
		Cloudinary:     cld,
		MongoDBClient:  mongoDBClient,
		AuthService:    authService,
		CarService:     carService,
		BookingService: bookingService,
		StatsService:   statsService,
	}
}
