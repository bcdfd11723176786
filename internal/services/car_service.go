package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/models"
)

type CarService struct {
	carRepo     models.CarRepo
	bookingRepo models.BookingRepo
	cld         *cloudinary.Cloudinary
	logger      *slog.Logger
}

func NewCarService(carRepo models.CarRepo, bookingRepo models.BookingRepo, cld *cloudinary.Cloudinary, logger *slog.Logger) *CarService {
	return &CarService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		cld:         cld,
		logger:      logger,
	}
}

func (cs *CarService) CreateCar(ctx context.Context, car *models.Car, images []string) (*models.Car, error) {
	if err := models.Validate.Struct(car); err != nil {
		return nil, fmt.Errorf("invalid car data: %v", err)
	}

	if car.ID == "" {
		car.ID = helpers.GenerateID(helpers.CarIDPrefix)
	}
	if car.Status == "" {
		car.Status = models.CarStatusAvailable
	}
	if car.Seats == 0 {
		car.Seats = 5
	}

	if len(images) > 0 && cs.cld != nil {
		urls, err := helpers.UploadImages(ctx, cs.cld, images, helpers.CarsFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload car images: %v", err)
		}
		if len(urls) > 0 {
			car.ImageURL = urls[0]
		}
	}

	if err := cs.carRepo.CreateCar(ctx, car); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	cs.logger.Info("car created", "car_id", car.ID, "brand", car.Brand, "model", car.Model)
	return car, nil
}

func (cs *CarService) GetCar(ctx context.Context, id string) (*models.Car, error) {
	return cs.carRepo.GetCarByID(ctx, id)
}

func (cs *CarService) ListCars(ctx context.Context) ([]*models.Car, error) {
	return cs.carRepo.ListCars(ctx)
}

func (cs *CarService) ListAvailableCars(ctx context.Context) ([]*models.Car, error) {
	return cs.carRepo.ListCarsByStatus(ctx, models.CarStatusAvailable)
}

// UpdateCar applies an administrative edit. Status is deliberately absent
// from the allowed fields: only the booking lifecycle flips it.
func (cs *CarService) UpdateCar(ctx context.Context, id string, data map[string]interface{}) error {
	allowed := map[string]bool{
		"brand": true, "model": true, "year": true, "daily_rate": true,
		"color": true, "fuel_type": true, "seats": true, "image_url": true,
	}
	update := make(map[string]interface{}, len(data))
	for key, value := range data {
		if allowed[key] {
			update[key] = value
		}
	}
	if len(update) == 0 {
		return fmt.Errorf("no updatable fields provided")
	}

	return cs.carRepo.UpdateCar(ctx, id, update)
}

// SetCarMaintenance parks the car so new bookings are still possible for
// future dates but the fleet view shows it out of rotation.
func (cs *CarService) SetCarMaintenance(ctx context.Context, id string) error {
	if _, err := cs.carRepo.GetCarByID(ctx, id); err != nil {
		return err
	}
	return cs.carRepo.UpdateCarStatus(ctx, id, models.CarStatusMaintenance)
}

// DeleteCar refuses to remove a car that active bookings still reference.
func (cs *CarService) DeleteCar(ctx context.Context, id string) error {
	if _, err := cs.carRepo.GetCarByID(ctx, id); err != nil {
		return err
	}

	active, err := cs.bookingRepo.ListActiveBookingsByCar(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	if len(active) > 0 {
		return models.ErrCarHasActiveBookings
	}

	if err := cs.carRepo.DeleteCar(ctx, id); err != nil {
		return err
	}

	cs.logger.Info("car deleted", "car_id", id)
	return nil
}
