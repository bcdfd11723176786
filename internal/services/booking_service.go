package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/carhive/internal/helpers"
	"github.com/joshua-takyi/carhive/internal/lock"
	"github.com/joshua-takyi/carhive/internal/models"
)

// BookingService owns the booking lifecycle: Active -> Completed and
// Active -> Cancelled, with no reversals. It keeps Car.status consistent
// with the set of active bookings and serializes all writes per car.
type BookingService struct {
	bookingRepo models.BookingRepo
	carRepo     models.CarRepo
	userRepo    models.UserRepo
	paymentRepo models.PaymentRepo
	locker      lock.CarLocker
	logger      *slog.Logger
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	carRepo models.CarRepo,
	userRepo models.UserRepo,
	paymentRepo models.PaymentRepo,
	locker lock.CarLocker,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		locker:      locker,
		logger:      logger,
	}
}

type CreateBookingRequest struct {
	CustomerID    string
	CarID         string
	StartDate     time.Time
	EndDate       time.Time
	PaymentMethod string
}

func (bs *BookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, models.ErrInvalidDateRange
	}

	customer, err := bs.userRepo.GetUserByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	car, err := bs.carRepo.GetCarByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	// The availability check and booking insert must not interleave with
	// another writer for the same car.
	release, err := bs.locker.Acquire(ctx, req.CarID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLockTimeout, err)
	}
	defer release()

	available, err := bs.bookingRepo.CheckCarAvailability(ctx, req.CarID, req.StartDate, req.EndDate, "")
	if err != nil {
		// Fail closed: an unanswered availability question never becomes
		// a booking.
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	if !available {
		return nil, models.ErrCarUnavailable
	}

	booking := &models.Booking{
		ID:           helpers.GenerateID(helpers.BookingIDPrefix),
		CustomerID:   customer.ID,
		CarID:        car.ID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalAmount:  helpers.CalculateTotalAmount(car.DailyRate, req.StartDate, req.EndDate),
		Status:       models.BookingStatusActive,
		CustomerName: customer.Name,
		CarInfo:      car.Description(),
		CreatedAt:    time.Now(),
	}

	if err := bs.bookingRepo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	if err := bs.carRepo.UpdateCarStatus(ctx, car.ID, models.CarStatusBooked); err != nil {
		// Compensate so an Active booking never sits on a car still marked
		// Available.
		if cancelErr := bs.bookingRepo.UpdateBookingStatus(ctx, booking.ID, models.BookingStatusCancelled); cancelErr != nil {
			bs.logger.Error("failed to roll back booking after car status update failure",
				"booking_id", booking.ID, "car_id", car.ID, "error", cancelErr)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	payment := &models.Payment{
		ID:            helpers.GenerateID(helpers.PaymentIDPrefix),
		BookingID:     booking.ID,
		Amount:        booking.TotalAmount,
		PaymentDate:   time.Now(),
		PaymentMethod: req.PaymentMethod,
		Status:        "Completed",
	}
	if payment.PaymentMethod == "" {
		payment.PaymentMethod = "Cash"
	}
	if err := bs.paymentRepo.CreatePayment(ctx, payment); err != nil {
		// The booking stands even if the payment record fails; surfaced in
		// logs for reconciliation.
		bs.logger.Error("failed to record payment for booking",
			"booking_id", booking.ID, "amount", payment.Amount, "error", err)
	}

	bs.logger.Info("booking created",
		"booking_id", booking.ID,
		"car_id", car.ID,
		"customer_id", customer.ID,
		"total_amount", booking.TotalAmount,
	)
	return booking, nil
}

// CancelBooking transitions an Active booking to Cancelled and frees the car.
func (bs *BookingService) CancelBooking(ctx context.Context, bookingID string) error {
	return bs.closeBooking(ctx, bookingID, models.BookingStatusCancelled)
}

// CompleteBooking transitions an Active booking to Completed and frees the car.
func (bs *BookingService) CompleteBooking(ctx context.Context, bookingID string) error {
	return bs.closeBooking(ctx, bookingID, models.BookingStatusCompleted)
}

func (bs *BookingService) closeBooking(ctx context.Context, bookingID string, status models.BookingStatus) error {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	release, err := bs.locker.Acquire(ctx, booking.CarID)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrLockTimeout, err)
	}
	defer release()

	// Re-read under the lock: a concurrent cancel/complete may have won.
	booking, err = bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !booking.IsActive() {
		return models.ErrBookingNotActive
	}

	if err := bs.bookingRepo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	// Car.status is a coarse flag, not a calendar: the no-overlap invariant
	// makes resetting it safe, and CheckCarAvailability stays the
	// authoritative answer for any date range.
	if err := bs.carRepo.UpdateCarStatus(ctx, booking.CarID, models.CarStatusAvailable); err != nil {
		bs.logger.Error("failed to reset car status after booking close",
			"booking_id", bookingID, "car_id", booking.CarID, "error", err)
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	bs.logger.Info("booking closed", "booking_id", bookingID, "status", status)
	return nil
}

// IsCarAvailable answers whether the car is free for [start, end).
// excludeBookingID lets a caller re-evaluate dates ignoring its own booking.
func (bs *BookingService) IsCarAvailable(ctx context.Context, carID string, start, end time.Time, excludeBookingID string) (bool, error) {
	if !end.After(start) {
		return false, models.ErrInvalidDateRange
	}

	available, err := bs.bookingRepo.CheckCarAvailability(ctx, carID, start, end, excludeBookingID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	return available, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return bs.bookingRepo.GetBookingByID(ctx, id)
}

func (bs *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookings(ctx)
}

func (bs *BookingService) ListCustomerBookings(ctx context.Context, customerID string) ([]*models.Booking, error) {
	return bs.bookingRepo.ListBookingsByCustomer(ctx, customerID)
}

func (bs *BookingService) ListCarActiveBookings(ctx context.Context, carID string) ([]*models.Booking, error) {
	return bs.bookingRepo.ListActiveBookingsByCar(ctx, carID)
}
