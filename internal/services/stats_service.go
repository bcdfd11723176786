package services

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/carhive/internal/models"
)

// StatsService backs the admin dashboard: fleet counts, booking activity
// and revenue totals.
type StatsService struct {
	carRepo     models.CarRepo
	bookingRepo models.BookingRepo
	userRepo    models.UserRepo
	paymentRepo models.PaymentRepo
}

func NewStatsService(
	carRepo models.CarRepo,
	bookingRepo models.BookingRepo,
	userRepo models.UserRepo,
	paymentRepo models.PaymentRepo,
) *StatsService {
	return &StatsService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
	}
}

type DashboardStats struct {
	TotalCars      int     `json:"total_cars"`
	AvailableCars  int     `json:"available_cars"`
	BookedCars     int     `json:"booked_cars"`
	TotalBookings  int     `json:"total_bookings"`
	ActiveBookings int     `json:"active_bookings"`
	TotalCustomers int     `json:"total_customers"`
	TotalRevenue   float64 `json:"total_revenue"`
}

func (ss *StatsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	cars, err := ss.carRepo.ListCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	bookings, err := ss.bookingRepo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	customers, err := ss.userRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	payments, err := ss.paymentRepo.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	stats := &DashboardStats{
		TotalCars:      len(cars),
		TotalBookings:  len(bookings),
		TotalCustomers: len(customers),
	}

	for _, car := range cars {
		if car.Status == models.CarStatusAvailable {
			stats.AvailableCars++
		}
	}
	stats.BookedCars = stats.TotalCars - stats.AvailableCars

	for _, booking := range bookings {
		if booking.IsActive() {
			stats.ActiveBookings++
		}
	}

	for _, payment := range payments {
		stats.TotalRevenue += payment.Amount
	}

	return stats, nil
}

func (ss *StatsService) ListCustomers(ctx context.Context) ([]*models.User, error) {
	return ss.userRepo.ListCustomers(ctx)
}

func (ss *StatsService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return ss.paymentRepo.ListPayments(ctx)
}

func (ss *StatsService) ListBookingPayments(ctx context.Context, bookingID string) ([]*models.Payment, error) {
	return ss.paymentRepo.ListPaymentsByBooking(ctx, bookingID)
}
