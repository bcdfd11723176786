package models

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "Active"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID           string        `bson:"booking_id" json:"booking_id"`
	CustomerID   string        `bson:"customer_id" json:"customer_id"`
	CarID        string        `bson:"car_id" json:"car_id"`
	StartDate    time.Time     `bson:"start_date" json:"start_date"`
	EndDate      time.Time     `bson:"end_date" json:"end_date"`
	TotalAmount  float64       `bson:"total_amount" json:"total_amount"`
	Status       BookingStatus `bson:"status" json:"status"`
	CustomerName string        `bson:"customer_name" json:"customer_name"`
	CarInfo      string        `bson:"car_info" json:"car_info"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}

// IsActive reports whether the booking still occupies its date range.
// Completed and Cancelled are terminal states.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusActive
}

// Overlaps tests the requested half-open range [start, end) against the
// booking's own range. A booking ending on day D and a request starting on
// day D do not conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !(end.Compare(b.StartDate) <= 0 || start.Compare(b.EndDate) >= 0)
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	ListBookingsByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
	ListActiveBookingsByCar(ctx context.Context, carID string) ([]*Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error
	CheckCarAvailability(ctx context.Context, carID string, start, end time.Time, excludeBookingID string) (bool, error)
}
