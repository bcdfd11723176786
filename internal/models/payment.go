package models

import (
	"context"
	"time"
)

type Payment struct {
	ID            string    `bson:"payment_id" json:"payment_id"`
	BookingID     string    `bson:"booking_id" json:"booking_id"`
	Amount        float64   `bson:"amount" json:"amount"`
	PaymentDate   time.Time `bson:"payment_date" json:"payment_date"`
	PaymentMethod string    `bson:"payment_method" json:"payment_method"`
	Status        string    `bson:"status" json:"status"`
}

type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByID(ctx context.Context, id string) (*Payment, error)
	ListPayments(ctx context.Context) ([]*Payment, error)
	ListPaymentsByBooking(ctx context.Context, bookingID string) ([]*Payment, error)
}
