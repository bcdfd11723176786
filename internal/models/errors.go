package models

import "errors"

var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Car errors
	ErrCarNotFound          = errors.New("car not found")
	ErrCarHasActiveBookings = errors.New("car has active bookings")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrCarUnavailable   = errors.New("car is not available for the selected dates")
	ErrBookingNotActive = errors.New("booking is not active")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")

	// Infrastructure errors
	ErrStorageFailure = errors.New("storage failure")
	ErrLockTimeout    = errors.New("could not acquire car lock")
)
