package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/carhive/internal/lock"
	"github.com/joshua-takyi/carhive/internal/models"
)

func newCarFixture(t *testing.T) (*CarService, *BookingService, *fakeStore) {
	t.Helper()
	store := newFakeStore()

	store.users["USER_CUST0001"] = &models.User{
		ID:    "USER_CUST0001",
		Email: "rita@example.com",
		Name:  "Rita Mensah",
		Role:  models.RoleCustomer,
	}

	carService := NewCarService(store, store, nil, testLogger())
	bookingService := NewBookingService(store, store, store, store, lock.NewMemoryLocker(), testLogger())
	return carService, bookingService, store
}

func TestCreateCarDefaults(t *testing.T) {
	carService, _, store := newCarFixture(t)

	car, err := carService.CreateCar(context.Background(), &models.Car{
		Brand:     "Honda",
		Model:     "Civic",
		Year:      2024,
		DailyRate: 1800,
	}, nil)
	if err != nil {
		t.Fatalf("create car failed: %v", err)
	}

	if car.ID == "" {
		t.Error("expected a generated car ID")
	}
	if car.Status != models.CarStatusAvailable {
		t.Errorf("expected new car to default to Available, got %s", car.Status)
	}
	if car.Seats != 5 {
		t.Errorf("expected default 5 seats, got %d", car.Seats)
	}
	if _, ok := store.cars[car.ID]; !ok {
		t.Error("car was not persisted")
	}
}

func TestCreateCarValidation(t *testing.T) {
	carService, _, _ := newCarFixture(t)

	// Missing brand and a non-positive daily rate must be rejected
	_, err := carService.CreateCar(context.Background(), &models.Car{
		Model:     "Civic",
		Year:      2024,
		DailyRate: 0,
	}, nil)
	if err == nil {
		t.Fatal("expected validation error for invalid car")
	}
}

func TestDeleteCarRefusedWithActiveBookings(t *testing.T) {
	carService, bookingService, store := newCarFixture(t)

	car, err := carService.CreateCar(context.Background(), &models.Car{
		Brand:     "Honda",
		Model:     "Civic",
		Year:      2024,
		DailyRate: 1800,
	}, nil)
	if err != nil {
		t.Fatalf("create car failed: %v", err)
	}

	booking, err := bookingService.CreateBooking(context.Background(), &CreateBookingRequest{
		CustomerID: "USER_CUST0001",
		CarID:      car.ID,
		StartDate:  day(1),
		EndDate:    day(5),
	})
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if err := carService.DeleteCar(context.Background(), car.ID); !errors.Is(err, models.ErrCarHasActiveBookings) {
		t.Fatalf("expected ErrCarHasActiveBookings, got %v", err)
	}
	if _, ok := store.cars[car.ID]; !ok {
		t.Error("car was deleted despite active bookings")
	}

	// Once the booking closes the car can go
	if err := bookingService.CancelBooking(context.Background(), booking.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := carService.DeleteCar(context.Background(), car.ID); err != nil {
		t.Fatalf("delete after cancel failed: %v", err)
	}
}

func TestUpdateCarIgnoresStatusField(t *testing.T) {
	carService, _, store := newCarFixture(t)

	car, err := carService.CreateCar(context.Background(), &models.Car{
		Brand:     "Honda",
		Model:     "Civic",
		Year:      2024,
		DailyRate: 1800,
	}, nil)
	if err != nil {
		t.Fatalf("create car failed: %v", err)
	}

	// Only the booking lifecycle may flip status
	err = carService.UpdateCar(context.Background(), car.ID, map[string]interface{}{
		"status": "Available",
	})
	if err == nil {
		t.Error("expected rejection when only non-updatable fields are provided")
	}
	if store.cars[car.ID].Status != models.CarStatusAvailable {
		t.Errorf("status changed unexpectedly: %s", store.cars[car.ID].Status)
	}
}
