package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/carhive/internal/lock"
	"github.com/joshua-takyi/carhive/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo repositories so the
// lifecycle rules can be exercised without a database.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	creds    map[string]*models.Credential
	cars     map[string]*models.Car
	bookings map[string]*models.Booking
	payments map[string]*models.Payment

	failAvailability bool
	failCarUpdate    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		creds:    make(map[string]*models.Credential),
		cars:     make(map[string]*models.Car),
		bookings: make(map[string]*models.Booking),
		payments: make(map[string]*models.Payment),
	}
}

// UserRepo

func (fs *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.users[user.ID] = user
	return nil
}

func (fs *fakeStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	user, ok := fs.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (fs *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, user := range fs.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (fs *fakeStore) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	return nil
}

func (fs *fakeStore) DeleteUser(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	delete(fs.users, id)
	return nil
}

func (fs *fakeStore) ListCustomers(ctx context.Context) ([]*models.User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var customers []*models.User
	for _, user := range fs.users {
		if user.Role == models.RoleCustomer {
			customers = append(customers, user)
		}
	}
	return customers, nil
}

func (fs *fakeStore) SaveCredential(ctx context.Context, cred *models.Credential) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.creds[cred.UserID] = cred
	return nil
}

func (fs *fakeStore) GetCredential(ctx context.Context, userID string) (*models.Credential, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	cred, ok := fs.creds[userID]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return cred, nil
}

// CarRepo

func (fs *fakeStore) CreateCar(ctx context.Context, car *models.Car) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.cars[car.ID] = car
	return nil
}

func (fs *fakeStore) GetCarByID(ctx context.Context, id string) (*models.Car, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	car, ok := fs.cars[id]
	if !ok {
		return nil, models.ErrCarNotFound
	}
	return car, nil
}

func (fs *fakeStore) ListCars(ctx context.Context) ([]*models.Car, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var cars []*models.Car
	for _, car := range fs.cars {
		cars = append(cars, car)
	}
	return cars, nil
}

func (fs *fakeStore) ListCarsByStatus(ctx context.Context, status models.CarStatus) ([]*models.Car, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var cars []*models.Car
	for _, car := range fs.cars {
		if car.Status == status {
			cars = append(cars, car)
		}
	}
	return cars, nil
}

func (fs *fakeStore) UpdateCar(ctx context.Context, id string, data map[string]interface{}) error {
	return nil
}

func (fs *fakeStore) UpdateCarStatus(ctx context.Context, id string, status models.CarStatus) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.failCarUpdate {
		return errors.New("simulated car update failure")
	}
	car, ok := fs.cars[id]
	if !ok {
		return models.ErrCarNotFound
	}
	car.Status = status
	return nil
}

func (fs *fakeStore) DeleteCar(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.cars[id]; !ok {
		return models.ErrCarNotFound
	}
	delete(fs.cars, id)
	return nil
}

// BookingRepo

func (fs *fakeStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.bookings[booking.ID] = booking
	return nil
}

func (fs *fakeStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	booking, ok := fs.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (fs *fakeStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var bookings []*models.Booking
	for _, booking := range fs.bookings {
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (fs *fakeStore) ListBookingsByCustomer(ctx context.Context, customerID string) ([]*models.Booking, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var bookings []*models.Booking
	for _, booking := range fs.bookings {
		if booking.CustomerID == customerID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (fs *fakeStore) ListActiveBookingsByCar(ctx context.Context, carID string) ([]*models.Booking, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var bookings []*models.Booking
	for _, booking := range fs.bookings {
		if booking.CarID == carID && booking.IsActive() {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (fs *fakeStore) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	booking, ok := fs.bookings[id]
	if !ok {
		return models.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (fs *fakeStore) CheckCarAvailability(ctx context.Context, carID string, start, end time.Time, excludeBookingID string) (bool, error) {
	if fs.failAvailability {
		return false, errors.New("simulated storage failure")
	}

	bookings, err := fs.ListActiveBookingsByCar(ctx, carID)
	if err != nil {
		return false, err
	}
	for _, booking := range bookings {
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}
		if booking.Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// PaymentRepo

func (fs *fakeStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.payments[payment.ID] = payment
	return nil
}

func (fs *fakeStore) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	payment, ok := fs.payments[id]
	if !ok {
		return nil, models.ErrPaymentNotFound
	}
	return payment, nil
}

func (fs *fakeStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var payments []*models.Payment
	for _, payment := range fs.payments {
		payments = append(payments, payment)
	}
	return payments, nil
}

func (fs *fakeStore) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]*models.Payment, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var payments []*models.Payment
	for _, payment := range fs.payments {
		if payment.BookingID == bookingID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

// helpers

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func newBookingFixture(t *testing.T) (*BookingService, *fakeStore) {
	t.Helper()
	store := newFakeStore()

	store.users["USER_CUST0001"] = &models.User{
		ID:    "USER_CUST0001",
		Email: "rita@example.com",
		Name:  "Rita Mensah",
		Role:  models.RoleCustomer,
	}
	store.cars["CAR_X0000001"] = &models.Car{
		ID:        "CAR_X0000001",
		Brand:     "Toyota",
		Model:     "Corolla",
		Year:      2023,
		DailyRate: 1500,
		Status:    models.CarStatusAvailable,
	}

	service := NewBookingService(store, store, store, store, lock.NewMemoryLocker(), testLogger())
	return service, store
}

func createRequest(start, end int) *CreateBookingRequest {
	return &CreateBookingRequest{
		CustomerID: "USER_CUST0001",
		CarID:      "CAR_X0000001",
		StartDate:  day(start),
		EndDate:    day(end),
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	service, store := newBookingFixture(t)

	booking, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if booking.Status != models.BookingStatusActive {
		t.Errorf("expected Active booking, got %s", booking.Status)
	}
	if booking.TotalAmount != 6000 {
		t.Errorf("expected total 6000 for 4 days at 1500, got %v", booking.TotalAmount)
	}
	if booking.CustomerName != "Rita Mensah" || booking.CarInfo != "Toyota Corolla" {
		t.Errorf("expected denormalized snapshots, got %q / %q", booking.CustomerName, booking.CarInfo)
	}
	if store.cars["CAR_X0000001"].Status != models.CarStatusBooked {
		t.Errorf("expected car to be Booked, got %s", store.cars["CAR_X0000001"].Status)
	}

	payments, _ := store.ListPaymentsByBooking(context.Background(), booking.ID)
	if len(payments) != 1 || payments[0].Amount != 6000 {
		t.Errorf("expected one payment of 6000, got %v", payments)
	}
}

func TestCreateBookingInvalidRange(t *testing.T) {
	service, _ := newBookingFixture(t)

	for _, end := range []int{1, 0} {
		_, err := service.CreateBooking(context.Background(), createRequest(1, end))
		if !errors.Is(err, models.ErrInvalidDateRange) {
			t.Errorf("expected ErrInvalidDateRange for end day %d, got %v", end, err)
		}
	}
}

func TestCreateBookingConflict(t *testing.T) {
	service, _ := newBookingFixture(t)

	if _, err := service.CreateBooking(context.Background(), createRequest(1, 5)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := service.CreateBooking(context.Background(), createRequest(3, 6))
	if !errors.Is(err, models.ErrCarUnavailable) {
		t.Fatalf("expected ErrCarUnavailable for overlapping range, got %v", err)
	}
}

func TestHalfOpenBoundaryAllowsBackToBack(t *testing.T) {
	service, _ := newBookingFixture(t)

	if _, err := service.CreateBooking(context.Background(), createRequest(1, 10)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Ends on day 10, next starts on day 10: no conflict
	if _, err := service.CreateBooking(context.Background(), createRequest(10, 12)); err != nil {
		t.Fatalf("back-to-back booking should be allowed, got %v", err)
	}
}

func TestCancelFreesCarForRebooking(t *testing.T) {
	service, store := newBookingFixture(t)

	booking, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if _, err := service.CreateBooking(context.Background(), createRequest(3, 6)); !errors.Is(err, models.ErrCarUnavailable) {
		t.Fatalf("expected conflict before cancel, got %v", err)
	}

	if err := service.CancelBooking(context.Background(), booking.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if store.cars["CAR_X0000001"].Status != models.CarStatusAvailable {
		t.Errorf("expected car Available after cancel, got %s", store.cars["CAR_X0000001"].Status)
	}

	if _, err := service.CreateBooking(context.Background(), createRequest(3, 6)); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	service, store := newBookingFixture(t)

	booking, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if err := service.CancelBooking(context.Background(), booking.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// Second cancel must not reapply the car-status side effect
	store.cars["CAR_X0000001"].Status = models.CarStatusBooked
	if err := service.CancelBooking(context.Background(), booking.ID); !errors.Is(err, models.ErrBookingNotActive) {
		t.Fatalf("expected ErrBookingNotActive on repeated cancel, got %v", err)
	}
	if store.cars["CAR_X0000001"].Status != models.CarStatusBooked {
		t.Error("repeated cancel reapplied the car status side effect")
	}

	if err := service.CompleteBooking(context.Background(), booking.ID); !errors.Is(err, models.ErrBookingNotActive) {
		t.Fatalf("expected ErrBookingNotActive completing a cancelled booking, got %v", err)
	}
}

func TestCompleteBooking(t *testing.T) {
	service, store := newBookingFixture(t)

	booking, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	if err := service.CompleteBooking(context.Background(), booking.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	stored, _ := store.GetBookingByID(context.Background(), booking.ID)
	if stored.Status != models.BookingStatusCompleted {
		t.Errorf("expected Completed, got %s", stored.Status)
	}
	if store.cars["CAR_X0000001"].Status != models.CarStatusAvailable {
		t.Errorf("expected car Available after completion, got %s", store.cars["CAR_X0000001"].Status)
	}
}

func TestAvailabilityFailsClosed(t *testing.T) {
	service, store := newBookingFixture(t)
	store.failAvailability = true

	_, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if !errors.Is(err, models.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure when availability cannot be read, got %v", err)
	}

	bookings, _ := store.ListBookings(context.Background())
	if len(bookings) != 0 {
		t.Errorf("no booking should exist after a failed availability check, got %d", len(bookings))
	}
}

func TestCarStatusFailureRollsBackBooking(t *testing.T) {
	service, store := newBookingFixture(t)
	store.failCarUpdate = true

	_, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if !errors.Is(err, models.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}

	// The compensating action must leave no Active booking behind
	active, _ := store.ListActiveBookingsByCar(context.Background(), "CAR_X0000001")
	if len(active) != 0 {
		t.Errorf("expected no active bookings after rollback, got %d", len(active))
	}
}

func TestIsCarAvailableExcludesOwnBooking(t *testing.T) {
	service, _ := newBookingFixture(t)

	booking, err := service.CreateBooking(context.Background(), createRequest(1, 5))
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	available, err := service.IsCarAvailable(context.Background(), "CAR_X0000001", day(2), day(6), "")
	if err != nil || available {
		t.Errorf("expected unavailable without exclusion, got available=%v err=%v", available, err)
	}

	available, err = service.IsCarAvailable(context.Background(), "CAR_X0000001", day(2), day(6), booking.ID)
	if err != nil || !available {
		t.Errorf("expected available when excluding own booking, got available=%v err=%v", available, err)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	service, store := newBookingFixture(t)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	requests := []*CreateBookingRequest{createRequest(1, 5), createRequest(3, 6)}

	for _, req := range requests {
		wg.Add(1)
		go func(r *CreateBookingRequest) {
			defer wg.Done()
			_, err := service.CreateBooking(context.Background(), r)
			results <- err
		}(req)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, models.ErrCarUnavailable):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", successes, conflicts)
	}

	active, _ := store.ListActiveBookingsByCar(context.Background(), "CAR_X0000001")
	if len(active) != 1 {
		t.Errorf("expected exactly one active booking, got %d", len(active))
	}
}
