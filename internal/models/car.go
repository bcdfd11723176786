package models

import "context"

type CarStatus string

const (
	CarStatusAvailable   CarStatus = "Available"
	CarStatusBooked      CarStatus = "Booked"
	CarStatusMaintenance CarStatus = "Maintenance"
)

type Car struct {
	ID        string    `bson:"car_id" json:"car_id"`
	Brand     string    `bson:"brand" json:"brand" validate:"required"`
	Model     string    `bson:"model" json:"model" validate:"required"`
	Year      int       `bson:"year" json:"year" validate:"required,gte=1950,lte=2100"`
	DailyRate float64   `bson:"daily_rate" json:"daily_rate" validate:"required,gt=0"`
	Status    CarStatus `bson:"status" json:"status"`
	Color     string    `bson:"color" json:"color"`
	FuelType  string    `bson:"fuel_type" json:"fuel_type"`
	Seats     int       `bson:"seats" json:"seats"`
	ImageURL  string    `bson:"image_url" json:"image_url"`
}

// Description is the denormalized car summary snapshotted onto bookings.
func (c *Car) Description() string {
	return c.Brand + " " + c.Model
}

type CarRepo interface {
	CreateCar(ctx context.Context, car *Car) error
	GetCarByID(ctx context.Context, id string) (*Car, error)
	ListCars(ctx context.Context) ([]*Car, error)
	ListCarsByStatus(ctx context.Context, status CarStatus) ([]*Car, error)
	UpdateCar(ctx context.Context, id string, data map[string]interface{}) error
	UpdateCarStatus(ctx context.Context, id string, status CarStatus) error
	DeleteCar(ctx context.Context, id string) error
}
