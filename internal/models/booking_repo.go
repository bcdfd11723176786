package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	col, err := mdb.GetCollection(ctx, DbName, BookingsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	err = col.FindOne(ctx, bson.M{"booking_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListBookingsByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"customer_id": customerID})
}

func (mdb *MongodbRepo) ListActiveBookingsByCar(ctx context.Context, carID string) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"car_id": carID, "status": BookingStatusActive})
}

func (mdb *MongodbRepo) findBookings(ctx context.Context, filter bson.M) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var booking Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error {
	col, err := mdb.GetCollection(ctx, DbName, BookingsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	update := bson.M{"$set": bson.M{"status": status}}
	res, err := col.UpdateOne(ctx, bson.M{"booking_id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking status: %v", err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CheckCarAvailability scans the car's active bookings for a half-open
// overlap with [start, end). The per-car active set is small, so a linear
// scan is enough. Any storage error fails closed: the caller must treat the
// car as unavailable rather than risk a double-booking.
func (mdb *MongodbRepo) CheckCarAvailability(ctx context.Context, carID string, start, end time.Time, excludeBookingID string) (bool, error) {
	bookings, err := mdb.ListActiveBookingsByCar(ctx, carID)
	if err != nil {
		return false, fmt.Errorf("error checking car availability: %v", err)
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
