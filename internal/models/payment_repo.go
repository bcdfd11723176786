package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (mdb *MongodbRepo) CreatePayment(ctx context.Context, payment *Payment) error {
	col, err := mdb.GetCollection(ctx, DbName, PaymentsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("error creating payment: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetPaymentByID(ctx context.Context, id string) (*Payment, error) {
	col, err := mdb.GetCollection(ctx, DbName, PaymentsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var payment Payment
	err = col.FindOne(ctx, bson.M{"payment_id": id}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error finding payment: %v", err)
	}
	return &payment, nil
}

func (mdb *MongodbRepo) ListPayments(ctx context.Context) ([]*Payment, error) {
	return mdb.findPayments(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]*Payment, error) {
	return mdb.findPayments(ctx, bson.M{"booking_id": bookingID})
}

func (mdb *MongodbRepo) findPayments(ctx context.Context, filter bson.M) ([]*Payment, error) {
	col, err := mdb.GetCollection(ctx, DbName, PaymentsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding payments: %v", err)
	}
	defer cursor.Close(ctx)

	var payments []*Payment
	for cursor.Next(ctx) {
		var payment Payment
		if err := cursor.Decode(&payment); err != nil {
			return nil, fmt.Errorf("error decoding payment: %v", err)
		}
		payments = append(payments, &payment)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return payments, nil
}
