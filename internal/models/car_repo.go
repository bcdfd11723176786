package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (mdb *MongodbRepo) CreateCar(ctx context.Context, car *Car) error {
	col, err := mdb.GetCollection(ctx, DbName, CarsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, car); err != nil {
		return fmt.Errorf("error creating car: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetCarByID(ctx context.Context, id string) (*Car, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var car Car
	err = col.FindOne(ctx, bson.M{"car_id": id}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("error finding car: %v", err)
	}
	return &car, nil
}

func (mdb *MongodbRepo) ListCars(ctx context.Context) ([]*Car, error) {
	return mdb.findCars(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListCarsByStatus(ctx context.Context, status CarStatus) ([]*Car, error) {
	return mdb.findCars(ctx, bson.M{"status": status})
}

func (mdb *MongodbRepo) findCars(ctx context.Context, filter bson.M) ([]*Car, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarsCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding cars: %v", err)
	}
	defer cursor.Close(ctx)

	var cars []*Car
	for cursor.Next(ctx) {
		var car Car
		if err := cursor.Decode(&car); err != nil {
			return nil, fmt.Errorf("error decoding car: %v", err)
		}
		cars = append(cars, &car)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return cars, nil
}

func (mdb *MongodbRepo) UpdateCar(ctx context.Context, id string, data map[string]interface{}) error {
	col, err := mdb.GetCollection(ctx, DbName, CarsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"car_id": id}, bson.M{"$set": data})
	if err != nil {
		return fmt.Errorf("error updating car: %v", err)
	}
	if res.MatchedCount == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (mdb *MongodbRepo) UpdateCarStatus(ctx context.Context, id string, status CarStatus) error {
	return mdb.UpdateCar(ctx, id, map[string]interface{}{"status": status})
}

func (mdb *MongodbRepo) DeleteCar(ctx context.Context, id string) error {
	col, err := mdb.GetCollection(ctx, DbName, CarsCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"car_id": id})
	if err != nil {
		return fmt.Errorf("error deleting car: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrCarNotFound
	}
	return nil
}
