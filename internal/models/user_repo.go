package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) error {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("error creating user: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	err = col.FindOne(ctx, bson.M{"user_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.UpdateOne(ctx, bson.M{"user_id": id}, bson.M{"$set": data})
	if err != nil {
		return fmt.Errorf("error updating user: %v", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (mdb *MongodbRepo) DeleteUser(ctx context.Context, id string) error {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"user_id": id})
	if err != nil {
		return fmt.Errorf("error deleting user: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (mdb *MongodbRepo) ListCustomers(ctx context.Context) ([]*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := col.Find(ctx, bson.M{"role": RoleCustomer}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding customers: %v", err)
	}
	defer cursor.Close(ctx)

	var users []*User
	for cursor.Next(ctx) {
		var user User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("error decoding user: %v", err)
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return users, nil
}

func (mdb *MongodbRepo) SaveCredential(ctx context.Context, cred *Credential) error {
	col, err := mdb.GetCollection(ctx, DbName, AuthCollection)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"user_id": cred.UserID}
	update := bson.M{"$set": bson.M{
		"email":         cred.Email,
		"password_hash": cred.PasswordHash,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error saving credential: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetCredential(ctx context.Context, userID string) (*Credential, error) {
	col, err := mdb.GetCollection(ctx, DbName, AuthCollection)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var cred Credential
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding credential: %v", err)
	}
	return &cred, nil
}
