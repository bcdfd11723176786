package models

import (
	"context"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID        string    `bson:"user_id" json:"user_id"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Name      string    `bson:"name" json:"name" validate:"required"`
	Role      string    `bson:"role" json:"role"`
	Phone     string    `bson:"phone" json:"phone"`
	Address   string    `bson:"address" json:"address"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Credential holds the stored password hash for a user. Kept in a separate
// collection so user documents never carry secrets.
type Credential struct {
	UserID       string `bson:"user_id" json:"-"`
	Email        string `bson:"email" json:"-"`
	PasswordHash string `bson:"password_hash" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) error
	DeleteUser(ctx context.Context, id string) error
	ListCustomers(ctx context.Context) ([]*User, error)
	SaveCredential(ctx context.Context, cred *Credential) error
	GetCredential(ctx context.Context, userID string) (*Credential, error)
}
