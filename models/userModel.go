package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         *string   `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Password     *string   `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Email        *string   `bson:"email" json:"email" validate:"email,required"`
	Phone        *string   `bson:"phone" json:"phone" validate:"required"`
	Role         *string   `bson:"user_role" json:"user_role" validate:"required,eq=ADMIN|eq=WAITER|eq=KITCHEN|eq=CASHIER"`
	Token        *string   `bson:"token" json:"token"`
	RefreshToken *string   `bson:"refresh_token" json:"refresh_token"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NewID returns a fresh hex object id used as the _id of every record.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
