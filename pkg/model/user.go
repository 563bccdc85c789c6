package model

import "time"

type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Login        string    `json:"login" bson:"login" validate:"required,min=3,max=64"`
	PasswordHash string    `json:"-" bson:"password_hash" validate:"required"`
	Role         Role      `json:"roleId" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}
