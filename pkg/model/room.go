package model

import "time"

type Room struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	RoomNumber  int       `json:"roomNumber" bson:"room_number" validate:"required,min=1"`
	RoomType    string    `json:"roomType" bson:"room_type" validate:"required,min=2,max=100"`
	MaxGuests   int       `json:"maxGuests" bson:"max_guests" validate:"required,min=1"`
	Description string    `json:"description" bson:"description" validate:"required"`
	Images      []string  `json:"images" bson:"images" validate:"omitempty,dive,url"`
	Price       float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Bookings    []string  `json:"bookings" bson:"bookings"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at" validate:"omitempty"`
}

// RoomUpdate carries the fields an administrator or moderator may edit.
// Nil pointers leave the stored value untouched.
type RoomUpdate struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty"`
	MaxGuests   *int      `json:"maxGuests,omitempty" validate:"omitempty,min=1"`
	Images      *[]string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
}

type RoomPage struct {
	Rooms    []*Room `json:"rooms"`
	Total    int64   `json:"total"`
	LastPage int     `json:"lastPage"`
}

// RoomFilter is the search criteria for the room directory. Search matches
// the title case-insensitively; the numeric filters are optional.
type RoomFilter struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinGuests *int
}
