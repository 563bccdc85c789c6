package model

import "time"

type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID        string    `json:"roomId" bson:"room_id" validate:"required,mongodb"`
	OwnerID       string    `json:"ownerId" bson:"owner_id" validate:"required,mongodb"`
	ArrivalDate   time.Time `json:"arrivalDate" bson:"arrival_date" validate:"required"`
	DepartureDate time.Time `json:"departureDate" bson:"departure_date" validate:"required,gtfield=ArrivalDate"`
	GuestsCount   int       `json:"guestsCount" bson:"guests_count" validate:"required,min=1"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at" validate:"omitempty"`
}

// BookingList is the active/past partition returned by the listing
// operations. A booking is active while its departure is still in the future.
type BookingList struct {
	Active []*Booking `json:"active"`
	Past   []*Booking `json:"past"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
