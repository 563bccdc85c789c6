package model

import "time"

// BookingLock is an advisory lock document keyed by room. Inserting it with
// a fixed _id serializes concurrent booking attempts for the same room; a
// TTL index on expires_at reaps locks abandoned by crashed requests.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
