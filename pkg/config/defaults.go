package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "innkeep"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// Development fallback only. Deployments must set TOKEN_SECRET.
	DefaultTokenSecret = "innkeep-dev-secret"
	DefaultTokenTTL    = 30 * 24 * time.Hour

	DefaultCancellationWindow = 24 * time.Hour

	DefaultKafkaBookingTopic = "hotel.bookings"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPageSize = 9
	MaxPageSize     = 100

	// Upper bound on the completed-booking history returned to admins.
	AdminHistoryLimit = 100
)
