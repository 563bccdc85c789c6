package main

import (
	"innkeep/internal/auth"
	bookingshandler "innkeep/internal/bookings/handler"
	bookingsrepo "innkeep/internal/bookings/repository"
	bookingsservice "innkeep/internal/bookings/service"
	bookingsvalidator "innkeep/internal/bookings/validator"
	roomshandler "innkeep/internal/rooms/handler"
	roomsrepo "innkeep/internal/rooms/repository"
	roomsservice "innkeep/internal/rooms/service"
	roomsvalidator "innkeep/internal/rooms/validator"
	usershandler "innkeep/internal/users/handler"
	usersrepo "innkeep/internal/users/repository"
	usersservice "innkeep/internal/users/service"
	"innkeep/pkg/app"
	"innkeep/pkg/config"
	"innkeep/pkg/events"
)

const ServiceName = "hotel"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Hotel service")

	publisher := initPublisher(cfg)
	defer publisher.Close()

	serverApp := app.NewApplication(cfg, initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaBookingTopic)
	return publisher
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []app.RouteRegistrar {
	userRepo := usersrepo.NewMongoUserRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepo.NewBookingLockRepository(cfg)

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)
	authmw := auth.NewMiddleware(tokens, userRepo, cfg.Log)

	authService := auth.NewAuthService(userRepo, tokens, cfg)
	userService := usersservice.NewUserService(userRepo, cfg)
	roomService := roomsservice.NewRoomService(
		roomRepo,
		bookingRepo,
		roomsvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []app.RouteRegistrar{
		auth.NewAuthHandler(authService, tokens, cfg.Log),
		usershandler.NewUserHandler(userService, authmw, cfg.Log),
		roomshandler.NewRoomHandler(roomService, authmw, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, authmw, cfg.Log),
	}
}
