package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/internal/bookings/repository"
	"innkeep/internal/bookings/validator"
	roomserrors "innkeep/internal/rooms/errors"
	roomsrepo "innkeep/internal/rooms/repository"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/events"
	"innkeep/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, roomID string, arrival, departure time.Time) (*model.Availability, error)
	Create(ctx context.Context, booking *model.Booking) error
	Cancel(ctx context.Context, bookingID, requesterID string) error
	ListByOwner(ctx context.Context, ownerID string) (*model.BookingList, error)
	ListAll(ctx context.Context) (*model.BookingList, error)
	AdminCancel(ctx context.Context, bookingID string) error
	BookedDates(ctx context.Context, roomID string) ([]model.DateRange, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	rooms     roomsrepo.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	rooms roomsrepo.RoomRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID string, arrival, departure time.Time) (*model.Availability, error) {
	if arrival.Before(s.now()) {
		return &model.Availability{Available: false, Reason: "Cannot book in the past"}, nil
	}
	if !departure.After(arrival) {
		return &model.Availability{Available: false, Reason: "Departure date must be after arrival date"}, nil
	}

	overlapping, err := s.repo.FindOverlapping(ctx, roomID, arrival, departure)
	if err != nil {
		return nil, apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(overlapping) > 0 {
		return &model.Availability{Available: false, Reason: "Room is already booked for these dates"}, nil
	}

	return &model.Availability{Available: true}, nil
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	if err := s.validate(booking); err != nil {
		return err
	}

	room, err := s.findRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}

	// Serialize concurrent attempts on the same room before the overlap
	// check, otherwise two requests can both pass it and double-book.
	lockID, err := s.acquireRoomLock(ctx, booking.RoomID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking); err != nil {
			return err
		}
		if booking.GuestsCount > room.MaxGuests {
			return apperrors.Validation(
				fmt.Sprintf("This room can accommodate maximum %d guests", room.MaxGuests),
				map[string]any{"maxGuests": room.MaxGuests, "guestsCount": booking.GuestsCount},
			)
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		if err := s.rooms.AppendBooking(sessCtx, booking.RoomID, booking.ID); err != nil {
			return apperrors.Internal("Failed to link booking to room", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return err
	}

	s.publish(ctx, events.TypeBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"owner_id", booking.OwnerID,
		"arrival_date", booking.ArrivalDate,
		"departure_date", booking.DepartureDate,
	)
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	// Not-owned is reported as not-found so callers cannot probe other
	// users' booking IDs.
	if booking.OwnerID != requesterID {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}

	now := s.now()
	if !booking.DepartureDate.After(now) {
		return apperrors.Validation("Cannot cancel past booking", nil)
	}
	if booking.ArrivalDate.Sub(now) < s.cfg.CancellationWindow {
		return apperrors.Validation(
			fmt.Sprintf("Cancellation must be at least %d hours before arrival", int(s.cfg.CancellationWindow.Hours())),
			nil,
		)
	}

	if err := s.delete(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", bookingID, "error", err)
		return err
	}

	s.publish(ctx, events.TypeBookingCancelled, booking)

	s.cfg.Log.Info("Booking cancelled successfully", "id", bookingID, "owner_id", requesterID)
	return nil
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID string) (*model.BookingList, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	bookings, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return s.partition(bookings, 0), nil
}

func (s *bookingService) ListAll(ctx context.Context) (*model.BookingList, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return s.partition(bookings, config.AdminHistoryLimit), nil
}

func (s *bookingService) AdminCancel(ctx context.Context, bookingID string) error {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.delete(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to delete booking", "id", bookingID, "error", err)
		return err
	}

	s.publish(ctx, events.TypeBookingCancelled, booking)

	s.cfg.Log.Info("Booking deleted by administrator", "id", bookingID)
	return nil
}

func (s *bookingService) BookedDates(ctx context.Context, roomID string) ([]model.DateRange, error) {
	bookings, err := s.repo.FindUpcomingByRoom(ctx, roomID, s.now())
	if err != nil {
		s.cfg.Log.Error("Failed to list booked dates", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booked dates", err)
	}

	ranges := make([]model.DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, model.DateRange{Start: b.ArrivalDate, End: b.DepartureDate})
	}
	return ranges, nil
}

// --- Helpers ---

// partition splits bookings around the current time. Active bookings
// (departure strictly in the future) are sorted ascending by arrival, past
// bookings descending by departure. pastLimit truncates the history when
// positive.
func (s *bookingService) partition(bookings []*model.Booking, pastLimit int) *model.BookingList {
	now := s.now()
	list := &model.BookingList{
		Active: []*model.Booking{},
		Past:   []*model.Booking{},
	}

	for _, b := range bookings {
		if b.DepartureDate.After(now) {
			list.Active = append(list.Active, b)
		} else {
			list.Past = append(list.Past, b)
		}
	}

	sort.Slice(list.Active, func(i, j int) bool {
		return list.Active[i].ArrivalDate.Before(list.Active[j].ArrivalDate)
	})
	sort.Slice(list.Past, func(i, j int) bool {
		return list.Past[i].DepartureDate.After(list.Past[j].DepartureDate)
	})

	if pastLimit > 0 && len(list.Past) > pastLimit {
		list.Past = list.Past[:pastLimit]
	}

	return list
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) findRoom(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return booking, nil
}

// delete removes the booking and its room back-reference in one transaction
// so the denormalized room list cannot drift from the booking collection.
func (s *bookingService) delete(ctx context.Context, booking *model.Booking) error {
	return s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, booking.ID); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", booking.ID)
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		if err := s.rooms.RemoveBooking(sessCtx, booking.RoomID, booking.ID); err != nil {
			if errors.Is(err, roomserrors.ErrNotFound) {
				// Room already gone; the booking row is the source of truth.
				return nil
			}
			return apperrors.Internal("Failed to unlink booking from room", err)
		}
		return nil
	})
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.RoomID, booking.ArrivalDate, booking.DepartureDate)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		if overlaps(b.ArrivalDate, b.DepartureDate, booking.ArrivalDate, booking.DepartureDate) {
			return apperrors.Conflict(fmt.Sprintf(
				"Room is already booked for these dates (%s - %s)",
				b.ArrivalDate.Format(time.RFC3339),
				b.DepartureDate.Format(time.RFC3339),
			))
		}
	}
	return nil
}

// overlaps is the half-open interval test: touching boundaries do not
// overlap.
func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s", roomID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This room is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	err := s.publisher.PublishBookingEvent(ctx, events.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		OwnerID:       booking.OwnerID,
		ArrivalDate:   booking.ArrivalDate,
		DepartureDate: booking.DepartureDate,
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "type", eventType, "booking_id", booking.ID, "error", err)
	}
}
