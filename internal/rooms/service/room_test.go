package service

import (
	"context"
	"testing"
	"time"

	bookingserrors "innkeep/internal/bookings/errors"
	roomserrors "innkeep/internal/rooms/errors"
	"innkeep/internal/rooms/validator"
	"innkeep/pkg/config"
	mongotx "innkeep/pkg/db/mongo"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

const testRoomID = "64b000000000000000000001"

// Mock repositories for testing
type mockRoomRepository struct {
	createFunc        func(ctx context.Context, room *model.Room) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Room, error)
	searchFunc        func(ctx context.Context, filter model.RoomFilter, limit int, skip int64) ([]*model.Room, error)
	countBySearchFunc func(ctx context.Context, filter model.RoomFilter) (int64, error)
	roomTypesFunc     func(ctx context.Context) ([]string, error)
	updateFunc        func(ctx context.Context, id string, room *model.Room) error
	deleteFunc        func(ctx context.Context, id string) error
}

func (m *mockRoomRepository) Create(ctx context.Context, room *model.Room) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, room)
	}
	room.ID = testRoomID
	return nil
}

func (m *mockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, roomserrors.ErrNotFound
}

func (m *mockRoomRepository) Search(ctx context.Context, filter model.RoomFilter, limit int, skip int64) ([]*model.Room, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter, limit, skip)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) CountBySearch(ctx context.Context, filter model.RoomFilter) (int64, error) {
	if m.countBySearchFunc != nil {
		return m.countBySearchFunc(ctx, filter)
	}
	return 0, nil
}

func (m *mockRoomRepository) RoomTypes(ctx context.Context) ([]string, error) {
	if m.roomTypesFunc != nil {
		return m.roomTypesFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockRoomRepository) Update(ctx context.Context, id string, room *model.Room) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, room)
	}
	return nil
}

func (m *mockRoomRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRoomRepository) AppendBooking(ctx context.Context, roomID, bookingID string) error {
	return nil
}

func (m *mockRoomRepository) RemoveBooking(ctx context.Context, roomID, bookingID string) error {
	return nil
}

func (m *mockRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockBookingRepository struct {
	countUpcomingFunc func(ctx context.Context, roomID string, after time.Time) (int64, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, roomID string, arrival, departure time.Time) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindUpcomingByRoom(ctx context.Context, roomID string, after time.Time) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) CountUpcomingByRoom(ctx context.Context, roomID string, after time.Time) (int64, error) {
	if m.countUpcomingFunc != nil {
		return m.countUpcomingFunc(ctx, roomID, after)
	}
	return 0, nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error { return nil }

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockRoomRepository, bookings *mockBookingRepository) *roomService {
	cfg := testConfig()
	return &roomService{
		repo:      repo,
		bookings:  bookings,
		validator: validator.NewRoomValidator(cfg.Log),
		cfg:       cfg,
		now:       func() time.Time { return time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func sampleRoom() *model.Room {
	return &model.Room{
		Title:       "Deluxe Sea View",
		RoomNumber:  101,
		RoomType:    "deluxe",
		MaxGuests:   3,
		Description: "Corner room with a sea view",
		Price:       120.5,
	}
}

func TestSearch_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		limit        int
		total        int64
		wantSkip     int64
		wantLimit    int
		wantLastPage int
	}{
		{
			name:         "defaults applied for out-of-range values",
			page:         0,
			limit:        0,
			total:        20,
			wantSkip:     0,
			wantLimit:    config.DefaultPageSize,
			wantLastPage: 3,
		},
		{
			name:         "second page skips the first",
			page:         2,
			limit:        10,
			total:        25,
			wantSkip:     10,
			wantLimit:    10,
			wantLastPage: 3,
		},
		{
			name:         "oversized limit clamped",
			page:         1,
			limit:        1000,
			total:        250,
			wantSkip:     0,
			wantLimit:    config.MaxPageSize,
			wantLastPage: 3,
		},
		{
			name:         "exact multiple has no partial page",
			page:         1,
			limit:        10,
			total:        30,
			wantSkip:     0,
			wantLimit:    10,
			wantLastPage: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSkip int64
			var gotLimit int
			repo := &mockRoomRepository{
				searchFunc: func(ctx context.Context, filter model.RoomFilter, limit int, skip int64) ([]*model.Room, error) {
					gotSkip = skip
					gotLimit = limit
					return []*model.Room{sampleRoom()}, nil
				},
				countBySearchFunc: func(ctx context.Context, filter model.RoomFilter) (int64, error) {
					return tt.total, nil
				},
			}
			service := newTestService(repo, &mockBookingRepository{})

			page, err := service.Search(context.Background(), tt.page, tt.limit, model.RoomFilter{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotSkip != tt.wantSkip {
				t.Errorf("expected skip %d, got %d", tt.wantSkip, gotSkip)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, gotLimit)
			}
			if page.Total != tt.total {
				t.Errorf("expected total %d, got %d", tt.total, page.Total)
			}
			if page.LastPage != tt.wantLastPage {
				t.Errorf("expected last page %d, got %d", tt.wantLastPage, page.LastPage)
			}
		})
	}
}

func TestSearch_TrimsSearchTerm(t *testing.T) {
	var gotFilter model.RoomFilter
	repo := &mockRoomRepository{
		searchFunc: func(ctx context.Context, filter model.RoomFilter, limit int, skip int64) ([]*model.Room, error) {
			gotFilter = filter
			return []*model.Room{}, nil
		},
	}
	service := newTestService(repo, &mockBookingRepository{})

	_, err := service.Search(context.Background(), 1, 10, model.RoomFilter{Search: "  deluxe  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter.Search != "deluxe" {
		t.Errorf("expected trimmed search term, got %q", gotFilter.Search)
	}
}

func TestGetByID(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{name: "found"},
		{name: "missing room", repoErr: roomserrors.ErrNotFound, wantCode: apperrors.CodeNotFound},
		{name: "malformed id", repoErr: roomserrors.ErrInvalidID, wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRoomRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					room := sampleRoom()
					room.ID = id
					return room, nil
				},
			}
			service := newTestService(repo, &mockBookingRepository{})

			room, err := service.GetByID(context.Background(), testRoomID)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if room.ID != testRoomID {
					t.Errorf("expected room %s, got %s", testRoomID, room.ID)
				}
				return
			}

			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	service := newTestService(&mockRoomRepository{}, &mockBookingRepository{})

	room := sampleRoom()
	room.Price = 0

	err := service.Create(context.Background(), room)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_MergesPartialFields(t *testing.T) {
	existing := sampleRoom()
	existing.ID = testRoomID

	var savedRoom *model.Room
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			return existing, nil
		},
		updateFunc: func(ctx context.Context, id string, room *model.Room) error {
			savedRoom = room
			return nil
		},
	}
	service := newTestService(repo, &mockBookingRepository{})

	newPrice := 150.0
	newTitle := "Renovated Deluxe"
	updated, err := service.Update(context.Background(), testRoomID, &model.RoomUpdate{
		Title: &newTitle,
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != newTitle || updated.Price != newPrice {
		t.Errorf("expected updated fields, got %+v", updated)
	}
	if updated.MaxGuests != existing.MaxGuests || updated.Description != existing.Description {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}
	if savedRoom == nil || savedRoom.Title != newTitle {
		t.Errorf("expected merged room persisted, got %+v", savedRoom)
	}
}

func TestDelete_RefusedWithUpcomingBookings(t *testing.T) {
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			room := sampleRoom()
			room.ID = id
			return room, nil
		},
	}
	bookings := &mockBookingRepository{
		countUpcomingFunc: func(ctx context.Context, roomID string, after time.Time) (int64, error) {
			return 2, nil
		},
	}
	service := newTestService(repo, bookings)

	err := service.Delete(context.Background(), testRoomID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDelete_Succeeds(t *testing.T) {
	deleted := ""
	repo := &mockRoomRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Room, error) {
			room := sampleRoom()
			room.ID = id
			return room, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	service := newTestService(repo, &mockBookingRepository{})

	if err := service.Delete(context.Background(), testRoomID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != testRoomID {
		t.Errorf("expected room %s deleted, got %q", testRoomID, deleted)
	}
}
