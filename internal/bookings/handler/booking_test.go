package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"innkeep/internal/auth"
	userserrors "innkeep/internal/users/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	testRoomID = "64b000000000000000000001"
	testUserID = "64b000000000000000000002"
)

// Mock service for testing
type mockBookingService struct {
	createFunc func(ctx context.Context, booking *model.Booking) error
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, roomID string, arrival, departure time.Time) (*model.Availability, error) {
	return &model.Availability{Available: true}, nil
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "64b000000000000000000003"
	return nil
}

func (m *mockBookingService) Cancel(ctx context.Context, bookingID, requesterID string) error {
	return nil
}

func (m *mockBookingService) ListByOwner(ctx context.Context, ownerID string) (*model.BookingList, error) {
	return &model.BookingList{}, nil
}

func (m *mockBookingService) ListAll(ctx context.Context) (*model.BookingList, error) {
	return &model.BookingList{}, nil
}

func (m *mockBookingService) AdminCancel(ctx context.Context, bookingID string) error { return nil }

func (m *mockBookingService) BookedDates(ctx context.Context, roomID string) ([]model.DateRange, error) {
	return []model.DateRange{}, nil
}

type mockUserRepository struct {
	user *model.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error { return nil }

func testRouter(service *mockBookingService) (*httprouter.Router, *auth.TokenManager) {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	users := &mockUserRepository{user: &model.User{ID: testUserID, Role: model.RoleGuest}}
	authmw := auth.NewMiddleware(tokens, users, log)

	router := httprouter.New()
	NewBookingHandler(service, authmw, log).RegisterRoutes(router)
	return router, tokens
}

func TestCreate_IgnoresClientSuppliedIdentityFields(t *testing.T) {
	var captured *model.Booking
	idAtCall := "unset"
	service := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			captured = booking
			idAtCall = booking.ID
			booking.ID = "64b000000000000000000003"
			return nil
		},
	}
	router, tokens := testRouter(service)

	token, err := tokens.Issue(testUserID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	body := `{
		"id": "64b0000000000000000000ff",
		"roomId": "64b0000000000000000000fe",
		"ownerId": "64b0000000000000000000fd",
		"arrivalDate": "2026-06-01T00:00:00Z",
		"departureDate": "2026-06-05T00:00:00Z",
		"guestsCount": 2,
		"createdAt": "2020-01-01T00:00:00Z"
	}`
	req := httptest.NewRequest(http.MethodPost, "/rooms/"+testRoomID+"/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured == nil {
		t.Fatal("expected service to receive the booking")
	}
	if idAtCall != "" {
		t.Errorf("expected client-supplied id dropped, got %q", idAtCall)
	}
	if captured.RoomID != testRoomID {
		t.Errorf("expected room ID from the route, got %q", captured.RoomID)
	}
	if captured.OwnerID != testUserID {
		t.Errorf("expected owner ID from the session, got %q", captured.OwnerID)
	}
	if !captured.CreatedAt.IsZero() {
		t.Errorf("expected client-supplied createdAt dropped, got %v", captured.CreatedAt)
	}
}

func TestCreate_RequiresSession(t *testing.T) {
	router, _ := testRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/rooms/"+testRoomID+"/bookings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
