package validator

import (
	"testing"
	"time"

	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

func testValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		RoomID:        "64b000000000000000000001",
		OwnerID:       "64b000000000000000000002",
		ArrivalDate:   time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC),
		GuestsCount:   2,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *model.Booking)
		wantErr bool
	}{
		{
			name:   "valid booking",
			mutate: func(b *model.Booking) {},
		},
		{
			name:    "missing room id",
			mutate:  func(b *model.Booking) { b.RoomID = "" },
			wantErr: true,
		},
		{
			name:    "malformed room id",
			mutate:  func(b *model.Booking) { b.RoomID = "not-an-object-id" },
			wantErr: true,
		},
		{
			name:    "missing owner id",
			mutate:  func(b *model.Booking) { b.OwnerID = "" },
			wantErr: true,
		},
		{
			name:    "zero guests",
			mutate:  func(b *model.Booking) { b.GuestsCount = 0 },
			wantErr: true,
		},
		{
			name:    "negative guests",
			mutate:  func(b *model.Booking) { b.GuestsCount = -1 },
			wantErr: true,
		},
		{
			name:    "departure before arrival",
			mutate:  func(b *model.Booking) { b.DepartureDate = b.ArrivalDate.Add(-24 * time.Hour) },
			wantErr: true,
		},
		{
			name:    "departure equals arrival",
			mutate:  func(b *model.Booking) { b.DepartureDate = b.ArrivalDate },
			wantErr: true,
		},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "GuestsCount", Message: "must be at least 1"},
	}
	got := errs.Error()
	if got == "" {
		t.Error("expected non-empty message")
	}
	if ValidationErrors(nil).Error() != "" {
		t.Error("expected empty message for no errors")
	}
}
