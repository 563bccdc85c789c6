package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"innkeep/internal/auth"
	"innkeep/internal/bookings/service"
	apperrors "innkeep/pkg/errors"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, authmw *auth.Middleware, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	arrival, err := httputil.QueryTime(r, "arrivalDate")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	departure, err := httputil.QueryTime(r, "departureDate")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), ps.ByName("id"), arrival, departure)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, availability)
}

func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ranges, err := h.service.BookedDates(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, ranges)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	// Identity and bookkeeping fields come from the route, the session and
	// the repository, never from the request body.
	booking.ID = ""
	booking.RoomID = ps.ByName("id")
	booking.OwnerID = user.ID
	booking.CreatedAt = time.Time{}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	list, err := h.service.ListByOwner(r.Context(), user.ID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, list)
}

func (h *BookingHandler) CancelMine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
		return
	}

	if err := h.service.Cancel(r.Context(), ps.ByName("id"), user.ID); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, list)
}

func (h *BookingHandler) AdminCancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.AdminCancel(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	staff := h.authmw.RequireRole(model.RoleAdministrator, model.RoleModerator)

	router.GET("/rooms/:id/availability", h.CheckAvailability)
	router.GET("/rooms/:id/booked-dates", h.BookedDates)
	router.POST("/rooms/:id/bookings", h.authmw.Required(h.Create))
	router.GET("/my-bookings", h.authmw.Required(h.ListMine))
	router.DELETE("/my-bookings/:id", h.authmw.Required(h.CancelMine))
	router.GET("/admin/bookings", staff(h.ListAll))
	router.DELETE("/admin/bookings/:id", staff(h.AdminCancel))
}
