package handler

import (
	"encoding/json"
	"net/http"

	"innkeep/internal/auth"
	"innkeep/internal/rooms/service"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, authmw *auth.Middleware, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *RoomHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page, err := httputil.QueryInt(r, "page", 1)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	minPrice, err := httputil.QueryFloat(r, "minPrice")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	maxPrice, err := httputil.QueryFloat(r, "maxPrice")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var minGuests *int
	if r.URL.Query().Get("minGuests") != "" {
		v, err := httputil.QueryInt(r, "minGuests", 0)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		minGuests = &v
	}

	filter := model.RoomFilter{
		Search:    r.URL.Query().Get("search"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MinGuests: minGuests,
	}

	result, err := h.service.Search(r.Context(), page, limit, filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, room)
}

func (h *RoomHandler) RoomTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	types, err := h.service.RoomTypes(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, types)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.Create(r.Context(), &room); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.RoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	room, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	admin := h.authmw.RequireRole(model.RoleAdministrator)
	editors := h.authmw.RequireRole(model.RoleAdministrator, model.RoleModerator)

	router.GET("/room-types", h.RoomTypes)
	router.GET("/rooms", h.Search)
	router.GET("/rooms/:id", h.GetByID)
	router.POST("/rooms", admin(h.Create))
	router.PATCH("/rooms/:id/edit", editors(h.Update))
	router.DELETE("/rooms/:id", admin(h.Delete))
}
