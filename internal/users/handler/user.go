package handler

import (
	"encoding/json"
	"net/http"

	"innkeep/internal/auth"
	"innkeep/internal/users/service"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type roleUpdateRequest struct {
	RoleID int `json:"roleId"`
}

type UserHandler struct {
	service service.UserService
	authmw  *auth.Middleware
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, authmw *auth.Middleware, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		authmw:  authmw,
		log:     log,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, users)
}

func (h *UserHandler) Roles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteSuccess(w, h.service.Roles())
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req roleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.service.UpdateRole(r.Context(), ps.ByName("id"), req.RoleID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	admin := h.authmw.RequireRole(model.RoleAdministrator)

	router.GET("/users", admin(h.List))
	router.GET("/users/roles", admin(h.Roles))
	router.PATCH("/users/:id", admin(h.UpdateRole))
	router.DELETE("/users/:id", admin(h.Delete))
}
