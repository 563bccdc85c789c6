package auth

import (
	"encoding/json"
	"net/http"

	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthHandler struct {
	service AuthService
	tokens  *TokenManager
	log     *logger.Logger
}

func NewAuthHandler(service AuthService, tokens *TokenManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteCreated(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	httputil.WriteSuccess(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteNoContent(w)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
}
