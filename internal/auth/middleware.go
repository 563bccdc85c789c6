package auth

import (
	"context"
	"net/http"

	usersrepo "innkeep/internal/users/repository"
	apperrors "innkeep/pkg/errors"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const CookieName = "token"

type contextKey string

const userContextKey contextKey = "auth_user"

// UserFromContext returns the authenticated user stashed by Required.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

// Middleware guards routes with session-cookie authentication and role
// membership checks.
type Middleware struct {
	tokens *TokenManager
	users  usersrepo.UserRepository
	log    *logger.Logger
}

func NewMiddleware(tokens *TokenManager, users usersrepo.UserRepository, log *logger.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

// Required verifies the session cookie, loads the user and stores it in the
// request context.
func (m *Middleware) Required(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Authentication required"))
			return
		}

		userID, err := m.tokens.Verify(cookie.Value)
		if err != nil {
			m.log.Warn("Session token rejected", "error", err)
			httputil.WriteError(w, apperrors.Unauthorized("Invalid session token"))
			return
		}

		user, err := m.users.FindByID(r.Context(), userID)
		if err != nil {
			httputil.WriteError(w, apperrors.Unauthorized("User not authenticated"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireRole authenticates and additionally checks role membership.
func (m *Middleware) RequireRole(roles ...model.Role) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return m.Required(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.Role.In(roles...) {
				httputil.WriteError(w, apperrors.Forbidden("Access denied"))
				return
			}
			next(w, r, ps)
		})
	}
}
