package auth

import (
	"context"
	"errors"

	userserrors "innkeep/internal/users/errors"
	usersrepo "innkeep/internal/users/repository"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthService interface {
	Register(ctx context.Context, login, password string) (*model.User, string, error)
	Login(ctx context.Context, login, password string) (*model.User, string, error)
}

type authService struct {
	users  usersrepo.UserRepository
	tokens *TokenManager
	cfg    *config.Config
}

func NewAuthService(users usersrepo.UserRepository, tokens *TokenManager, cfg *config.Config) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
	}
}

func (s *authService) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	if login == "" || password == "" {
		return nil, "", apperrors.InvalidInput("Login and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Login:        login,
		PasswordHash: string(hash),
		Role:         model.RoleGuest,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateLogin) {
			return nil, "", apperrors.Conflict("Login is already taken")
		}
		s.cfg.Log.Error("Failed to register user", "login", login, "error", err)
		return nil, "", apperrors.Internal("Failed to register user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue session token", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "login", user.Login)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, login, password string) (*model.User, string, error) {
	if login == "" || password == "" {
		return nil, "", apperrors.InvalidInput("Login and password are required")
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			// Same message as a password mismatch so logins cannot be
			// enumerated.
			return nil, "", apperrors.Unauthorized("Invalid login or password")
		}
		s.cfg.Log.Error("Failed to look up user", "login", login, "error", err)
		return nil, "", apperrors.Internal("Failed to authenticate user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorized("Invalid login or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue session token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID, "login", user.Login)
	return user, token, nil
}
