package service

import (
	"context"
	"errors"

	userserrors "innkeep/internal/users/errors"
	"innkeep/internal/users/repository"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
)

type UserService interface {
	List(ctx context.Context) ([]*model.User, error)
	Roles() []model.RoleInfo
	UpdateRole(ctx context.Context, userID string, roleID int) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

type userService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewUserService(repo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{repo: repo, cfg: cfg}
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

func (s *userService) Roles() []model.RoleInfo {
	return model.AllRoles()
}

func (s *userService) UpdateRole(ctx context.Context, userID string, roleID int) (*model.User, error) {
	role := model.Role(roleID)
	if !role.Valid() {
		return nil, apperrors.InvalidInput("Unknown role ID")
	}

	user, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to update user role", "id", userID, "error", err)
		return nil, apperrors.Internal("Failed to update user role", err)
	}

	s.cfg.Log.Info("User role updated", "id", userID, "role", role.Name())
	return user, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to delete user", "id", userID, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted", "id", userID)
	return nil
}
