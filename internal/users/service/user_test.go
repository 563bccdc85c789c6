package service

import (
	"context"
	"testing"

	userserrors "innkeep/internal/users/errors"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

const testUserID = "64b000000000000000000001"

// Mock repository for testing
type mockUserRepository struct {
	findAllFunc    func(ctx context.Context) ([]*model.User, error)
	updateRoleFunc func(ctx context.Context, id string, role model.Role) (*model.User, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, id, role)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestService(repo *mockUserRepository) UserService {
	return NewUserService(repo, &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	})
}

func TestList_NeverReturnsNil(t *testing.T) {
	repo := &mockUserRepository{
		findAllFunc: func(ctx context.Context) ([]*model.User, error) {
			return nil, nil
		},
	}
	service := newTestService(repo)

	users, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestRoles(t *testing.T) {
	service := newTestService(&mockUserRepository{})

	roles := service.Roles()
	if len(roles) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(roles))
	}
}

func TestUpdateRole(t *testing.T) {
	repo := &mockUserRepository{
		updateRoleFunc: func(ctx context.Context, id string, role model.Role) (*model.User, error) {
			return &model.User{ID: id, Role: role}, nil
		},
	}
	service := newTestService(repo)

	user, err := service.UpdateRole(context.Background(), testUserID, int(model.RoleModerator))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleModerator {
		t.Errorf("expected moderator role, got %d", user.Role)
	}
}

func TestUpdateRole_UnknownRole(t *testing.T) {
	service := newTestService(&mockUserRepository{})

	for _, roleID := range []int{-1, 3, 42} {
		_, err := service.UpdateRole(context.Background(), testUserID, roleID)
		appErr := apperrors.AsAppError(err)
		if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
			t.Fatalf("expected invalid input for role %d, got %v", roleID, err)
		}
	}
}

func TestUpdateRole_MissingUser(t *testing.T) {
	service := newTestService(&mockUserRepository{})

	_, err := service.UpdateRole(context.Background(), testUserID, int(model.RoleGuest))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_MissingUser(t *testing.T) {
	repo := &mockUserRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return userserrors.ErrNotFound
		},
	}
	service := newTestService(repo)

	err := service.Delete(context.Background(), testUserID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
