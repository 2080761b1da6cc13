package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateFn        func(ctx context.Context, username, email, password string) (*domain.User, error)
	AuthenticateFn  func(ctx context.Context, username, password string) (*domain.User, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateFn        func(ctx context.Context, id uuid.UUID, username, email, password string) (*domain.User, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
}

// Create implements the service.UserService interface
func (m *MockUserService) Create(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, username, email, password)
	}
	return nil, store.ErrUserNotFound
}

// Authenticate implements the service.UserService interface
func (m *MockUserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, username, password)
	}
	return nil, store.ErrUserNotFound
}

// GetByID implements the service.UserService interface
func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements the service.UserService interface
func (m *MockUserService) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, store.ErrUserNotFound
}

// List implements the service.UserService interface
func (m *MockUserService) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.User{}, nil
}

// Update implements the service.UserService interface
func (m *MockUserService) Update(
	ctx context.Context,
	id uuid.UUID,
	username, email, password string,
) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, username, email, password)
	}
	return nil, store.ErrUserNotFound
}

// Delete implements the service.UserService interface
func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrUserNotFound
}
