package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// MockOrderService implements service.OrderService for testing
type MockOrderService struct {
	ListFn         func(ctx context.Context) ([]*domain.Order, error)
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	CreateFn       func(ctx context.Context, title string, price float64, userID uuid.UUID) (*domain.Order, error)
	UpdateFn       func(ctx context.Context, id uuid.UUID, title string, price float64, userID *uuid.UUID) (*domain.Order, error)
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
}

// List implements the service.OrderService interface
func (m *MockOrderService) List(ctx context.Context) ([]*domain.Order, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Order{}, nil
}

// GetByID implements the service.OrderService interface
func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrOrderNotFound
}

// ListByUserID implements the service.OrderService interface
func (m *MockOrderService) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Order, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, store.ErrUserNotFound
}

// Create implements the service.OrderService interface
func (m *MockOrderService) Create(
	ctx context.Context,
	title string,
	price float64,
	userID uuid.UUID,
) (*domain.Order, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, title, price, userID)
	}
	return nil, store.ErrUserNotFound
}

// Update implements the service.OrderService interface
func (m *MockOrderService) Update(
	ctx context.Context,
	id uuid.UUID,
	title string,
	price float64,
	userID *uuid.UUID,
) (*domain.Order, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, title, price, userID)
	}
	return nil, store.ErrOrderNotFound
}

// Delete implements the service.OrderService interface
func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrOrderNotFound
}
