package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// MockOrderStore implements store.OrderStore for testing
type MockOrderStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, order *domain.Order) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListFn         func(ctx context.Context) ([]*domain.Order, error)
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ExistsByIDFn   func(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateFn       func(ctx context.Context, order *domain.Order) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Orders      map[uuid.UUID]*domain.Order
	CreateError error
}

// NewMockOrderStore creates a new mock store with initialized defaults
func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		Orders: make(map[uuid.UUID]*domain.Order),
	}
}

// Create implements the OrderStore interface
func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Orders[order.ID] = order
	return nil
}

// GetByID implements the OrderStore interface
func (m *MockOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	order, exists := m.Orders[id]
	if !exists {
		return nil, store.ErrOrderNotFound
	}
	return order, nil
}

// List implements the OrderStore interface
func (m *MockOrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	orders := make([]*domain.Order, 0, len(m.Orders))
	for _, order := range m.Orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// ListByUserID implements the OrderStore interface
func (m *MockOrderStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Order, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	orders := make([]*domain.Order, 0)
	for _, order := range m.Orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// ExistsByID implements the OrderStore interface
func (m *MockOrderStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsByIDFn != nil {
		return m.ExistsByIDFn(ctx, id)
	}

	_, exists := m.Orders[id]
	return exists, nil
}

// Update implements the OrderStore interface
func (m *MockOrderStore) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, order)
	}

	if _, exists := m.Orders[order.ID]; !exists {
		return store.ErrOrderNotFound
	}
	m.Orders[order.ID] = order
	return nil
}

// Delete implements the OrderStore interface
func (m *MockOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Orders[id]; !exists {
		return store.ErrOrderNotFound
	}
	delete(m.Orders, id)
	return nil
}

// WithTx implements the OrderStore interface for transaction support
func (m *MockOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return m
}
