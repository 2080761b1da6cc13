package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// MockStudentService implements service.StudentService for testing
type MockStudentService struct {
	ListFn    func(ctx context.Context) ([]*domain.Student, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	CreateFn  func(ctx context.Context, name, email string, age int) (*domain.Student, error)
	UpdateFn  func(ctx context.Context, id uuid.UUID, name, email string, age int) (*domain.Student, error)
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
}

// List implements the service.StudentService interface
func (m *MockStudentService) List(ctx context.Context) ([]*domain.Student, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*domain.Student{}, nil
}

// GetByID implements the service.StudentService interface
func (m *MockStudentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrStudentNotFound
}

// Create implements the service.StudentService interface
func (m *MockStudentService) Create(
	ctx context.Context,
	name, email string,
	age int,
) (*domain.Student, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, name, email, age)
	}
	return nil, store.ErrStudentNotFound
}

// Update implements the service.StudentService interface
func (m *MockStudentService) Update(
	ctx context.Context,
	id uuid.UUID,
	name, email string,
	age int,
) (*domain.Student, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, name, email, age)
	}
	return nil, store.ErrStudentNotFound
}

// Delete implements the service.StudentService interface
func (m *MockStudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return store.ErrStudentNotFound
}
