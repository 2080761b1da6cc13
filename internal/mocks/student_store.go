package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// MockStudentStore implements store.StudentStore for testing
type MockStudentStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, student *domain.Student) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	ListFn    func(ctx context.Context) ([]*domain.Student, error)
	UpdateFn  func(ctx context.Context, student *domain.Student) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Students    map[uuid.UUID]*domain.Student
	CreateError error
}

// NewMockStudentStore creates a new mock store with initialized defaults
func NewMockStudentStore() *MockStudentStore {
	return &MockStudentStore{
		Students: make(map[uuid.UUID]*domain.Student),
	}
}

// Create implements the StudentStore interface
func (m *MockStudentStore) Create(ctx context.Context, student *domain.Student) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, student)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Students[student.ID] = student
	return nil
}

// GetByID implements the StudentStore interface
func (m *MockStudentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	student, exists := m.Students[id]
	if !exists {
		return nil, store.ErrStudentNotFound
	}
	return student, nil
}

// List implements the StudentStore interface
func (m *MockStudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	students := make([]*domain.Student, 0, len(m.Students))
	for _, student := range m.Students {
		students = append(students, student)
	}
	sort.Slice(students, func(i, j int) bool {
		return students[i].CreatedAt.Before(students[j].CreatedAt)
	})
	return students, nil
}

// Update implements the StudentStore interface
func (m *MockStudentStore) Update(ctx context.Context, student *domain.Student) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, student)
	}

	if _, exists := m.Students[student.ID]; !exists {
		return store.ErrStudentNotFound
	}
	m.Students[student.ID] = student
	return nil
}

// Delete implements the StudentStore interface
func (m *MockStudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Students[id]; !exists {
		return store.ErrStudentNotFound
	}
	delete(m.Students, id)
	return nil
}

// WithTx implements the StudentStore interface for transaction support
func (m *MockStudentStore) WithTx(tx *sql.Tx) store.StudentStore {
	return m
}
