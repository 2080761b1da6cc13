package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
)

// StudentStore defines the interface for student data persistence.
type StudentStore interface {
	// Create saves a new student to the store.
	Create(ctx context.Context, student *domain.Student) error

	// GetByID retrieves a student by their unique ID.
	// Returns ErrStudentNotFound if the student does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)

	// List returns all students ordered by creation time.
	List(ctx context.Context) ([]*domain.Student, error)

	// Update overwrites an existing student's fields.
	// Returns ErrStudentNotFound if the student does not exist.
	Update(ctx context.Context, student *domain.Student) error

	// Delete removes a student from the store by their ID.
	// Returns ErrStudentNotFound if the student does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new StudentStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) StudentStore
}
