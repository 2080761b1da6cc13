package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/store"
)

// StudentService provides CRUD operations for students. Students have no
// cross-entity invariants, so the service is a thin transactional layer
// over the store.
type StudentService interface {
	// List returns all students; empty slice when none exist.
	List(ctx context.Context) ([]*domain.Student, error)

	// GetByID retrieves a student. Returns store.ErrStudentNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)

	// Create persists a new student.
	Create(ctx context.Context, name, email string, age int) (*domain.Student, error)

	// Update overwrites name, email and age on an existing student.
	Update(ctx context.Context, id uuid.UUID, name, email string, age int) (*domain.Student, error)

	// Delete removes a student. Returns store.ErrStudentNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentServiceError wraps errors from the student service with context.
type StudentServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for StudentServiceError.
func (e *StudentServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("student service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("student service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StudentServiceError) Unwrap() error {
	return e.Err
}

func newStudentServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &StudentServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// studentServiceImpl implements the StudentService interface.
type studentServiceImpl struct {
	studentStore store.StudentStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewStudentService creates a new StudentService.
// It returns an error if any of the required dependencies are nil.
func NewStudentService(
	studentStore store.StudentStore,
	db *sql.DB,
	logger *slog.Logger,
) (StudentService, error) {
	if studentStore == nil {
		return nil, &StudentServiceError{Operation: "create_service", Message: "studentStore cannot be nil"}
	}
	if db == nil {
		return nil, &StudentServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &studentServiceImpl{
		studentStore: studentStore,
		db:           db,
		logger:       logger.With("component", "student_service"),
	}, nil
}

// List implements StudentService.List.
func (s *studentServiceImpl) List(ctx context.Context) ([]*domain.Student, error) {
	students, err := s.studentStore.List(ctx)
	if err != nil {
		return nil, newStudentServiceError("list_students", "failed to list students", err)
	}
	return students, nil
}

// GetByID implements StudentService.GetByID.
func (s *studentServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, newStudentServiceError("get_student", "failed to load student", err)
	}
	return student, nil
}

// Create implements StudentService.Create.
func (s *studentServiceImpl) Create(
	ctx context.Context,
	name, email string,
	age int,
) (*domain.Student, error) {
	student, err := domain.NewStudent(name, email, age)
	if err != nil {
		return nil, newStudentServiceError("create_student", "invalid student data", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.studentStore.WithTx(tx).Create(ctx, student)
	})
	if err != nil {
		return nil, newStudentServiceError("create_student", "failed to save student", err)
	}

	s.logger.Info("student created", "student_id", student.ID)
	return student, nil
}

// Update implements StudentService.Update.
func (s *studentServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	name, email string,
	age int,
) (*domain.Student, error) {
	var updated *domain.Student

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.studentStore.WithTx(tx)

		existing, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		existing.Name = name
		existing.Email = email
		existing.Age = age
		existing.UpdatedAt = time.Now().UTC()

		if err := existing.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, newStudentServiceError("update_student", "failed to update student", err)
	}

	s.logger.Info("student updated", "student_id", id)
	return updated, nil
}

// Delete implements StudentService.Delete.
func (s *studentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.studentStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return newStudentServiceError("delete_student", "failed to delete student", err)
	}

	s.logger.Info("student deleted", "student_id", id)
	return nil
}
