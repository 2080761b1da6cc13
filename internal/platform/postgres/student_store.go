package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/platform/logger"
	"github.com/akarpov/storefront-api/internal/store"
)

// PostgresStudentStore implements the store.StudentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudentStore creates a new PostgreSQL implementation of the
// StudentStore interface.
func NewPostgresStudentStore(db store.DBTX, logger *slog.Logger) *PostgresStudentStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudentStore{
		db:     db,
		logger: logger.With(slog.String("component", "student_store")),
	}
}

// Ensure PostgresStudentStore implements store.StudentStore interface
var _ store.StudentStore = (*PostgresStudentStore)(nil)

// Create implements store.StudentStore.Create
func (s *PostgresStudentStore) Create(ctx context.Context, student *domain.Student) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := student.Validate(); err != nil {
		log.Warn("student validation failed during create",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.String()))
		return err
	}

	query := `
		INSERT INTO students (id, name, email, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		student.ID,
		student.Name,
		student.Email,
		student.Age,
		student.CreatedAt,
		student.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create student",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.String()))
		return err
	}

	log.Info("student created successfully",
		slog.String("student_id", student.ID.String()))
	return nil
}

// GetByID implements store.StudentStore.GetByID
// Returns store.ErrStudentNotFound if the student does not exist.
func (s *PostgresStudentStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Student, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, age, created_at, updated_at
		FROM students
		WHERE id = $1
	`

	var student domain.Student
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("student not found", slog.String("student_id", id.String()))
			return nil, store.ErrStudentNotFound
		}
		log.Error("failed to get student by ID",
			slog.String("error", err.Error()),
			slog.String("student_id", id.String()))
		return nil, err
	}

	return &student, nil
}

// List implements store.StudentStore.List
func (s *PostgresStudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, age, created_at, updated_at
		FROM students
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query students", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	students := []*domain.Student{}
	for rows.Next() {
		var student domain.Student
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan student row", slog.String("error", err.Error()))
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return students, nil
}

// Update implements store.StudentStore.Update
// Returns store.ErrStudentNotFound if the student does not exist.
func (s *PostgresStudentStore) Update(ctx context.Context, student *domain.Student) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := student.Validate(); err != nil {
		log.Warn("student validation failed during update",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.String()))
		return err
	}

	query := `
		UPDATE students
		SET name = $1, email = $2, age = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		student.Name,
		student.Email,
		student.Age,
		student.UpdatedAt,
		student.ID,
	)

	if err != nil {
		log.Error("failed to update student",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("student not found for update",
			slog.String("student_id", student.ID.String()))
		return store.ErrStudentNotFound
	}

	log.Info("student updated successfully",
		slog.String("student_id", student.ID.String()))
	return nil
}

// Delete implements store.StudentStore.Delete
// Returns store.ErrStudentNotFound if the student does not exist.
func (s *PostgresStudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete student",
			slog.String("error", err.Error()),
			slog.String("student_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("student_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("student not found for delete", slog.String("student_id", id.String()))
		return store.ErrStudentNotFound
	}

	log.Info("student deleted successfully", slog.String("student_id", id.String()))
	return nil
}

// WithTx implements store.StudentStore.WithTx
func (s *PostgresStudentStore) WithTx(tx *sql.Tx) store.StudentStore {
	return &PostgresStudentStore{
		db:     tx,
		logger: s.logger,
	}
}
