package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Student field validation errors. Each wraps ErrValidation.
var (
	ErrEmptyStudentID   = fmt.Errorf("%w: student ID cannot be empty", ErrValidation)
	ErrEmptyStudentName = fmt.Errorf("%w: student name cannot be empty", ErrValidation)
	ErrNegativeAge      = fmt.Errorf("%w: student age must not be negative", ErrValidation)
)

// Student is an independent entity with its own CRUD surface and no
// cross-entity invariants.
type Student struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudent creates a Student with a generated ID and timestamps and
// validates the result.
func NewStudent(name, email string, age int) (*Student, error) {
	now := time.Now().UTC()
	student := &Student{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := student.Validate(); err != nil {
		return nil, err
	}

	return student, nil
}

// Validate checks if the Student has valid data.
func (s *Student) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyStudentID
	}

	if s.Name == "" {
		return ErrEmptyStudentName
	}

	if s.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(s.Email) {
		return ErrInvalidEmail
	}

	if s.Age < 0 {
		return ErrNegativeAge
	}

	return nil
}
