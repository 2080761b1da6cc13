package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Order field validation errors. Each wraps ErrValidation.
var (
	ErrEmptyOrderID     = fmt.Errorf("%w: order ID cannot be empty", ErrValidation)
	ErrEmptyOrderTitle  = fmt.Errorf("%w: order title cannot be blank", ErrValidation)
	ErrNegativePrice    = fmt.Errorf("%w: order price must not be negative", ErrValidation)
	ErrMissingOrderUser = fmt.Errorf("%w: order must reference a user", ErrValidation)
)

// Order represents a purchase order owned by a user. UserID is a plain
// foreign-key style reference; the resolved User is attached by the service
// layer on create/update and carried for response rendering only.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	UserID    uuid.UUID `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrder creates an Order with a generated ID and timestamps and
// validates the result. The owning user must exist; resolving it is the
// caller's responsibility.
func NewOrder(title string, price float64, userID uuid.UUID) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		ID:        uuid.New(),
		Title:     title,
		Price:     price,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks if the Order has valid data.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyOrderID
	}

	if strings.TrimSpace(o.Title) == "" {
		return ErrEmptyOrderTitle
	}

	if o.Price < 0 {
		return ErrNegativePrice
	}

	if o.UserID == uuid.Nil {
		return ErrMissingOrderUser
	}

	return nil
}
