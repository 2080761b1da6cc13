package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
)

// OrderStore defines the interface for order data persistence.
type OrderStore interface {
	// Create saves a new order to the store. Returns ErrUserNotFound when
	// the referenced user does not exist (foreign key violation).
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique ID.
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// List returns all orders ordered by creation time.
	List(ctx context.Context) ([]*domain.Order, error)

	// ListByUserID returns all orders owned by the given user, ordered by
	// creation time. The slice is empty, never nil, when the user has no
	// orders. Existence of the user itself is the service layer's concern.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)

	// ExistsByID reports whether an order with the given ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Update overwrites an existing order's title, price and owner.
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *domain.Order) error

	// Delete removes an order from the store by its ID.
	// Returns ErrOrderNotFound if the order does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new OrderStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) OrderStore
}
