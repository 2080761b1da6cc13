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

// OrderService provides order operations with referential-integrity checks
// against the user store.
type OrderService interface {
	// List returns all orders; empty slice when none exist.
	List(ctx context.Context) ([]*domain.Order, error)

	// GetByID retrieves an order. Returns store.ErrOrderNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// ListByUserID returns the orders owned by the given user. The user
	// itself must exist: a missing user yields store.ErrUserNotFound even
	// though the query alone would just return no rows. An existing user
	// with zero orders yields an empty slice.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)

	// Create persists a new order. A nil userID fails validation; an
	// unknown userID fails with store.ErrUserNotFound and persists nothing.
	// On success the resolved owner is attached to the returned order.
	Create(ctx context.Context, title string, price float64, userID uuid.UUID) (*domain.Order, error)

	// Update overwrites title and price unconditionally. When userID is
	// non-nil the owner is re-resolved (store.ErrUserNotFound if absent);
	// otherwise the existing owner is retained.
	Update(ctx context.Context, id uuid.UUID, title string, price float64, userID *uuid.UUID) (*domain.Order, error)

	// Delete removes an order. Returns store.ErrOrderNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderServiceError wraps errors from the order service with context.
type OrderServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for OrderServiceError.
func (e *OrderServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("order service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *OrderServiceError) Unwrap() error {
	return e.Err
}

func newOrderServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &OrderServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// orderServiceImpl implements the OrderService interface.
type orderServiceImpl struct {
	orderStore store.OrderStore
	userStore  store.UserStore
	db         *sql.DB
	logger     *slog.Logger
}

// NewOrderService creates a new OrderService.
// It returns an error if any of the required dependencies are nil.
func NewOrderService(
	orderStore store.OrderStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) (OrderService, error) {
	if orderStore == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "orderStore cannot be nil"}
	}
	if userStore == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if db == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &orderServiceImpl{
		orderStore: orderStore,
		userStore:  userStore,
		db:         db,
		logger:     logger.With("component", "order_service"),
	}, nil
}

// List implements OrderService.List.
func (s *orderServiceImpl) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderStore.List(ctx)
	if err != nil {
		return nil, newOrderServiceError("list_orders", "failed to list orders", err)
	}
	return orders, nil
}

// GetByID implements OrderService.GetByID.
func (s *orderServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderStore.GetByID(ctx, id)
	if err != nil {
		return nil, newOrderServiceError("get_order", "failed to load order", err)
	}
	return order, nil
}

// ListByUserID gates on user existence before querying, so an unknown user
// is a not-found error rather than an empty result.
func (s *orderServiceImpl) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Order, error) {
	exists, err := s.userStore.ExistsByID(ctx, userID)
	if err != nil {
		return nil, newOrderServiceError("list_user_orders", "failed to check user", err)
	}
	if !exists {
		s.logger.Debug("orders requested for unknown user", "user_id", userID)
		return nil, fmt.Errorf("%w: id %s", store.ErrUserNotFound, userID)
	}

	orders, err := s.orderStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, newOrderServiceError("list_user_orders", "failed to list orders", err)
	}
	return orders, nil
}

// Create resolves the owning user before persisting so an order can never
// reference a missing user.
func (s *orderServiceImpl) Create(
	ctx context.Context,
	title string,
	price float64,
	userID uuid.UUID,
) (*domain.Order, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "is required", domain.ErrValidation)
	}

	var created *domain.Order

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)
		txOrders := s.orderStore.WithTx(tx)

		owner, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		order, err := domain.NewOrder(title, price, owner.ID)
		if err != nil {
			return err
		}

		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}

		order.User = owner
		created = order
		return nil
	})
	if err != nil {
		return nil, newOrderServiceError("create_order", "failed to save order", err)
	}

	s.logger.Info("order created",
		"order_id", created.ID,
		"user_id", created.UserID)
	return created, nil
}

// Update overwrites title and price; the owner changes only when the patch
// carries a user reference.
func (s *orderServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	title string,
	price float64,
	userID *uuid.UUID,
) (*domain.Order, error) {
	var updated *domain.Order

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.userStore.WithTx(tx)
		txOrders := s.orderStore.WithTx(tx)

		existing, err := txOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}

		existing.Title = title
		existing.Price = price
		existing.UpdatedAt = time.Now().UTC()

		var owner *domain.User
		if userID != nil && *userID != uuid.Nil {
			owner, err = txUsers.GetByID(ctx, *userID)
			if err != nil {
				return err
			}
			existing.UserID = owner.ID
		} else {
			owner, err = txUsers.GetByID(ctx, existing.UserID)
			if err != nil {
				return err
			}
		}

		if err := existing.Validate(); err != nil {
			return err
		}

		if err := txOrders.Update(ctx, existing); err != nil {
			return err
		}

		existing.User = owner
		updated = existing
		return nil
	})
	if err != nil {
		return nil, newOrderServiceError("update_order", "failed to update order", err)
	}

	s.logger.Info("order updated", "order_id", id)
	return updated, nil
}

// Delete implements OrderService.Delete.
func (s *orderServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.orderStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return newOrderServiceError("delete_order", "failed to delete order", err)
	}

	s.logger.Info("order deleted", "order_id", id)
	return nil
}
