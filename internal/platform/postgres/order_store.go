package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/platform/logger"
	"github.com/akarpov/storefront-api/internal/store"
)

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

// Create implements store.OrderStore.Create
// Returns store.ErrUserNotFound when the referenced user does not exist
// (foreign key violation), so nothing is persisted for orphan orders.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during create",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	query := `
		INSERT INTO orders (id, title, price, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.Title,
		order.Price,
		order.UserID,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during order creation",
				slog.String("order_id", order.ID.String()),
				slog.String("user_id", order.UserID.String()))
			return fmt.Errorf("%w: id %s", store.ErrUserNotFound, order.UserID)
		}

		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()),
			slog.String("user_id", order.UserID.String()))
		return err
	}

	log.Info("order created successfully",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", order.UserID.String()))
	return nil
}

// GetByID implements store.OrderStore.GetByID
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, price, user_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.Title,
		&order.Price,
		&order.UserID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("order not found", slog.String("order_id", id.String()))
			return nil, store.ErrOrderNotFound
		}
		log.Error("failed to get order by ID",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return nil, err
	}

	return &order, nil
}

// List implements store.OrderStore.List
func (s *PostgresOrderStore) List(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, title, price, user_id, created_at, updated_at
		FROM orders
		ORDER BY created_at
	`
	return s.queryOrders(ctx, query)
}

// ListByUserID implements store.OrderStore.ListByUserID
// Returns an empty slice when the user owns no orders.
func (s *PostgresOrderStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Order, error) {
	query := `
		SELECT id, title, price, user_id, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at
	`
	return s.queryOrders(ctx, query, userID)
}

func (s *PostgresOrderStore) queryOrders(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	orders := []*domain.Order{}
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID,
			&order.Title,
			&order.Price,
			&order.UserID,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan order row", slog.String("error", err.Error()))
			return nil, err
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return orders, nil
}

// ExistsByID implements store.OrderStore.ExistsByID
func (s *PostgresOrderStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		log.Error("failed to run existence query",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return false, err
	}
	return exists, nil
}

// Update implements store.OrderStore.Update
// Returns store.ErrOrderNotFound if the order does not exist and
// store.ErrUserNotFound when the new owner reference is invalid.
func (s *PostgresOrderStore) Update(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := order.Validate(); err != nil {
		log.Warn("order validation failed during update",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	query := `
		UPDATE orders
		SET title = $1, price = $2, user_id = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		order.Title,
		order.Price,
		order.UserID,
		order.UpdatedAt,
		order.ID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: id %s", store.ErrUserNotFound, order.UserID)
		}
		log.Error("failed to update order",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("order not found for update",
			slog.String("order_id", order.ID.String()))
		return store.ErrOrderNotFound
	}

	log.Info("order updated successfully",
		slog.String("order_id", order.ID.String()))
	return nil
}

// Delete implements store.OrderStore.Delete
// Returns store.ErrOrderNotFound if the order does not exist.
func (s *PostgresOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete order",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("order_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("order not found for delete", slog.String("order_id", id.String()))
		return store.ErrOrderNotFound
	}

	log.Info("order deleted successfully", slog.String("order_id", id.String()))
	return nil
}

// WithTx implements store.OrderStore.WithTx
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{
		db:     tx,
		logger: s.logger,
	}
}
