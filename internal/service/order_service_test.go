package service_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/mocks"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/store"
)

func storedOrder(t *testing.T, userID uuid.UUID, title string, price float64) *domain.Order {
	t.Helper()

	now := time.Now().UTC()
	return &domain.Order{
		ID:        uuid.New(),
		Title:     title,
		Price:     price,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newOrderService(
	t *testing.T,
	orderStore store.OrderStore,
	userStore store.UserStore,
) service.OrderService {
	t.Helper()

	svc, err := service.NewOrderService(orderStore, userStore, &sql.DB{}, slog.Default())
	require.NoError(t, err)
	return svc
}

func TestNewOrderServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	orderStore := mocks.NewMockOrderStore()
	userStore := mocks.NewMockUserStore()

	_, err := service.NewOrderService(nil, userStore, &sql.DB{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orderStore cannot be nil")

	_, err = service.NewOrderService(orderStore, nil, &sql.DB{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "userStore cannot be nil")

	_, err = service.NewOrderService(orderStore, userStore, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db cannot be nil")
}

func TestOrderServiceGetByID(t *testing.T) {
	t.Parallel()

	orderStore := mocks.NewMockOrderStore()
	order := storedOrder(t, uuid.New(), "Widget", 9.99)
	orderStore.Orders[order.ID] = order

	svc := newOrderService(t, orderStore, mocks.NewMockUserStore())

	got, err := svc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Title)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestOrderServiceList(t *testing.T) {
	t.Parallel()

	orderStore := mocks.NewMockOrderStore()
	svc := newOrderService(t, orderStore, mocks.NewMockUserStore())

	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)

	order := storedOrder(t, uuid.New(), "Widget", 9.99)
	orderStore.Orders[order.ID] = order

	orders, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestOrderServiceListByUserID(t *testing.T) {
	t.Parallel()

	t.Run("unknown user is not found, not an empty list", func(t *testing.T) {
		t.Parallel()

		svc := newOrderService(t, mocks.NewMockOrderStore(), mocks.NewMockUserStore())

		orders, err := svc.ListByUserID(context.Background(), uuid.New())
		assert.Nil(t, orders)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("returns only the user's orders", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		owner := storedUser(t, "alice", "alice@example.com")
		userStore.Users[owner.Username] = owner

		orderStore := mocks.NewMockOrderStore()
		mine := storedOrder(t, owner.ID, "Widget", 9.99)
		other := storedOrder(t, uuid.New(), "Gadget", 19.99)
		orderStore.Orders[mine.ID] = mine
		orderStore.Orders[other.ID] = other

		svc := newOrderService(t, orderStore, userStore)

		orders, err := svc.ListByUserID(context.Background(), owner.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)
	})

	t.Run("existence check failure is wrapped", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userStore.ExistsByIDFn = func(ctx context.Context, id uuid.UUID) (bool, error) {
			return false, assert.AnError
		}

		svc := newOrderService(t, mocks.NewMockOrderStore(), userStore)

		_, err := svc.ListByUserID(context.Background(), uuid.New())
		require.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrUserNotFound)

		var svcErr *service.OrderServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "list_user_orders", svcErr.Operation)
	})
}

func TestOrderServiceCreateRejectsMissingUserID(t *testing.T) {
	t.Parallel()

	svc := newOrderService(t, mocks.NewMockOrderStore(), mocks.NewMockUserStore())

	order, err := svc.Create(context.Background(), "Widget", 9.99, uuid.Nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
