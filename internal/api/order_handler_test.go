package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/mocks"
	"github.com/akarpov/storefront-api/internal/store"
)

func newOrderRouter(handler *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/orders", handler.List)
	r.Post("/api/orders", handler.Create)
	r.Post("/api/orders/async", handler.CreateAsync)
	r.Get("/api/orders/user/{userId}", handler.ListByUser)
	r.Get("/api/orders/user/{userId}/async", handler.ListByUserAsync)
	r.Get("/api/orders/{id}", handler.Get)
	r.Put("/api/orders/{id}", handler.Update)
	r.Delete("/api/orders/{id}", handler.Delete)
	return r
}

func testOrder(t *testing.T, title string, price float64, owner *domain.User) *domain.Order {
	t.Helper()

	order, err := domain.NewOrder(title, price, owner.ID)
	require.NoError(t, err)
	order.User = owner
	return order
}

func TestOrderHandlerCreate(t *testing.T) {
	t.Parallel()

	owner := testUser(t, "alice", "alice@example.com")

	tests := []struct {
		name       string
		payload    map[string]interface{}
		createErr  error
		wantStatus int
	}{
		{
			name: "valid create",
			payload: map[string]interface{}{
				"title":   "first order",
				"price":   9.99,
				"user_id": owner.ID.String(),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "missing user_id",
			payload: map[string]interface{}{
				"title": "first order",
				"price": 9.99,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown user",
			payload: map[string]interface{}{
				"title":   "first order",
				"price":   9.99,
				"user_id": uuid.NewString(),
			},
			createErr:  store.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "negative price",
			payload: map[string]interface{}{
				"title":   "first order",
				"price":   -1.0,
				"user_id": owner.ID.String(),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing title",
			payload: map[string]interface{}{
				"price":   9.99,
				"user_id": owner.ID.String(),
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderService := &mocks.MockOrderService{
				CreateFn: func(ctx context.Context, title string, price float64, userID uuid.UUID) (*domain.Order, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return testOrder(t, title, price, owner), nil
				},
			}
			handler := NewOrderHandler(orderService, newTestExecutor(t), slog.Default())
			router := newOrderRouter(handler)

			body, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(
				recorder,
				httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body)),
			)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var got domain.Order
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
				assert.Equal(t, "first order", got.Title)
				require.NotNil(t, got.User, "resolved owner should be attached")
				assert.Equal(t, owner.ID, got.User.ID)
			}
		})
	}
}

func TestOrderHandlerListByUser(t *testing.T) {
	t.Parallel()

	owner := testUser(t, "alice", "alice@example.com")
	orders := []*domain.Order{testOrder(t, "one", 1.0, owner)}

	orderService := &mocks.MockOrderService{
		ListByUserIDFn: func(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
			if userID != owner.ID {
				return nil, store.ErrUserNotFound
			}
			return orders, nil
		},
	}
	handler := NewOrderHandler(orderService, newTestExecutor(t), slog.Default())
	router := newOrderRouter(handler)

	t.Run("existing user", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"GET", "/api/orders/user/"+owner.ID.String(), nil))

		assert.Equal(t, http.StatusOK, recorder.Code)

		var got []*domain.Order
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Len(t, got, 1)
	})

	t.Run("unknown user is not found, not empty", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"GET", "/api/orders/user/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("async variant matches", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"GET", "/api/orders/user/"+uuid.NewString()+"/async", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestOrderHandlerUpdate(t *testing.T) {
	t.Parallel()

	owner := testUser(t, "alice", "alice@example.com")
	existing := testOrder(t, "original", 5.0, owner)

	var gotUserID *uuid.UUID
	orderService := &mocks.MockOrderService{
		UpdateFn: func(ctx context.Context, id uuid.UUID, title string, price float64, userID *uuid.UUID) (*domain.Order, error) {
			if id != existing.ID {
				return nil, store.ErrOrderNotFound
			}
			gotUserID = userID
			updated := testOrder(t, title, price, owner)
			updated.ID = existing.ID
			return updated, nil
		},
	}
	handler := NewOrderHandler(orderService, newTestExecutor(t), slog.Default())
	router := newOrderRouter(handler)

	t.Run("update without owner change", func(t *testing.T) {
		body, err := json.Marshal(map[string]interface{}{
			"title": "renamed",
			"price": 7.5,
		})
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"PUT", "/api/orders/"+existing.ID.String(), bytes.NewBuffer(body)))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Nil(t, gotUserID, "absent user_id should not reach the service")
	})

	t.Run("update with owner change", func(t *testing.T) {
		newOwner := uuid.New()
		body, err := json.Marshal(map[string]interface{}{
			"title":   "renamed",
			"price":   7.5,
			"user_id": newOwner.String(),
		})
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"PUT", "/api/orders/"+existing.ID.String(), bytes.NewBuffer(body)))

		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, gotUserID)
		assert.Equal(t, newOwner, *gotUserID)
	})

	t.Run("unknown order", func(t *testing.T) {
		body, err := json.Marshal(map[string]interface{}{
			"title": "renamed",
			"price": 7.5,
		})
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(
			"PUT", "/api/orders/"+uuid.NewString(), bytes.NewBuffer(body)))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestOrderHandlerDelete(t *testing.T) {
	t.Parallel()

	deleted := make(map[uuid.UUID]bool)
	known := uuid.New()

	orderService := &mocks.MockOrderService{
		DeleteFn: func(ctx context.Context, id uuid.UUID) error {
			if id != known || deleted[id] {
				return store.ErrOrderNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	handler := NewOrderHandler(orderService, newTestExecutor(t), slog.Default())
	router := newOrderRouter(handler)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/api/orders/"+known.String(), nil))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/api/orders/"+known.String(), nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
