package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akarpov/storefront-api/internal/api/shared"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/task"
)

// OrderHandler handles order API requests.
type OrderHandler struct {
	orderService service.OrderService
	executor     *task.Executor
	logger       *slog.Logger
}

// NewOrderHandler creates a new OrderHandler with the given dependencies.
func NewOrderHandler(
	orderService service.OrderService,
	executor *task.Executor,
	logger *slog.Logger,
) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		orderService: orderService,
		executor:     executor,
		logger:       logger.With("component", "order_handler"),
	}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, orders)
}

// ListAsync handles GET /api/orders/async.
func (h *OrderHandler) ListAsync(w http.ResponseWriter, r *http.Request) {
	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.orderService.List(ctx)
	})
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, order)
}

// GetAsync handles GET /api/orders/{id}/async.
func (h *OrderHandler) GetAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.orderService.GetByID(ctx, id)
	})
}

// ListByUser handles GET /api/orders/user/{userId}. The user must exist;
// a missing user is 404 rather than an empty list.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	orders, err := h.orderService.ListByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, orders)
}

// ListByUserAsync handles GET /api/orders/user/{userId}/async.
func (h *OrderHandler) ListByUserAsync(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.orderService.ListByUserID(ctx, userID)
	})
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.Create(r.Context(), req.Title, req.Price, req.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, order)
}

// CreateAsync handles POST /api/orders/async.
func (h *OrderHandler) CreateAsync(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusCreated, func(ctx context.Context) (any, error) {
		return h.orderService.Create(ctx, req.Title, req.Price, req.UserID)
	})
}

// Update handles PUT /api/orders/{id}.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.Update(r.Context(), id, req.Title, req.Price, req.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, order)
}

// UpdateAsync handles PUT /api/orders/{id}/async.
func (h *OrderHandler) UpdateAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.orderService.Update(ctx, id, req.Title, req.Price, req.UserID)
	})
}

// Delete handles DELETE /api/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAsync handles DELETE /api/orders/{id}/async.
func (h *OrderHandler) DeleteAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusNoContent, func(ctx context.Context) (any, error) {
		return nil, h.orderService.Delete(ctx, id)
	})
}
