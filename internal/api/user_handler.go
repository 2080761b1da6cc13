package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akarpov/storefront-api/internal/api/shared"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/task"
)

// UserHandler handles user management API requests.
type UserHandler struct {
	userService service.UserService
	executor    *task.Executor
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userService service.UserService,
	executor *task.Executor,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		executor:    executor,
		logger:      logger.With("component", "user_handler"),
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// ListAsync handles GET /api/users/async.
func (h *UserHandler) ListAsync(w http.ResponseWriter, r *http.Request) {
	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.userService.List(ctx)
	})
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetAsync handles GET /api/users/{id}/async.
func (h *UserHandler) GetAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.userService.GetByID(ctx, id)
	})
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// CreateAsync handles POST /api/users/async.
func (h *UserHandler) CreateAsync(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusCreated, func(ctx context.Context) (any, error) {
		return h.userService.Create(ctx, req.Username, req.Email, req.Password)
	})
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateAsync handles PUT /api/users/{id}/async.
func (h *UserHandler) UpdateAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.userService.Update(ctx, id, req.Username, req.Email, req.Password)
	})
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAsync handles DELETE /api/users/{id}/async.
func (h *UserHandler) DeleteAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusNoContent, func(ctx context.Context) (any, error) {
		return nil, h.userService.Delete(ctx, id)
	})
}
