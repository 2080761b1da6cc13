package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/akarpov/storefront-api/internal/api/shared"
	"github.com/akarpov/storefront-api/internal/service"
	"github.com/akarpov/storefront-api/internal/task"
)

// StudentHandler handles student API requests.
type StudentHandler struct {
	studentService service.StudentService
	executor       *task.Executor
	logger         *slog.Logger
}

// NewStudentHandler creates a new StudentHandler with the given dependencies.
func NewStudentHandler(
	studentService service.StudentService,
	executor *task.Executor,
	logger *slog.Logger,
) *StudentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentHandler{
		studentService: studentService,
		executor:       executor,
		logger:         logger.With("component", "student_handler"),
	}
}

// List handles GET /api/students.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, students)
}

// ListAsync handles GET /api/students/async.
func (h *StudentHandler) ListAsync(w http.ResponseWriter, r *http.Request) {
	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.studentService.List(ctx)
	})
}

// Get handles GET /api/students/{id}.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	student, err := h.studentService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, student)
}

// GetAsync handles GET /api/students/{id}/async.
func (h *StudentHandler) GetAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.studentService.GetByID(ctx, id)
	})
}

// Create handles POST /api/students.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.studentService.Create(r.Context(), req.Name, req.Email, req.Age)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, student)
}

// CreateAsync handles POST /api/students/async.
func (h *StudentHandler) CreateAsync(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusCreated, func(ctx context.Context) (any, error) {
		return h.studentService.Create(ctx, req.Name, req.Email, req.Age)
	})
}

// Update handles PUT /api/students/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req StudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	student, err := h.studentService.Update(r.Context(), id, req.Name, req.Email, req.Age)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, student)
}

// UpdateAsync handles PUT /api/students/{id}/async.
func (h *StudentHandler) UpdateAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req StudentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondDeferred(w, r, h.executor, http.StatusOK, func(ctx context.Context) (any, error) {
		return h.studentService.Update(ctx, id, req.Name, req.Email, req.Age)
	})
}

// Delete handles DELETE /api/students/{id}.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.studentService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAsync handles DELETE /api/students/{id}/async.
func (h *StudentHandler) DeleteAsync(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	respondDeferred(w, r, h.executor, http.StatusNoContent, func(ctx context.Context) (any, error) {
		return nil, h.studentService.Delete(ctx, id)
	})
}
