package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akarpov/storefront-api/internal/api"
	apiMiddleware "github.com/akarpov/storefront-api/internal/api/middleware"
	"github.com/akarpov/storefront-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Every resource route is registered twice: the plain path
// and an /async variant running on the background executor.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.executor, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.executor, app.logger)
	orderHandler := api.NewOrderHandler(app.orderService, app.executor, app.logger)
	studentHandler := api.NewStudentHandler(app.studentService, app.executor, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/register/async", authHandler.RegisterAsync)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/login/async", authHandler.LoginAsync)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// User endpoints
			r.Get("/users", userHandler.List)
			r.Get("/users/async", userHandler.ListAsync)
			r.Post("/users", userHandler.Create)
			r.Post("/users/async", userHandler.CreateAsync)
			r.Get("/users/{id}", userHandler.Get)
			r.Get("/users/{id}/async", userHandler.GetAsync)
			r.Put("/users/{id}", userHandler.Update)
			r.Put("/users/{id}/async", userHandler.UpdateAsync)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Delete("/users/{id}/async", userHandler.DeleteAsync)

			// Order endpoints
			r.Get("/orders", orderHandler.List)
			r.Get("/orders/async", orderHandler.ListAsync)
			r.Post("/orders", orderHandler.Create)
			r.Post("/orders/async", orderHandler.CreateAsync)
			r.Get("/orders/user/{userId}", orderHandler.ListByUser)
			r.Get("/orders/user/{userId}/async", orderHandler.ListByUserAsync)
			r.Get("/orders/{id}", orderHandler.Get)
			r.Get("/orders/{id}/async", orderHandler.GetAsync)
			r.Put("/orders/{id}", orderHandler.Update)
			r.Put("/orders/{id}/async", orderHandler.UpdateAsync)
			r.Delete("/orders/{id}", orderHandler.Delete)
			r.Delete("/orders/{id}/async", orderHandler.DeleteAsync)

			// Student endpoints
			r.Get("/students", studentHandler.List)
			r.Get("/students/async", studentHandler.ListAsync)
			r.Post("/students", studentHandler.Create)
			r.Post("/students/async", studentHandler.CreateAsync)
			r.Get("/students/{id}", studentHandler.Get)
			r.Get("/students/{id}/async", studentHandler.GetAsync)
			r.Put("/students/{id}", studentHandler.Update)
			r.Put("/students/{id}/async", studentHandler.UpdateAsync)
			r.Delete("/students/{id}", studentHandler.Delete)
			r.Delete("/students/{id}/async", studentHandler.DeleteAsync)
		})
	})

	return r
}
