package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// Auth success message keys. Clients resolve these to display text, so the
// wire value stays stable across copy changes.
const (
	MessageRegisterSuccess = "auth.register.success"
	MessageLoginSuccess    = "auth.login.success"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// Message is a message key describing the outcome
	Message string `json:"message"`

	// Username identifies the authenticated account
	Username string `json:"username"`
}

// CreateUserRequest defines the payload for creating a user through the
// management endpoint. Same shape and bounds as registration.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest defines the payload for updating a user. All fields are
// overwritten; the password is re-hashed on every update.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// CreateOrderRequest defines the payload for creating an order. The owning
// user must be referenced explicitly.
type CreateOrderRequest struct {
	Title  string    `json:"title"   validate:"required"`
	Price  float64   `json:"price"   validate:"gte=0"`
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// UpdateOrderRequest defines the payload for updating an order. Title and
// price always overwrite; the owner changes only when user_id is present.
type UpdateOrderRequest struct {
	Title  string     `json:"title"   validate:"required"`
	Price  float64    `json:"price"   validate:"gte=0"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

// StudentRequest defines the payload for creating or updating a student.
type StudentRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"gte=0"`
}
