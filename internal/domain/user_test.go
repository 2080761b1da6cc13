package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/storefront-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "secret123", user.Password)
	assert.Empty(t, user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "alice",
			email:    "alice@example.com",
			password: "secret123",
		},
		{
			name:     "empty username",
			username: "",
			email:    "alice@example.com",
			password: "secret123",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "username too short",
			username: "al",
			email:    "alice@example.com",
			password: "secret123",
			wantErr:  domain.ErrUsernameTooShort,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", domain.MaxUsernameLength+1),
			email:    "alice@example.com",
			password: "secret123",
			wantErr:  domain.ErrUsernameTooLong,
		},
		{
			name:     "empty email",
			username: "alice",
			email:    "",
			password: "secret123",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			username: "alice",
			email:    "alice.example.com",
			password: "secret123",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			username: "alice",
			email:    "alice@localhost",
			password: "secret123",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "password too short",
			username: "alice",
			email:    "alice@example.com",
			password: "12345",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			username: "alice",
			email:    "alice@example.com",
			password: strings.Repeat("a", domain.MaxPasswordLength+1),
			wantErr:  domain.ErrPasswordTooLong,
		},
		{
			name:     "missing password",
			username: "alice",
			email:    "alice@example.com",
			password: "",
			wantErr:  domain.ErrEmptyPassword,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := domain.NewUser(tc.username, tc.email, tc.password)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, user)
				return
			}

			assert.Nil(t, user)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation,
				"field errors must be recognizable as validation errors")
		})
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	t.Parallel()

	// Records loaded from storage carry a hash and no plaintext password.
	user, err := domain.NewUser("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"

	assert.NoError(t, user.Validate())
}
