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
	"github.com/akarpov/storefront-api/internal/service/auth"
	"github.com/akarpov/storefront-api/internal/store"
)

// Transactional paths (Create, Update, Delete) run against a real database in
// the integration suite; these tests cover the paths that only touch the
// store interface.

func storedUser(t *testing.T, username, email string) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	return &domain.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: "hashed:secret",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func newUserService(t *testing.T, userStore store.UserStore, verifier auth.PasswordVerifier) service.UserService {
	t.Helper()

	if verifier == nil {
		verifier = &mocks.MockPasswordVerifier{ShouldSucceed: true}
	}
	svc, err := service.NewUserService(
		userStore,
		&sql.DB{},
		&mocks.MockPasswordHasher{},
		verifier,
		slog.Default(),
	)
	require.NoError(t, err)
	return svc
}

func TestNewUserServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	hasher := &mocks.MockPasswordHasher{}
	verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
	db := &sql.DB{}

	tests := []struct {
		name      string
		userStore store.UserStore
		db        *sql.DB
		hasher    auth.PasswordHasher
		verifier  auth.PasswordVerifier
		wantErr   string
	}{
		{"nil user store", nil, db, hasher, verifier, "userStore cannot be nil"},
		{"nil db", userStore, nil, hasher, verifier, "db cannot be nil"},
		{"nil hasher", userStore, db, nil, verifier, "hasher cannot be nil"},
		{"nil verifier", userStore, db, hasher, nil, "verifier cannot be nil"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, err := service.NewUserService(tc.userStore, tc.db, tc.hasher, tc.verifier, nil)
			assert.Nil(t, svc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	svc, err := service.NewUserService(userStore, db, hasher, verifier, nil)
	require.NoError(t, err, "nil logger falls back to the default logger")
	assert.NotNil(t, svc)
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("success returns stored user", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user := storedUser(t, "alice", "alice@example.com")
		userStore.Users[user.Username] = user

		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		svc := newUserService(t, userStore, verifier)

		got, err := svc.Authenticate(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "hashed:secret", verifier.CompareCalledWith.HashedPassword)
		assert.Equal(t, "secret", verifier.CompareCalledWith.Password)
	})

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()

		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		svc := newUserService(t, mocks.NewMockUserStore(), verifier)

		got, err := svc.Authenticate(context.Background(), "ghost", "secret")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Zero(t, verifier.CompareCallCount, "must not compare against a missing user")
	})

	t.Run("wrong password yields the same error as unknown username", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		user := storedUser(t, "alice", "alice@example.com")
		userStore.Users[user.Username] = user

		svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{ShouldSucceed: false})

		got, err := svc.Authenticate(context.Background(), "alice", "wrong")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("store failure is wrapped, not mapped to invalid credentials", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		userStore.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return nil, assert.AnError
		}
		svc := newUserService(t, userStore, nil)

		_, err := svc.Authenticate(context.Background(), "alice", "secret")
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)

		var svcErr *service.UserServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "authenticate", svcErr.Operation)
	})
}

func TestUserServiceGetByID(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := storedUser(t, "alice", "alice@example.com")
	userStore.Users[user.Username] = user

	svc := newUserService(t, userStore, nil)

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserServiceGetByUsername(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := storedUser(t, "alice", "alice@example.com")
	userStore.Users[user.Username] = user

	svc := newUserService(t, userStore, nil)

	got, err := svc.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserServiceList(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	svc := newUserService(t, userStore, nil)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	first := storedUser(t, "alice", "alice@example.com")
	second := storedUser(t, "bob", "bob@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	userStore.Users[first.Username] = first
	userStore.Users[second.Username] = second

	users, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
