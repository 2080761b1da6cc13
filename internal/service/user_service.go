package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/service/auth"
	"github.com/akarpov/storefront-api/internal/store"
)

// UserService provides user account operations: creation with uniqueness
// checks, credential verification, full-overwrite updates and deletion.
type UserService interface {
	// Create validates uniqueness of username (checked first) and email,
	// hashes the password and persists the user inside a transaction.
	// Returns store.ErrUsernameExists or store.ErrEmailExists on conflict.
	Create(ctx context.Context, username, email, password string) (*domain.User, error)

	// Authenticate verifies the given credentials. An unknown username and a
	// wrong password both yield auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetByID retrieves a user. Returns store.ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user. Returns store.ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns all users; empty slice when none exist.
	List(ctx context.Context) ([]*domain.User, error)

	// Update overwrites username, email and password of an existing user.
	// The password is always re-hashed. Returns store.ErrUserNotFound when
	// the id is absent and the duplicate sentinels on uniqueness conflicts
	// with other records.
	Update(ctx context.Context, id uuid.UUID, username, email, password string) (*domain.User, error)

	// Delete removes a user. Returns store.ErrUserNotFound when absent, so
	// deleting the same id twice fails the second time.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserServiceError wraps errors from the user service with context.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// newUserServiceError wraps err unless it is a sentinel the caller is meant
// to branch on, in which case it is returned unchanged.
func newUserServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) || store.IsDuplicateError(err) ||
		errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore store.UserStore
	db        *sql.DB
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	db *sql.DB,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, &UserServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	}
	if db == nil {
		return nil, &UserServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if hasher == nil {
		return nil, &UserServiceError{Operation: "create_service", Message: "hasher cannot be nil"}
	}
	if verifier == nil {
		return nil, &UserServiceError{Operation: "create_service", Message: "verifier cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore: userStore,
		db:        db,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Create runs the uniqueness checks, hashes the password and persists the
// user. The whole sequence executes in one transaction so a concurrent
// insert between check and save still surfaces as a duplicate error rather
// than a constraint failure leaking out.
func (s *userServiceImpl) Create(
	ctx context.Context,
	username, email, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		s.logger.Debug("invalid user data on create", "error", err, "username", username)
		return nil, newUserServiceError("create_user", "invalid user data", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "username", username)
		return nil, newUserServiceError("create_user", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		// Username conflict is reported before email conflict.
		taken, err := txStore.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return store.ErrUsernameExists
		}

		taken, err = txStore.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return store.ErrEmailExists
		}

		return txStore.Create(ctx, user)
	})
	if err != nil {
		return nil, newUserServiceError("create_user", "failed to save user", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"username", user.Username)
	return user, nil
}

// Authenticate verifies credentials without revealing which part was wrong.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown username", "username", username)
			return nil, auth.ErrInvalidCredentials
		}
		return nil, newUserServiceError("authenticate", "failed to load user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch", "username", username)
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *userServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, newUserServiceError("get_user", "failed to load user", err)
	}
	return user, nil
}

// GetByUsername implements UserService.GetByUsername.
func (s *userServiceImpl) GetByUsername(
	ctx context.Context,
	username string,
) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, newUserServiceError("get_user", "failed to load user", err)
	}
	return user, nil
}

// List implements UserService.List.
func (s *userServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, newUserServiceError("list_users", "failed to list users", err)
	}
	return users, nil
}

// Update overwrites username, email and password in full. The submitted
// plaintext password is re-hashed before storage; pre-hashed values are not
// accepted.
func (s *userServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	username, email, password string,
) (*domain.User, error) {
	var updated *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		existing, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if username != existing.Username {
			taken, err := txStore.ExistsByUsername(ctx, username)
			if err != nil {
				return err
			}
			if taken {
				return store.ErrUsernameExists
			}
		}
		if email != existing.Email {
			taken, err := txStore.ExistsByEmail(ctx, email)
			if err != nil {
				return err
			}
			if taken {
				return store.ErrEmailExists
			}
		}

		existing.Username = username
		existing.Email = email
		existing.Password = password
		existing.UpdatedAt = time.Now().UTC()
		if err := existing.Validate(); err != nil {
			return err
		}

		// Hash only after validation so an out-of-bounds password surfaces
		// as a validation error, not a bcrypt failure.
		hashed, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		existing.Password = ""
		existing.HashedPassword = hashed

		if err := txStore.Update(ctx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, newUserServiceError("update_user", "failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id, "username", username)
	return updated, nil
}

// Delete implements UserService.Delete.
func (s *userServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return newUserServiceError("delete_user", "failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
