package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User field validation errors. Each wraps ErrValidation so callers can
// branch on the kind without enumerating fields.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooShort    = fmt.Errorf("%w: username must be at least 3 characters long", ErrValidation)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 50 characters long", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// Username length bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50

	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's practical input limit.
	MaxPasswordLength = 72
)

// User represents a registered account. The plaintext Password field is
// populated only transiently during create/update and is never serialized
// or persisted; only HashedPassword is stored.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, transient during registration/updates
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given username, email and plaintext
// password. It generates the ID and timestamps and validates the result.
// The caller is responsible for hashing the password before storage.
func NewUser(username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns the first field error encountered.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// When a plaintext password is present, check its bounds. Otherwise the
	// record must already carry a hash (the case for users loaded from the
	// store).
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a shape check: a local part, an @, and a domain
// containing an interior dot. Full RFC 5322 parsing is left to the mail
// infrastructure that actually delivers to the address.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
