package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/storefront-api/internal/domain"
	"github.com/akarpov/storefront-api/internal/mocks"
	"github.com/akarpov/storefront-api/internal/service/auth"
	"github.com/akarpov/storefront-api/internal/store"
	"github.com/akarpov/storefront-api/internal/task"
)

// newTestExecutor returns a started executor that stops with the test.
func newTestExecutor(t *testing.T) *task.Executor {
	t.Helper()

	executor := task.NewExecutor(task.ExecutorConfig{WorkerCount: 1, QueueSize: 8}, slog.Default())
	executor.Start()
	t.Cleanup(executor.Stop)
	return executor
}

func testUser(t *testing.T, username, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(username, email, "password123")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "hashed"
	return user
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		payload     map[string]interface{}
		createErr   error
		wantStatus  int
		wantToken   bool
		wantMessage string
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"username": "alice",
				"email":    "alice@example.com",
				"password": "password123",
			},
			wantStatus:  http.StatusCreated,
			wantToken:   true,
			wantMessage: MessageRegisterSuccess,
		},
		{
			name: "duplicate username",
			payload: map[string]interface{}{
				"username": "alice",
				"email":    "other@example.com",
				"password": "password123",
			},
			createErr:  store.ErrUsernameExists,
			wantStatus: http.StatusConflict,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"username": "bob",
				"email":    "alice@example.com",
				"password": "password123",
			},
			createErr:  store.ErrEmailExists,
			wantStatus: http.StatusConflict,
		},
		{
			name: "username too short",
			payload: map[string]interface{}{
				"username": "ab",
				"email":    "ab@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"username": "carol",
				"email":    "not-an-email",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"username": "carol",
				"email":    "carol@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing username",
			payload: map[string]interface{}{
				"email":    "carol@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userService := &mocks.MockUserService{
				CreateFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return testUser(t, username, email), nil
				},
			}
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			handler := NewAuthHandler(userService, jwtService, newTestExecutor(t), slog.Default())

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Register(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				err = json.NewDecoder(recorder.Body).Decode(&authResp)
				require.NoError(t, err)
				assert.Equal(t, "test-token", authResp.Token)
				assert.Equal(t, tt.wantMessage, authResp.Message)
				assert.Equal(t, tt.payload["username"], authResp.Username)
			}
		})
	}
}

func TestRegisterAsync(t *testing.T) {
	t.Parallel()

	userService := &mocks.MockUserService{
		CreateFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return testUser(t, username, email), nil
		},
	}
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := NewAuthHandler(userService, jwtService, newTestExecutor(t), slog.Default())

	payload := map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	}
	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(
		"POST",
		"/api/auth/register/async",
		bytes.NewBuffer(payloadBytes),
	)
	recorder := httptest.NewRecorder()

	handler.RegisterAsync(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var authResp AuthResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
	assert.Equal(t, "test-token", authResp.Token)
	assert.Equal(t, "alice", authResp.Username)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		authErr    error
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid login",
			payload: map[string]interface{}{
				"username": "alice",
				"password": "password123",
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "unknown username",
			payload: map[string]interface{}{
				"username": "nobody",
				"password": "password123",
			},
			authErr:    auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"username": "alice",
				"password": "wrongpassword",
			},
			authErr:    auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "alice",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userService := &mocks.MockUserService{
				AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
					if tt.authErr != nil {
						return nil, tt.authErr
					}
					return testUser(t, username, username+"@example.com"), nil
				},
			}
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			handler := NewAuthHandler(userService, jwtService, newTestExecutor(t), slog.Default())

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payloadBytes))
			recorder := httptest.NewRecorder()

			handler.Login(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantToken {
				var authResp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&authResp))
				assert.Equal(t, "test-token", authResp.Token)
				assert.Equal(t, MessageLoginSuccess, authResp.Message)
			}
		})
	}
}

func TestLoginAsyncMatchesSync(t *testing.T) {
	t.Parallel()

	userService := &mocks.MockUserService{
		AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, auth.ErrInvalidCredentials
		},
	}
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := NewAuthHandler(userService, jwtService, newTestExecutor(t), slog.Default())

	payload, err := json.Marshal(map[string]interface{}{
		"username": "alice",
		"password": "wrongpassword",
	})
	require.NoError(t, err)

	syncRec := httptest.NewRecorder()
	handler.Login(syncRec, httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payload)))

	asyncRec := httptest.NewRecorder()
	handler.LoginAsync(
		asyncRec,
		httptest.NewRequest("POST", "/api/auth/login/async", bytes.NewBuffer(payload)),
	)

	assert.Equal(t, http.StatusUnauthorized, syncRec.Code)
	assert.Equal(t, syncRec.Code, asyncRec.Code)
}

func TestLoginAsyncRespectsRequestDeadline(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	userService := &mocks.MockUserService{
		AuthenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			<-blocked
			return nil, auth.ErrInvalidCredentials
		},
	}
	jwtService := &mocks.MockJWTService{Token: "test-token"}
	handler := NewAuthHandler(userService, jwtService, newTestExecutor(t), slog.Default())
	defer close(blocked)

	payload, err := json.Marshal(map[string]interface{}{
		"username": "alice",
		"password": "password123",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest("POST", "/api/auth/login/async", bytes.NewBuffer(payload)).
		WithContext(ctx)
	recorder := httptest.NewRecorder()

	handler.LoginAsync(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
