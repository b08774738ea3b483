package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/middleware"
)

// stubResolver is a function-backed middleware.UserResolver.
type stubResolver func(ctx context.Context, id uuid.UUID) (domain.User, error)

func (f stubResolver) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return f(ctx, id)
}

// recordingHandler captures the context user the middleware installed.
func recordingHandler(got *domain.User, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *found = middleware.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ResolvesUserIntoContext(t *testing.T) {
	user := domain.User{ID: uuid.New(), Username: "alice"}
	auth := middleware.NewAuth(stubResolver(func(_ context.Context, id uuid.UUID) (domain.User, error) {
		assert.Equal(t, user.ID, id)
		return user, nil
	}))

	var (
		got   domain.User
		found bool
	)
	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	req.Header.Set("X-User-Id", user.ID.String())
	rec := httptest.NewRecorder()

	auth(recordingHandler(&got, &found)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, found)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestAuth_401_MissingHeader(t *testing.T) {
	auth := middleware.NewAuth(stubResolver(func(_ context.Context, _ uuid.UUID) (domain.User, error) {
		t.Fatal("resolver must not be called without a header")
		return domain.User{}, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	rec := httptest.NewRecorder()

	auth(trivialHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"unknown or missing user"}}`, rec.Body.String())
}

func TestAuth_401_MalformedID(t *testing.T) {
	auth := middleware.NewAuth(stubResolver(func(_ context.Context, _ uuid.UUID) (domain.User, error) {
		t.Fatal("resolver must not be called for a malformed id")
		return domain.User{}, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	req.Header.Set("X-User-Id", "not-a-uuid")
	rec := httptest.NewRecorder()

	auth(trivialHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_401_UnknownUser(t *testing.T) {
	auth := middleware.NewAuth(stubResolver(func(_ context.Context, _ uuid.UUID) (domain.User, error) {
		return domain.User{}, domain.ErrNotFound
	}))

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	rec := httptest.NewRecorder()

	auth(trivialHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_500_ResolverFailure(t *testing.T) {
	auth := middleware.NewAuth(stubResolver(func(_ context.Context, _ uuid.UUID) (domain.User, error) {
		return domain.User{}, errors.New("connection reset")
	}))

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	rec := httptest.NewRecorder()

	auth(trivialHandler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Same error envelope as every other failure in the API.
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal server error"}}`, rec.Body.String())
}

func TestUserFromContext_AbsentWithoutMiddleware(t *testing.T) {
	_, ok := middleware.UserFromContext(context.Background())
	assert.False(t, ok)
}
