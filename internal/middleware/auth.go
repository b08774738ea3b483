package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// ctxKey is unexported so no other package can forge a context user.
type ctxKey int

const userKey ctxKey = iota

// UserResolver looks up the requesting user. Satisfied by repo.UserRepo.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// NewAuth returns a middleware that resolves the X-User-Id header into a
// domain.User and stores it in the request context.
//
// Authentication itself is out of scope for this service: the gateway in
// front of it authenticates the session and forwards the resolved user ID
// in X-User-Id. A missing, malformed, or unknown ID yields 401.
func NewAuth(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-Id")
			if raw == "" {
				unauthorized(w)
				return
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				unauthorized(w)
				return
			}
			user, err := users.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					unauthorized(w)
					return
				}
				internalError(w)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by NewAuth.
// The second return is false on routes that skipped the auth middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

// WithUser returns a context carrying the given user. Exported for
// handler tests, which have no middleware chain to populate it.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"unknown or missing user"}}`))
}

// internalError matches the handler package's error envelope so a failed
// user lookup does not leak a plain-text body into a JSON API.
func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"internal server error"}}`))
}
