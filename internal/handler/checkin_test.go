package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/handler"
	"github.com/checkinhq/checkin/backend/internal/middleware"
)

// mockCheckInServicer is a test double for handler.CheckInServicer.
// Set only the method fields your test needs.
type mockCheckInServicer struct {
	submit func(ctx context.Context, raw string, ownerID uuid.UUID) (domain.CheckIn, error)
	list   func(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error)
	today  func(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckIn, error)
	delete func(ctx context.Context, id uuid.UUID, actor domain.User) error
}

func (m *mockCheckInServicer) Submit(ctx context.Context, raw string, ownerID uuid.UUID) (domain.CheckIn, error) {
	return m.submit(ctx, raw, ownerID)
}
func (m *mockCheckInServicer) List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockCheckInServicer) Today(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckIn, error) {
	return m.today(ctx, ownerID)
}
func (m *mockCheckInServicer) Delete(ctx context.Context, id uuid.UUID, actor domain.User) error {
	return m.delete(ctx, id, actor)
}

var _ handler.CheckInServicer = (*mockCheckInServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// injectUser builds an auth middleware that stores user in the request
// context, standing in for the X-User-Id resolution tests don't need.
func injectUser(user domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), user)))
		})
	}
}

// passthroughAuth installs no user at all, exercising the handlers'
// missing-user guard.
func passthroughAuth(next http.Handler) http.Handler {
	return next
}

// newHTTPHandler wires a Server with the given mocks into a chi router
// the same way main.go does, with auth replaced by the given middleware.
func newHTTPHandler(srv *handler.Server, auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	srv.Routes(r, auth)
	return r
}

func checkInServer(svc handler.CheckInServicer) *handler.Server {
	return handler.NewServer(svc, nil, nil, nil, nil)
}

func regularUser() domain.User {
	return domain.User{ID: uuid.New(), Username: "alice"}
}

func checkInFixture(userID uuid.UUID) domain.CheckIn {
	return domain.CheckIn{
		ID:     uuid.New(),
		UserID: userID,
		Tag: &domain.Tag{
			ID:   uuid.New(),
			Name: "project-x",
			Slug: "project-x",
		},
		Hours:     550,
		Activity:  "fixed the login bug",
		Timestamp: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorCode decodes the error envelope and returns its code field.
func errorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error.Code
}

// ---- POST /checkins --------------------------------------------------------

func TestCreateCheckIn_201(t *testing.T) {
	user := regularUser()
	fixture := checkInFixture(user.ID)
	svc := &mockCheckInServicer{
		submit: func(_ context.Context, raw string, ownerID uuid.UUID) (domain.CheckIn, error) {
			assert.Equal(t, "5.5 hrs #project-x fixed the login bug", raw)
			assert.Equal(t, user.ID, ownerID)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]string{"checkin": "5.5 hrs #project-x fixed the login bug"})
	req := httptest.NewRequest(http.MethodPost, "/checkins", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID       uuid.UUID     `json:"id"`
		Hours    domain.Hours  `json:"hours"`
		Activity string        `json:"activity"`
		Display  string        `json:"display"`
		Tag      *domain.Tag   `json:"tag"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, domain.Hours(550), resp.Hours)
	assert.Equal(t, "5.5 hrs #project-x fixed the login bug", resp.Display)
	require.NotNil(t, resp.Tag)
	assert.Equal(t, "project-x", resp.Tag.Slug)
}

func TestCreateCheckIn_422_InvalidFormat(t *testing.T) {
	svc := &mockCheckInServicer{
		submit: func(_ context.Context, _ string, _ uuid.UUID) (domain.CheckIn, error) {
			return domain.CheckIn{}, domain.ErrInvalidFormat
		},
	}

	body := jsonBody(t, map[string]string{"checkin": "worked a lot today"})
	req := httptest.NewRequest(http.MethodPost, "/checkins", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec.Body))
}

func TestCreateCheckIn_422_EmptyBody(t *testing.T) {
	svc := &mockCheckInServicer{
		submit: func(_ context.Context, _ string, _ uuid.UUID) (domain.CheckIn, error) {
			t.Fatal("servicer must not be reached for an undecodable body")
			return domain.CheckIn{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/checkins", bytes.NewBufferString(""))
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateCheckIn_401_NoUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/checkins", jsonBody(t, map[string]string{"checkin": "1 hr #x"}))
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(&mockCheckInServicer{}), passthroughAuth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /checkins ---------------------------------------------------------

func TestListCheckIns_200(t *testing.T) {
	user := regularUser()
	fixture := checkInFixture(user.ID)
	svc := &mockCheckInServicer{
		list: func(_ context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
			require.NotNil(t, f.OwnerID, "listing must always be owner-scoped")
			assert.Equal(t, user.ID, *f.OwnerID)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 10, p.Limit)
			return []domain.CheckIn{fixture}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, 1, resp.Pagination.Total)
}

func TestListCheckIns_ForwardsFilters(t *testing.T) {
	user := regularUser()
	svc := &mockCheckInServicer{
		list: func(_ context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
			assert.Equal(t, "project-x", f.TagSlug)
			assert.Equal(t, "login", f.ActivityContains)
			require.NotNil(t, f.DateFrom)
			assert.Equal(t, "2024-03-01", f.DateFrom.Format("2006-01-02"))
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 25, p.Limit)
			return nil, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/checkins?tag=project-x&activity=login&from=2024-03-01&page=2&limit=25", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListCheckIns_422_BadDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/checkins?from=15-03-2024", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(&mockCheckInServicer{}), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec.Body))
}

// ---- GET /checkins/today ---------------------------------------------------

func TestTodayCheckIns_200(t *testing.T) {
	user := regularUser()
	svc := &mockCheckInServicer{
		today: func(_ context.Context, ownerID uuid.UUID) ([]domain.CheckIn, error) {
			assert.Equal(t, user.ID, ownerID)
			return []domain.CheckIn{checkInFixture(user.ID)}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/checkins/today", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
}

// ---- DELETE /checkins/{id} -------------------------------------------------

func TestDeleteCheckIn_204(t *testing.T) {
	user := regularUser()
	id := uuid.New()
	svc := &mockCheckInServicer{
		delete: func(_ context.Context, gotID uuid.UUID, actor domain.User) error {
			assert.Equal(t, id, gotID)
			assert.Equal(t, user.ID, actor.ID)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/checkins/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteCheckIn_404_NotFound(t *testing.T) {
	svc := &mockCheckInServicer{
		delete: func(_ context.Context, _ uuid.UUID, _ domain.User) error {
			return fmt.Errorf("service.CheckInService.Delete: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/checkins/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec.Body))
}

func TestDeleteCheckIn_404_MalformedID(t *testing.T) {
	svc := &mockCheckInServicer{
		delete: func(_ context.Context, _ uuid.UUID, _ domain.User) error {
			t.Fatal("servicer must not be reached for a malformed id")
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/checkins/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCheckIn_500_RepoFailure(t *testing.T) {
	svc := &mockCheckInServicer{
		delete: func(_ context.Context, _ uuid.UUID, _ domain.User) error {
			return fmt.Errorf("service.CheckInService.Delete: connection reset")
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/checkins/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(checkInServer(svc), injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", errorCode(t, rec.Body))
}
