package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/handler"
)

type mockTagServicer struct {
	listOwned func(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
}

func (m *mockTagServicer) ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	return m.listOwned(ctx, userID)
}

var _ handler.TagServicer = (*mockTagServicer)(nil)

func TestListTags_200(t *testing.T) {
	user := regularUser()
	svc := &mockTagServicer{
		listOwned: func(_ context.Context, userID uuid.UUID) ([]domain.Tag, error) {
			assert.Equal(t, user.ID, userID)
			return []domain.Tag{
				{ID: uuid.New(), Name: "learning", Slug: "learning"},
				{ID: uuid.New(), Name: "project-x", Slug: "project-x"},
			}, nil
		},
	}
	srv := handler.NewServer(nil, svc, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(srv, injectUser(user)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Tag `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "learning", resp.Data[0].Slug)
}

func TestListTags_200_Empty(t *testing.T) {
	svc := &mockTagServicer{
		listOwned: func(_ context.Context, _ uuid.UUID) ([]domain.Tag, error) {
			return []domain.Tag{}, nil
		},
	}
	srv := handler.NewServer(nil, svc, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(srv, injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestListTags_500(t *testing.T) {
	svc := &mockTagServicer{
		listOwned: func(_ context.Context, _ uuid.UUID) ([]domain.Tag, error) {
			return nil, errors.New("connection reset")
		},
	}
	srv := handler.NewServer(nil, svc, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(srv, injectUser(regularUser())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", errorCode(t, rec.Body))
}
