// Package handler implements the HTTP handlers for the check-in API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (health.go, checkin.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// CheckInServicer defines the business operations the check-in handlers
// depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types".
// It lets handler tests inject a mock without touching the database or
// service layer.
type CheckInServicer interface {
	Submit(ctx context.Context, raw string, ownerID uuid.UUID) (domain.CheckIn, error)
	List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error)
	Today(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID, actor domain.User) error
}

// TagServicer defines the tag operations the handlers depend on.
type TagServicer interface {
	ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
}

// ReportServicer defines the reporting operations the handlers depend on.
type ReportServicer interface {
	Grouped(ctx context.Context, f domain.CheckInFilter, dims []domain.Dimension) (domain.Report, error)
	UserTotals(ctx context.Context, f domain.UserTotalsFilter) ([]domain.UserTotal, error)
}

// ExportServicer defines the export operation the handlers depend on.
type ExportServicer interface {
	Export(ctx context.Context, f domain.CheckInFilter) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	checkins CheckInServicer
	tags     TagServicer
	reports  ReportServicer
	exports  ExportServicer
	openapi  []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi may be nil when the spec route is not wanted (tests).
func NewServer(checkins CheckInServicer, tags TagServicer, reports ReportServicer, exports ExportServicer, openapi []byte) *Server {
	return &Server{checkins: checkins, tags: tags, reports: reports, exports: exports, openapi: openapi}
}

// Routes registers every API route on the given router. auth is the
// user-resolving middleware; it wraps everything except /health and the
// spec route.
func (s *Server) Routes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/health", s.Health)
	r.Get("/openapi.yaml", s.OpenAPI)

	r.Group(func(g chi.Router) {
		g.Use(auth)
		g.Post("/checkins", s.CreateCheckIn)
		g.Get("/checkins", s.ListCheckIns)
		g.Get("/checkins/today", s.TodayCheckIns)
		g.Get("/checkins/export", s.ExportCheckIns)
		g.Delete("/checkins/{id}", s.DeleteCheckIn)
		g.Get("/tags", s.ListTags)
		g.Get("/reports", s.GetReport)
		g.Get("/admin/checkins", s.AdminListCheckIns)
		g.Get("/admin/users", s.AdminUserTotals)
	})
}
