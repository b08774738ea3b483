package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/repo"
)

// ExportService assembles a flat, denormalized export of check-ins.
type ExportService struct {
	checkins repo.CheckInRepo
	users    repo.UserRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(checkins repo.CheckInRepo, users repo.UserRepo) *ExportService {
	return &ExportService{checkins: checkins, users: users}
}

// Export returns one ExportRow per check-in matching the filter, in the
// repo's listing order (newest first). Usernames are resolved once per
// distinct owner.
func (s *ExportService) Export(ctx context.Context, f domain.CheckInFilter) ([]domain.ExportRow, error) {
	records, err := s.checkins.ListAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	usernames := map[uuid.UUID]string{}
	rows := make([]domain.ExportRow, 0, len(records))
	for _, rec := range records {
		name, ok := usernames[rec.UserID]
		if !ok {
			user, err := s.users.GetByID(ctx, rec.UserID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: %w", err)
			}
			name = user.Username
			usernames[rec.UserID] = name
		}

		row := domain.ExportRow{
			Timestamp: rec.Timestamp.Format("2006-01-02 15:04"),
			Username:  name,
			Hours:     rec.Hours.String(),
			Activity:  rec.Activity,
		}
		if rec.Tag != nil {
			row.TagName = rec.Tag.Name
			row.TagSlug = rec.Tag.Slug
		}
		rows = append(rows, row)
	}
	return rows, nil
}
