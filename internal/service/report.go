package service

import (
	"context"
	"fmt"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/repo"
)

// ReportService assembles grouped hours reports and the admin per-user
// totals listing.
type ReportService struct {
	checkins repo.CheckInRepo
	users    repo.UserRepo
}

// NewReportService constructs a ReportService backed by the provided repos.
func NewReportService(checkins repo.CheckInRepo, users repo.UserRepo) *ReportService {
	return &ReportService{checkins: checkins, users: users}
}

// Grouped fetches the check-ins matching the filter and aggregates them
// over the selected dimensions. Group ordering is deterministic
// (lexicographic by dimension tuple); the sum of row totals always equals
// the sum of hours over the filtered set.
func (s *ReportService) Grouped(ctx context.Context, f domain.CheckInFilter, dims []domain.Dimension) (domain.Report, error) {
	records, err := s.checkins.ListAll(ctx, f)
	if err != nil {
		return domain.Report{}, fmt.Errorf("service.ReportService.Grouped: %w", err)
	}
	if len(dims) == 0 {
		if records == nil {
			records = []domain.CheckIn{}
		}
		return domain.Report{CheckIns: records}, nil
	}
	return domain.Report{Rows: domain.Aggregate(records, dims)}, nil
}

// UserTotals returns every matching user with the sum of their check-in
// hours inside the filter's date range. Users with no check-ins in range
// are listed with a zero total, never omitted.
func (s *ReportService) UserTotals(ctx context.Context, f domain.UserTotalsFilter) ([]domain.UserTotal, error) {
	totals, err := s.users.Totals(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.UserTotals: %w", err)
	}
	if totals == nil {
		totals = []domain.UserTotal{}
	}
	return totals, nil
}
