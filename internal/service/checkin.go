// Package service contains the business logic for the check-in API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/repo"
)

// CheckInService implements the submission pipeline and check-in
// listings. It holds the tag service because submitting a check-in
// resolves its tag with get-or-create semantics.
type CheckInService struct {
	checkins repo.CheckInRepo
	tags     *TagService
	clock    Clock
}

// NewCheckInService constructs a CheckInService.
func NewCheckInService(checkins repo.CheckInRepo, tags *TagService, clock Clock) *CheckInService {
	return &CheckInService{checkins: checkins, tags: tags, clock: clock}
}

// Submit runs the full pipeline for one raw check-in line:
// parse → tag get-or-create → persist.
//
// Parse failures (domain.ErrEmptyInput, domain.ErrInvalidFormat,
// domain.ErrValidation) propagate verbatim with nothing written. The tag
// is resolved by the parser's slug-shaped token used as the tag *name* —
// tags created this way have name == slug, a documented compatibility
// quirk. Persistence failures surface wrapped and are not retried here.
func (s *CheckInService) Submit(ctx context.Context, raw string, ownerID uuid.UUID) (domain.CheckIn, error) {
	parsed, err := ParseCheckIn(raw)
	if err != nil {
		return domain.CheckIn{}, err
	}

	tag, err := s.tags.GetOrCreate(ctx, parsed.TagSlug)
	if err != nil {
		return domain.CheckIn{}, err
	}

	checkin := domain.CheckIn{
		UserID:    ownerID,
		Tag:       &tag,
		Hours:     parsed.Hours,
		Activity:  parsed.Activity,
		Timestamp: s.clock.Now(),
	}
	created, err := s.checkins.Create(ctx, checkin)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("service.CheckInService.Submit: %w", err)
	}
	return created, nil
}

// List returns one page of check-ins matching the filter, newest first,
// plus the total match count.
func (s *CheckInService) List(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
	checkins, total, err := s.checkins.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CheckInService.List: %w", err)
	}
	if checkins == nil {
		checkins = []domain.CheckIn{}
	}
	return checkins, total, nil
}

// Today returns the owner's check-ins for the current calendar day.
func (s *CheckInService) Today(ctx context.Context, ownerID uuid.UUID) ([]domain.CheckIn, error) {
	today := s.clock.Now()
	f := domain.CheckInFilter{
		OwnerID:  &ownerID,
		DateFrom: &today,
		DateTo:   &today,
	}
	checkins, err := s.checkins.ListAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.CheckInService.Today: %w", err)
	}
	if checkins == nil {
		checkins = []domain.CheckIn{}
	}
	return checkins, nil
}

// Delete removes a check-in on behalf of actor. Admins may delete any
// record; everyone else only their own. A non-owner gets
// domain.ErrNotFound whether or not the record exists, so deletion never
// probes another user's data.
func (s *CheckInService) Delete(ctx context.Context, id uuid.UUID, actor domain.User) error {
	var err error
	if actor.IsAdmin {
		err = s.checkins.Delete(ctx, id)
	} else {
		err = s.checkins.DeleteOwned(ctx, id, actor.ID)
	}
	if err != nil {
		return fmt.Errorf("service.CheckInService.Delete: %w", err)
	}
	return nil
}
