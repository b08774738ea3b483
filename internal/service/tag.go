package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/repo"
)

// nonAlphanumeric matches the character runs Slugify collapses into hyphens.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a tag name into its slug: lower-cased, runs of
// non-alphanumeric characters replaced by single hyphens, leading and
// trailing hyphens stripped. Idempotent — slugifying a slug is a no-op.
func Slugify(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// TagService implements business logic for Tag operations: slug
// normalization and get-or-create with the race arbitrated by the
// tags.name unique constraint.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// GetOrCreate looks a tag up by exact name, creating it with a freshly
// computed slug when absent. The slug is computed once here and never
// recomputed on later renames.
//
// Two concurrent calls for a never-before-seen name race on the insert;
// the loser gets domain.ErrDuplicateTag from the repo and retries the
// lookup. Retries are bounded; exhausting them surfaces the error.
func (s *TagService) GetOrCreate(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	}
	slug := Slugify(name)
	if slug == "" {
		return domain.Tag{}, fmt.Errorf("%w: tag name has no usable characters", domain.ErrValidation)
	}

	var tag domain.Tag
	backoff := retry.WithMaxRetries(3, retry.NewConstant(10*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		found, err := s.tags.GetByName(ctx, name)
		if err == nil {
			tag = found
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		created, err := s.tags.Insert(ctx, name, slug)
		if err == nil {
			tag = created
			return nil
		}
		if errors.Is(err, domain.ErrDuplicateTag) {
			// Lost the creation race — the row exists now, retry the lookup.
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.GetOrCreate: %w", err)
	}
	return tag, nil
}

// ListOwned returns the tags the given user has check-ins for, ordered by
// slug. Always returns a non-nil slice so callers can safely range over it.
func (s *TagService) ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	tags, err := s.tags.ListOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.ListOwned: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}
