package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// TagRepo defines the persistence operations for tags.
// The tags.name unique constraint is the arbiter of the get-or-create
// race: Insert maps a unique violation to domain.ErrDuplicateTag and the
// tag service retries the lookup.
type TagRepo interface {
	// GetByName retrieves a tag by its exact name.
	// Returns domain.ErrNotFound if no tag with that name exists.
	GetByName(ctx context.Context, name string) (domain.Tag, error)

	// Insert creates a new tag. Returns domain.ErrDuplicateTag when a tag
	// with the same name already exists.
	Insert(ctx context.Context, name, slug string) (domain.Tag, error)

	// ListOwned returns the tags the given user has check-ins for,
	// ordered by slug.
	ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// GetByName retrieves a tag by its unique name.
func (r *pgTagRepo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	const q = `
		SELECT id, name, slug, created_at
		FROM tags
		WHERE name = @name`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByName: %w", err)
	}
	return result, nil
}

// Insert creates a new tag row. A lost get-or-create race surfaces as
// domain.ErrDuplicateTag via the unique violation on tags.name.
func (r *pgTagRepo) Insert(ctx context.Context, name, slug string) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (name, slug)
		VALUES (@name, @slug)
		RETURNING id, name, slug, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "slug": slug})
	result, err := scanTag(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Tag{}, fmt.Errorf("repo.TagRepo.Insert: %w", domain.ErrDuplicateTag)
		}
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Insert: %w", err)
	}
	return result, nil
}

// ListOwned returns the tags referenced by at least one of the user's
// check-ins, ordered by slug.
func (r *pgTagRepo) ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT DISTINCT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN checkins c ON c.tag_id = t.id
		WHERE c.user_id = @user_id
		ORDER BY t.slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListOwned: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.ListOwned: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListOwned: rows: %w", err)
	}
	return tags, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
