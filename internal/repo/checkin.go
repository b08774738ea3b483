// Package repo contains all database access logic for the check-in API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// CheckInRepo defines the persistence operations for check-ins.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows services to be unit-tested with a mock.
type CheckInRepo interface {
	// Create inserts a new check-in and returns the persisted record
	// (with DB-generated id and created_at populated).
	Create(ctx context.Context, checkin domain.CheckIn) (domain.CheckIn, error)

	// ListPaged returns one page of check-ins matching the filter, newest
	// first, plus the total match count.
	ListPaged(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error)

	// ListAll returns every check-in matching the filter, newest first.
	ListAll(ctx context.Context, f domain.CheckInFilter) ([]domain.CheckIn, error)

	// Delete removes a check-in by ID regardless of owner.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteOwned removes a check-in only when it belongs to ownerID.
	// Returns domain.ErrNotFound both for missing records and records
	// owned by someone else — the two cases are indistinguishable.
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

// pgCheckInRepo is the Postgres implementation of CheckInRepo.
type pgCheckInRepo struct {
	db db
}

// NewCheckInRepo constructs a CheckInRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCheckInRepo(db db) CheckInRepo {
	return &pgCheckInRepo{db: db}
}

// checkInColumns is the SELECT list shared by every check-in query:
// the check-in row plus its (possibly absent) tag via LEFT JOIN.
const checkInColumns = `
	c.id, c.user_id, c.centi_hours, c.activity, c.timestamp, c.created_at,
	t.id, t.name, t.slug, t.created_at`

// Create inserts a new check-in row and returns the full persisted record.
// The tag reference is taken from checkin.Tag; the returned record reuses
// the same tag value rather than re-reading it.
func (r *pgCheckInRepo) Create(ctx context.Context, checkin domain.CheckIn) (domain.CheckIn, error) {
	const q = `
		INSERT INTO checkins (user_id, tag_id, centi_hours, activity, timestamp)
		VALUES (@user_id, @tag_id, @centi_hours, @activity, @timestamp)
		RETURNING id, created_at`

	var tagID *uuid.UUID
	if checkin.Tag != nil {
		tagID = &checkin.Tag.ID
	}
	args := pgx.NamedArgs{
		"user_id":     checkin.UserID,
		"tag_id":      tagID, // nil becomes NULL
		"centi_hours": int64(checkin.Hours),
		"activity":    checkin.Activity,
		"timestamp":   checkin.Timestamp,
	}

	var id pgtype.UUID
	row := r.db.QueryRow(ctx, q, args)
	if err := row.Scan(&id, &checkin.CreatedAt); err != nil {
		return domain.CheckIn{}, fmt.Errorf("repo.CheckInRepo.Create: %w", err)
	}
	checkin.ID = uuid.UUID(id.Bytes)
	return checkin, nil
}

// ListPaged returns one page of matching check-ins plus the total count.
func (r *pgCheckInRepo) ListPaged(ctx context.Context, f domain.CheckInFilter, p domain.PaginationParams) ([]domain.CheckIn, int64, error) {
	where, args := checkInWhere(f)

	countQ := `
		SELECT count(*)
		FROM checkins c
		LEFT JOIN tags t ON t.id = c.tag_id
		JOIN users u ON u.id = c.user_id` + where

	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: count: %w", err)
	}

	listQ := `
		SELECT ` + checkInColumns + `
		FROM checkins c
		LEFT JOIN tags t ON t.id = c.tag_id
		JOIN users u ON u.id = c.user_id` + where + `
		ORDER BY c.timestamp DESC, c.id
		LIMIT @limit OFFSET @offset`
	args["limit"] = p.Limit
	args["offset"] = p.Offset()

	checkins, err := r.queryCheckIns(ctx, listQ, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.CheckInRepo.ListPaged: %w", err)
	}
	return checkins, total, nil
}

// ListAll returns every matching check-in, newest first.
func (r *pgCheckInRepo) ListAll(ctx context.Context, f domain.CheckInFilter) ([]domain.CheckIn, error) {
	where, args := checkInWhere(f)

	q := `
		SELECT ` + checkInColumns + `
		FROM checkins c
		LEFT JOIN tags t ON t.id = c.tag_id
		JOIN users u ON u.id = c.user_id` + where + `
		ORDER BY c.timestamp DESC, c.id`

	checkins, err := r.queryCheckIns(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.CheckInRepo.ListAll: %w", err)
	}
	return checkins, nil
}

// Delete removes a check-in by primary key.
func (r *pgCheckInRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM checkins WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CheckInRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteOwned removes a check-in only if it belongs to ownerID. The owner
// check and the delete are a single statement, so no intermediate state
// is ever visible.
func (r *pgCheckInRepo) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `DELETE FROM checkins WHERE id = @id AND user_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.CheckInRepo.DeleteOwned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CheckInRepo.DeleteOwned: %w", domain.ErrNotFound)
	}
	return nil
}

// queryCheckIns runs a SELECT over checkInColumns and scans all rows.
func (r *pgCheckInRepo) queryCheckIns(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.CheckIn, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []domain.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		checkins = append(checkins, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return checkins, nil
}

// checkInWhere renders a CheckInFilter into a WHERE clause and its named
// arguments. Returns an empty string when no predicate is set.
func checkInWhere(f domain.CheckInFilter) (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}

	if f.OwnerID != nil {
		conds = append(conds, "c.user_id = @owner_id")
		args["owner_id"] = *f.OwnerID
	}
	if f.TagSlug != "" {
		conds = append(conds, "t.slug = @tag_slug")
		args["tag_slug"] = f.TagSlug
	}
	if f.Username != "" {
		conds = append(conds, "u.username ILIKE '%' || @username || '%'")
		args["username"] = f.Username
	}
	if f.ActivityContains != "" {
		conds = append(conds, "c.activity ILIKE '%' || @activity || '%'")
		args["activity"] = f.ActivityContains
	}
	if f.DateFrom != nil {
		conds = append(conds, "c.timestamp::date >= @date_from::date")
		args["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		conds = append(conds, "c.timestamp::date <= @date_to::date")
		args["date_to"] = *f.DateTo
	}

	if len(conds) == 0 {
		return "", args
	}
	return "\n\t\tWHERE " + strings.Join(conds, "\n\t\t  AND "), args
}

// scanCheckIn maps a checkInColumns row into a domain.CheckIn,
// handling the nullable tag columns from the LEFT JOIN.
func scanCheckIn(s scanner) (domain.CheckIn, error) {
	var (
		c          domain.CheckIn
		id, userID pgtype.UUID
		centi      int64
		tagID      pgtype.UUID
		tagName    pgtype.Text
		tagSlug    pgtype.Text
		tagCreated pgtype.Timestamptz
	)

	err := s.Scan(
		&id, &userID, &centi, &c.Activity, &c.Timestamp, &c.CreatedAt,
		&tagID, &tagName, &tagSlug, &tagCreated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CheckIn{}, domain.ErrNotFound
		}
		return domain.CheckIn{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.UserID = uuid.UUID(userID.Bytes)
	c.Hours = domain.Hours(centi)
	if tagID.Valid {
		c.Tag = &domain.Tag{
			ID:        uuid.UUID(tagID.Bytes),
			Name:      tagName.String,
			Slug:      tagSlug.String,
			CreatedAt: tagCreated.Time,
		}
	}
	return c, nil
}
