package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// UserRepo defines the read side of the external user store plus the
// admin per-user totals query. User lifecycle (registration, sessions)
// belongs to the surrounding platform; Create exists for provisioning
// and test fixtures.
type UserRepo interface {
	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// Create inserts a user row and returns the persisted record.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// Totals returns one row per matching user with the sum of their
	// check-in hours inside the filter's date range. Users with no
	// matching check-ins get a zero total, not an absent row.
	Totals(ctx context.Context, f domain.UserTotalsFilter) ([]domain.UserTotal, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// GetByID retrieves a user by primary key.
func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT id, username, is_admin, created_at
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

// Create inserts a new user row and returns the full persisted record.
func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, is_admin)
		VALUES (@username, @is_admin)
		RETURNING id, username, is_admin, created_at`

	args := pgx.NamedArgs{"username": user.Username, "is_admin": user.IsAdmin}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

// Totals computes per-user hour sums for the admin listing.
//
// The date range lives in the LEFT JOIN condition, not the WHERE clause:
// moving it to WHERE would turn the join into an inner join and silently
// drop users with no check-ins in range. COALESCE turns their NULL sum
// into the required zero.
func (r *pgUserRepo) Totals(ctx context.Context, f domain.UserTotalsFilter) ([]domain.UserTotal, error) {
	join := []string{"c.user_id = u.id"}
	var where, having []string
	args := pgx.NamedArgs{}

	if f.DateFrom != nil {
		join = append(join, "c.timestamp::date >= @date_from::date")
		args["date_from"] = *f.DateFrom
	}
	if f.DateTo != nil {
		join = append(join, "c.timestamp::date <= @date_to::date")
		args["date_to"] = *f.DateTo
	}
	if f.UsernameContains != "" {
		where = append(where, "u.username ILIKE '%' || @username || '%'")
		args["username"] = f.UsernameContains
	}
	if f.MinHours != nil {
		having = append(having, "COALESCE(SUM(c.centi_hours), 0) >= @min_centi")
		args["min_centi"] = int64(*f.MinHours)
	}
	if f.MaxHours != nil {
		having = append(having, "COALESCE(SUM(c.centi_hours), 0) <= @max_centi")
		args["max_centi"] = int64(*f.MaxHours)
	}

	q := `
		SELECT u.id, u.username, COALESCE(SUM(c.centi_hours), 0)
		FROM users u
		LEFT JOIN checkins c ON ` + strings.Join(join, " AND ")
	if len(where) > 0 {
		q += `
		WHERE ` + strings.Join(where, " AND ")
	}
	q += `
		GROUP BY u.id, u.username`
	if len(having) > 0 {
		q += `
		HAVING ` + strings.Join(having, " AND ")
	}
	q += `
		ORDER BY u.username`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.Totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.UserTotal{}
	for rows.Next() {
		var (
			ut    domain.UserTotal
			id    pgtype.UUID
			centi int64
		)
		if err := rows.Scan(&id, &ut.Username, &centi); err != nil {
			return nil, fmt.Errorf("repo.UserRepo.Totals: scan: %w", err)
		}
		ut.UserID = uuid.UUID(id.Bytes)
		ut.TotalHours = domain.Hours(centi)
		totals = append(totals, ut)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.Totals: rows: %w", err)
	}
	return totals, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Username, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
