package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of check-ins. The surrounding platform manages
// registration and sessions; this service only reads users to resolve the
// requester and to drive admin-vs-owner filtering via IsAdmin.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserTotal is one row of the admin per-user hours listing: a user plus
// the sum of their check-in hours inside the active date range.
// Users with no matching check-ins appear with TotalHours zero — the
// listing never drops a user for being idle.
type UserTotal struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	TotalHours Hours     `json:"total_hours"`
}
