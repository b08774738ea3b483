package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a named category bucket for check-ins. Tags are shared — many
// check-ins across many users may reference the same tag, and a tag
// outlives any single check-in.
//
// Name is unique and is the lookup key for get-or-create. Slug is the
// normalized, URL-safe form of Name, computed once at creation and never
// recomputed — renaming a tag deliberately leaves the slug untouched.
// Tags created through the check-in parser carry a slug-shaped token as
// their Name, so for those rows Name and Slug hold the same text.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
