// Package domain contains the core data types for the check-in service.
// Apart from UUIDs it has no external dependencies and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CheckIn is one logged unit of time against an activity and tag.
// Check-ins are created exclusively through the parse → submit pipeline
// and are immutable after creation; deletion is the only later mutation,
// allowed to the owner or an admin.
//
// Tag is nil when the referenced tag row was removed by an admin — the
// check-in survives with its reference cleared, it is not cascade-deleted.
type CheckIn struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Tag       *Tag      `json:"tag,omitempty"`
	Hours     Hours     `json:"hours"`
	Activity  string    `json:"activity"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// TagName returns the referenced tag's name, or "" when the reference
// was cleared.
func (c CheckIn) TagName() string {
	if c.Tag == nil {
		return ""
	}
	return c.Tag.Name
}

// Display renders the check-in in the canonical single-line form:
//
//	5.5 hrs #project-x fix login issue
//	1 hr #project-y review vuejs
//
// "hr" is used when hours is exactly 1. The "#tag" segment is omitted
// when the tag reference was cleared, and no trailing space is emitted
// for an empty activity.
func (c CheckIn) Display() string {
	var b strings.Builder
	b.WriteString(c.Hours.String())
	b.WriteByte(' ')
	b.WriteString(c.Hours.Unit())
	if c.Tag != nil {
		b.WriteString(" #")
		b.WriteString(c.Tag.Name)
	}
	if c.Activity != "" {
		b.WriteByte(' ')
		b.WriteString(c.Activity)
	}
	return b.String()
}
