package domain

import (
	"time"

	"github.com/google/uuid"
)

// CheckInFilter narrows a check-in listing before aggregation.
// All set predicates are ANDed; zero values mean "no constraint".
//
// DateFrom and DateTo are inclusive bounds on the date portion of the
// check-in timestamp. Either may be set independently: one bound alone
// behaves as an open-ended range (≥ or ≤).
type CheckInFilter struct {
	// OwnerID restricts results to one user's check-ins. Always set for
	// the personal listing; optional for admin listings.
	OwnerID *uuid.UUID

	// TagSlug matches the referenced tag's slug exactly.
	TagSlug string

	// Username is a case-insensitive substring match on the owner's
	// username (admin listing only).
	Username string

	// ActivityContains is a case-insensitive substring match on the
	// activity text.
	ActivityContains string

	DateFrom *time.Time
	DateTo   *time.Time
}

// UserTotalsFilter narrows the admin per-user hours listing.
// The date range scopes which check-ins count toward each user's total;
// MinHours/MaxHours then filter users by that total. Users with no
// check-ins in range count as zero hours, not as absent.
type UserTotalsFilter struct {
	// UsernameContains is a case-insensitive substring match on username.
	UsernameContains string

	DateFrom *time.Time
	DateTo   *time.Time

	MinHours *Hours
	MaxHours *Hours
}
