package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// checkInPattern is the check-in grammar: "<hours> <unit> #<tag> <description>".
//
//	hours:       decimal numeral — "5", "5.5", ".5" ("5." does not match)
//	unit:        literal hr or hrs (input is lower-cased before matching)
//	tag:         lowercase alphanumeric segments joined by single hyphens
//	description: letters, digits, underscores and spaces; may be empty,
//	             in which case the separating space may be absent too
//
// The match is anchored at both ends: trailing characters outside the
// description charset fail the whole line instead of being silently
// dropped.
var checkInPattern = regexp.MustCompile(`^(\d*\.?\d+) (hr|hrs) #([a-z0-9]+(?:-[a-z0-9]+)*)(?: ([a-zA-Z0-9_ ]*))?$`)

// Parsed is the structured result of parsing one check-in line.
type Parsed struct {
	Hours    domain.Hours
	TagSlug  string
	Activity string
}

// ParseCheckIn turns one raw check-in line into a Parsed record.
// It is a pure function: no lookups, no side effects.
//
// The input is trimmed and lower-cased before matching. Returns
// domain.ErrEmptyInput for blank input, domain.ErrInvalidFormat when the
// grammar does not match, and domain.ErrValidation when the hours numeral
// matches but does not fit the storage width (more than two fractional
// digits, or above 9.99).
func ParseCheckIn(raw string) (Parsed, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Parsed{}, domain.ErrEmptyInput
	}

	m := checkInPattern.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, domain.ErrInvalidFormat
	}

	hours, err := domain.ParseHours(m[1])
	if err != nil {
		return Parsed{}, err
	}
	if hours > domain.MaxHours {
		return Parsed{}, fmt.Errorf("%w: hours must not exceed 9.99", domain.ErrValidation)
	}

	return Parsed{
		Hours:    hours,
		TagSlug:  m[3],
		Activity: m[4],
	}, nil
}
