package domain

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hours is a duration of logged work expressed in hundredths of an hour.
// Storing the value as an integer keeps addition exact — summing 0.1 three
// hundred times must yield exactly 30, which float64 cannot promise.
//
// The storage column is two fractional digits and three total digits wide,
// so the largest representable value is 9.99 hours (999 hundredths).
type Hours int64

// MaxHours is the largest value a single check-in may carry: 9.99 hours.
const MaxHours Hours = 999

// OneHour is exactly 1 hour, the threshold for singular "hr" display.
const OneHour Hours = 100

// ParseHours converts a decimal numeral ("5", "5.5", ".5", "40") into
// Hours. Returns ErrValidation when the numeral has more than two
// fractional digits or is not a plain unsigned decimal.
// ParseHours does not apply the single-check-in MaxHours cap: totals and
// filter bounds may legitimately exceed 9.99. The parser enforces the cap
// for newly submitted check-ins.
func ParseHours(s string) (Hours, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: hours is required", ErrValidation)
	}
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if hasDot && fracPart == "" {
		// "5." — a dot needs digits after it.
		return 0, fmt.Errorf("%w: invalid hours %q", ErrValidation, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, fmt.Errorf("%w: hours must have at most 2 decimal places", ErrValidation)
	}
	// Digits only — no signs, no second separator, no grouping.
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return 0, fmt.Errorf("%w: invalid hours %q", ErrValidation, s)
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hours %q", ErrValidation, s)
	}
	// Multiplying by 100 must not wrap int64 — a wrapped value would slip
	// under the per-check-in cap looking like a tiny number.
	if iv > math.MaxInt64/100 {
		return 0, fmt.Errorf("%w: hours out of range", ErrValidation)
	}
	centi := iv * 100
	if fracPart != "" {
		fv, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid hours %q", ErrValidation, s)
		}
		if len(fracPart) == 1 {
			fv *= 10
		}
		centi += fv
	}
	return Hours(centi), nil
}

// isDigits reports whether s is one or more ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the value as a decimal numeral with trailing zeros
// trimmed: 550 -> "5.5", 100 -> "1", 50 -> "0.5", 999 -> "9.99".
func (h Hours) String() string {
	whole, frac := int64(h)/100, int64(h)%100
	switch {
	case frac == 0:
		return strconv.FormatInt(whole, 10)
	case frac%10 == 0:
		return fmt.Sprintf("%d.%d", whole, frac/10)
	default:
		return fmt.Sprintf("%d.%02d", whole, frac)
	}
}

// Unit returns the display unit: "hr" when the value is exactly one hour,
// "hrs" otherwise.
func (h Hours) Unit() string {
	if h == OneHour {
		return "hr"
	}
	return "hrs"
}

// MarshalJSON renders Hours as a plain JSON number ("5.5"), which is exact
// at two fractional digits.
func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (h *Hours) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	parsed, err := ParseHours(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
