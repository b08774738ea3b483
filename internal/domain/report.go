package domain

import (
	"fmt"
	"sort"
)

// Dimension is one axis a check-in report can be grouped by.
type Dimension string

const (
	// DimensionTagName groups by the referenced tag's name. Check-ins
	// whose tag reference was cleared group under the empty name.
	DimensionTagName Dimension = "tag_name"

	// DimensionDate groups by the calendar date portion of the check-in
	// timestamp ("2006-01-02").
	DimensionDate Dimension = "date"
)

// ParseDimension validates a raw group_by token from the query string.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case DimensionTagName, DimensionDate:
		return Dimension(s), nil
	}
	return "", fmt.Errorf("%w: unknown grouping %q", ErrValidation, s)
}

// GroupRow is one aggregated report row: the values of the selected
// dimensions plus the exact sum of hours in that group.
// Only the fields for selected dimensions are populated.
type GroupRow struct {
	TagName *string `json:"tag_name,omitempty"`
	Date    *string `json:"date,omitempty"`

	TotalHours Hours `json:"total_hours"`
}

// Report is the result of a grouped hours query. When no grouping was
// selected, Rows is nil and CheckIns carries the raw filtered records —
// "no grouping" means "show the records, not totals".
type Report struct {
	Rows     []GroupRow `json:"rows,omitempty"`
	CheckIns []CheckIn  `json:"checkins,omitempty"`
}

// Aggregate groups records by the tuple of selected dimension values and
// sums hours per group with exact integer addition.
//
// Rows are ordered lexicographically by the dimension tuple, dimensions
// compared in the order they appear in dims — the ordering is stable and
// reproducible for identical input, which chart rendering and test
// assertions rely on. The sum of all row totals always equals the sum of
// hours over records: grouping never loses or duplicates time.
//
// An empty dims means "no grouping selected": Aggregate returns nil and
// the caller presents the raw records instead of totals.
func Aggregate(records []CheckIn, dims []Dimension) []GroupRow {
	if len(dims) == 0 {
		return nil
	}

	type group struct {
		tuple []string
		total Hours
	}

	groups := make(map[string]*group)
	for _, rec := range records {
		tuple := make([]string, len(dims))
		for i, d := range dims {
			tuple[i] = dimensionValue(rec, d)
		}
		key := joinKey(tuple)
		g, ok := groups[key]
		if !ok {
			g = &group{tuple: tuple}
			groups[key] = g
		}
		g.total += rec.Hours
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].tuple, ordered[j].tuple
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})

	rows := make([]GroupRow, len(ordered))
	for i, g := range ordered {
		row := GroupRow{TotalHours: g.total}
		for k, d := range dims {
			v := g.tuple[k]
			switch d {
			case DimensionTagName:
				row.TagName = &v
			case DimensionDate:
				row.Date = &v
			}
		}
		rows[i] = row
	}
	return rows
}

// dimensionValue extracts one dimension's value from a record.
func dimensionValue(rec CheckIn, d Dimension) string {
	switch d {
	case DimensionDate:
		return rec.Timestamp.Format("2006-01-02")
	default:
		return rec.TagName()
	}
}

// joinKey builds a map key from a dimension tuple. The separator cannot
// appear in tag names (slug charset) or formatted dates, so distinct
// tuples never collide.
func joinKey(tuple []string) string {
	key := ""
	for i, v := range tuple {
		if i > 0 {
			key += "\x00"
		}
		key += v
	}
	return key
}
