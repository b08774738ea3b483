package domain

// ExportRow is a single row in the flat check-in export.
// It is a denormalized view of one check-in: hours rendered as the
// trimmed decimal string, tag fields empty when the reference was
// cleared, dates pre-formatted so the CSV encoder writes them verbatim.
type ExportRow struct {
	Timestamp string // "2006-01-02 15:04" formatted timestamp
	Username  string
	Hours     string
	TagName   string // empty when the tag was removed
	TagSlug   string
	Activity  string
}

// Headers returns the CSV header row matching ExportRow's field order.
func (ExportRow) Headers() []string {
	return []string{"timestamp", "username", "hours", "tag", "tag_slug", "activity"}
}

// Record returns the row as a CSV record in header order.
func (r ExportRow) Record() []string {
	return []string{r.Timestamp, r.Username, r.Hours, r.TagName, r.TagSlug, r.Activity}
}
