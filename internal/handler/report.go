package handler

import (
	"net/http"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// GetReport handles GET /reports: the requester's check-ins over an
// optional date range, grouped by the repeated group_by parameter
// (tag_name and/or date) with per-group hour totals.
//
// With no group_by the response carries the raw records instead — "no
// grouping selected" means "show check-ins, not totals".
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter, err := checkInFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	filter.OwnerID = &user.ID

	// group_by is an ordered set: a repeated dimension keeps its first
	// position instead of producing a degenerate duplicate in the tuple.
	var dims []domain.Dimension
	seen := map[domain.Dimension]bool{}
	for _, raw := range r.URL.Query()["group_by"] {
		d, err := domain.ParseDimension(raw)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		dims = append(dims, d)
	}

	report, err := s.reports.Grouped(r.Context(), filter, dims)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
