package handler

import (
	"net/http"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// ListTags handles GET /tags: the tags the requester has check-ins for,
// ordered by slug. Used by the frontend to populate filter dropdowns.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	tags, err := s.tags.ListOwned(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Tag{"data": tags})
}
