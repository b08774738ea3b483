package handler

import (
	"net/http"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// requireAdmin returns the requesting user if they hold the admin flag,
// writing 403 otherwise.
func requireAdmin(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return domain.User{}, false
	}
	if !user.IsAdmin {
		writeError(w, http.StatusForbidden, "forbidden", "admin access required")
		return domain.User{}, false
	}
	return user, true
}

// AdminListCheckIns handles GET /admin/checkins: every user's check-ins,
// filterable by username substring on top of the usual filters.
func (s *Server) AdminListCheckIns(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	filter, err := checkInFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	filter.Username = r.URL.Query().Get("username")

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	checkins, total, err := s.checkins.List(r.Context(), filter, params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: toCheckInResponses(checkins),
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// AdminUserTotals handles GET /admin/users: every matching user with the
// sum of their check-in hours in the requested date range. Users with no
// check-ins in range appear with total_hours 0.
func (s *Server) AdminUserTotals(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	f := domain.UserTotalsFilter{
		UsernameContains: r.URL.Query().Get("username"),
	}
	var err error
	if f.DateFrom, err = queryDate(r, "from"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	if f.DateTo, err = queryDate(r, "to"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	if f.MinHours, err = queryHours(r, "min_hours"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	if f.MaxHours, err = queryHours(r, "max_hours"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	totals, err := s.reports.UserTotals(r.Context(), f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.UserTotal{"data": totals})
}
