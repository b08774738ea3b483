package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/checkinhq/checkin/backend/internal/domain"
	"github.com/checkinhq/checkin/backend/internal/middleware"
)

// currentUser pulls the authenticated user out of the request context.
// Writes 401 and returns false when the auth middleware did not run —
// a wiring bug, but one that must not panic a request.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "no authenticated user")
	}
	return user, ok
}

// queryDate parses an optional "2006-01-02" query parameter.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
	}
	return &t, nil
}

// queryInt parses an optional integer query parameter, ignoring garbage.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// queryHours parses an optional decimal-hours query parameter
// (e.g. min_hours=7.5).
func queryHours(r *http.Request, name string) (*domain.Hours, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	h, err := domain.ParseHours(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected decimal hours", name)
	}
	return &h, nil
}

// checkInFilterFromQuery builds the common check-in filter from the
// request query string. Owner scoping is the caller's decision.
func checkInFilterFromQuery(r *http.Request) (domain.CheckInFilter, error) {
	f := domain.CheckInFilter{
		TagSlug:          r.URL.Query().Get("tag"),
		ActivityContains: r.URL.Query().Get("activity"),
	}
	var err error
	if f.DateFrom, err = queryDate(r, "from"); err != nil {
		return domain.CheckInFilter{}, err
	}
	if f.DateTo, err = queryDate(r, "to"); err != nil {
		return domain.CheckInFilter{}, err
	}
	return f, nil
}
