package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// createCheckInRequest is the body of POST /checkins: the single raw
// check-in line, e.g. {"checkin": "5.5 hrs #project-x fix login issue"}.
type createCheckInRequest struct {
	CheckIn string `json:"checkin"`
}

// checkInResponse is a check-in plus its canonical display string.
type checkInResponse struct {
	domain.CheckIn
	Display string `json:"display"`
}

// listResponse is the envelope for paginated listings.
type listResponse struct {
	Data       []checkInResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateCheckIn handles POST /checkins: the full submission pipeline for
// one raw check-in line.
func (s *Server) CreateCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var body createCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
		return
	}

	created, err := s.checkins.Submit(r.Context(), body.CheckIn, user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCheckInResponse(created))
}

// ListCheckIns handles GET /checkins: the requester's own check-ins,
// filtered and paginated (defaults: page=1, limit=10, max=100).
func (s *Server) ListCheckIns(w http.ResponseWriter, r *http.Request) {
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

// TodayCheckIns handles GET /checkins/today: the requester's check-ins
// for the current calendar day, newest first.
func (s *Server) TodayCheckIns(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	checkins, err := s.checkins.Today(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]checkInResponse{"data": toCheckInResponses(checkins)})
}

// DeleteCheckIn handles DELETE /checkins/{id}. Owners delete their own
// records; admins delete anyone's. Everyone else gets the same 404 a
// missing record would produce.
func (s *Server) DeleteCheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "check-in not found")
		return
	}

	if err := s.checkins.Delete(r.Context(), id, user); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func toCheckInResponse(c domain.CheckIn) checkInResponse {
	return checkInResponse{CheckIn: c, Display: c.Display()}
}

func toCheckInResponses(checkins []domain.CheckIn) []checkInResponse {
	out := make([]checkInResponse, len(checkins))
	for i, c := range checkins {
		out[i] = toCheckInResponse(c)
	}
	return out
}
