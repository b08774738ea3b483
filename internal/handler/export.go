package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"github.com/checkinhq/checkin/backend/internal/domain"
)

// ExportCheckIns handles GET /checkins/export: a CSV download of the
// filtered check-ins. Non-admins always get their own records; admins may
// export across users (optionally narrowed by ?username=).
func (s *Server) ExportCheckIns(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter, err := checkInFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	if user.IsAdmin {
		filter.Username = r.URL.Query().Get("username")
	} else {
		filter.OwnerID = &user.ID
	}

	rows, err := s.exports.Export(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="checkins.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportRow{}.Headers()); err != nil {
		slog.Error("write export header", "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			slog.Error("write export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("flush export", "error", err)
	}
}
