package handler

import "net/http"

// Health handles GET /health. It reports liveness only — no dependency
// checks — so orchestrators can distinguish "process up" from "deps down".
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// OpenAPI handles GET /openapi.yaml, serving the embedded API spec so the
// spec and the running code are always in sync.
func (s *Server) OpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapi)
}
