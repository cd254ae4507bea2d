package api

import (
	"net/http"

	"github.com/okian/goalguessr/internal/domain/types"
)

// handleDaily handles GET /daily?player=ID.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_daily"
	view, err := s.deps.Daily(r.Context(), r.URL.Query().Get("player"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handlePostGuess handles POST /guesses.
func (s *Server) handlePostGuess(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_guess"
	var req types.GuessSubmission
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	out, err := s.deps.SubmitGuess(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
