package api

import (
	"errors"
	"net/http"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/internal/domain/types"
)

type statusRequest struct {
	Status model.GoalStatus `json:"status"`
}

// handleValidate handles POST /animations/validate. An invalid goal is
// still a 200: the body lists its problems.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_animation"
	var doc types.GoalDocument
	if err := decodeBody(w, r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, s.deps.ValidateGoal(doc.Animation, doc.Metadata))
}

// handlePostGoal handles POST /goals.
func (s *Server) handlePostGoal(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_goal"
	var doc types.GoalDocument
	if err := decodeBody(w, r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	goal, v, err := s.deps.SubmitGoal(r.Context(), doc.Metadata, doc.Animation)
	if errors.Is(err, service.ErrInvalidGoal) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "invalid_goal",
			Message: err.Error(),
			Errors:  v.Errors,
		})
		return
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// handleGetGoal handles GET /goals/{id}.
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_goal"
	goal, err := s.deps.Goal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// handleGoalStatus handles PUT /goals/{id}/status.
func (s *Server) handleGoalStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_goal_status"
	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := s.deps.SetGoalStatus(r.Context(), r.PathValue("id"), req.Status); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
