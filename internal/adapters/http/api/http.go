// Package api serves the game over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/model"
	"github.com/okian/goalguessr/internal/domain/types"
)

const (
	defaultMaxLimit     = 100
	defaultLimit        = 10
	maxRequestBodyBytes = 1 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SubmitGuess(ctx context.Context, g types.GuessSubmission) (types.GuessOutcome, error)
	Daily(ctx context.Context, player string) (types.DailyView, error)

	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, player string) (Entry, error)

	ValidateGoal(a *animation.Animation, m animation.Metadata) animation.Validation
	SubmitGoal(ctx context.Context, m animation.Metadata, a *animation.Animation) (model.Goal, animation.Validation, error)
	Goal(ctx context.Context, id string) (model.Goal, error)
	SetGoalStatus(ctx context.Context, id string, status model.GoalStatus) error

	Stats(ctx context.Context) (types.Stats, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the game API.
type Server struct {
	deps     Dependencies
	maxLimit int
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLeaderboardLimit caps GET /leaderboard?limit.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{deps: deps, maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	mux.Handle("GET /metrics", metricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.handleStats, "stats"))

	mux.HandleFunc("GET /daily", MetricsMiddleware(s.handleDaily, "daily"))
	mux.HandleFunc("POST /guesses", MetricsMiddleware(s.handlePostGuess, "guesses"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.handleLeaderboard, "leaderboard"))
	mux.HandleFunc("GET /rank/{player}", MetricsMiddleware(s.handleRank, "rank"))

	mux.HandleFunc("POST /animations/validate", MetricsMiddleware(s.handleValidate, "validate"))
	mux.HandleFunc("POST /goals", MetricsMiddleware(s.handlePostGoal, "goals"))
	mux.HandleFunc("GET /goals/{id}", MetricsMiddleware(s.handleGetGoal, "goal"))
	mux.HandleFunc("PUT /goals/{id}/status", MetricsMiddleware(s.handleGoalStatus, "goal_status"))
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service sentinels to status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGuess), errors.Is(err, service.ErrInvalidGoal):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrDuplicateGuess):
		writeError(w, http.StatusConflict, "duplicate", Wrap(op, err))
	case errors.Is(err, service.ErrPlayerNotFound), errors.Is(err, service.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrNoGoals), errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
