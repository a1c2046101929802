package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kmuir/dirtyminds-go/internal/api/request"
	"github.com/kmuir/dirtyminds-go/internal/api/response"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
)

// GameHandler handles gameplay endpoints
type GameHandler struct {
	registry *round.Registry
}

// NewGameHandler creates a new game handler
func NewGameHandler(registry *round.Registry) *GameHandler {
	return &GameHandler{registry: registry}
}

// Start handles POST /api/v1/sessions/{code}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.HostID == "" {
		WriteError(w, NewInvalidRequestError("host_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), sessionCodeVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := actor.StartGame(r.Context(), model.PlayerID(req.HostID)); err != nil {
		WriteError(w, err)
		return
	}

	session, err := actor.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Skip handles POST /api/v1/sessions/{code}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	var req request.SkipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.HostID == "" {
		WriteError(w, NewInvalidRequestError("host_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), sessionCodeVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := actor.Skip(r.Context(), model.PlayerID(req.HostID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Answer handles POST /api/v1/sessions/{code}/answers
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), sessionCodeVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := actor.SubmitAnswer(r.Context(), model.PlayerID(req.PlayerID), req.Answer); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Vote handles POST /api/v1/sessions/{code}/votes
func (h *GameHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.VoterID == "" {
		WriteError(w, NewInvalidRequestError("voter_id is required"))
		return
	}
	if req.AnswerID == "" {
		WriteError(w, NewInvalidRequestError("answer_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), sessionCodeVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	err = actor.CastVote(r.Context(), model.PlayerID(req.VoterID), model.VoteType(req.VoteType), model.AnswerID(req.AnswerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
