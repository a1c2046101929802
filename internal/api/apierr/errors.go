package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kmuir/dirtyminds-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeNotInSession        = "NOT_IN_SESSION"
	CodeNotHost             = "NOT_HOST"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameFinished        = "GAME_FINISHED"
	CodeWrongPhase          = "WRONG_PHASE"
	CodeNoAnswers           = "NO_ANSWERS"
	CodeAlreadyAnswered     = "ALREADY_ANSWERED"
	CodeEmptyAnswer         = "EMPTY_ANSWER"
	CodeAnswerNotFound      = "ANSWER_NOT_FOUND"
	CodeSelfVote            = "SELF_VOTE"
	CodeInvalidVote         = "INVALID_VOTE"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this session"}}
	case errors.Is(err, model.ErrNotInSession):
		return &httpError{http.StatusNotFound, APIError{CodeNotInSession, "Not in this session"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game is in progress"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameNotStarted, "Game has not started"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is finished"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Action not allowed in the current phase"}}
	case errors.Is(err, model.ErrNoAnswers):
		return &httpError{http.StatusConflict, APIError{CodeNoAnswers, "Cannot skip answering before any answer is in"}}
	case errors.Is(err, model.ErrAlreadyAnswered):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyAnswered, "Already submitted an answer this round"}}
	case errors.Is(err, model.ErrEmptyAnswer):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyAnswer, "Answer text must not be empty"}}
	case errors.Is(err, model.ErrAnswerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAnswerNotFound, "Answer not found"}}
	case errors.Is(err, model.ErrSelfVote):
		return &httpError{http.StatusConflict, APIError{CodeSelfVote, "Cannot vote for your own answer"}}
	case errors.Is(err, model.ErrInvalidVote):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidVote, "Vote type must be correct or funniest"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
