package handler

import (
	"net/http"

	"github.com/kmuir/dirtyminds-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeSessionNotFound     = apierr.CodeSessionNotFound
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeAlreadyJoined       = apierr.CodeAlreadyJoined
	CodeNotInSession        = apierr.CodeNotInSession
	CodeNotHost             = apierr.CodeNotHost
	CodeGameInProgress      = apierr.CodeGameInProgress
	CodeGameNotStarted      = apierr.CodeGameNotStarted
	CodeGameFinished        = apierr.CodeGameFinished
	CodeWrongPhase          = apierr.CodeWrongPhase
	CodeNoAnswers           = apierr.CodeNoAnswers
	CodeAlreadyAnswered     = apierr.CodeAlreadyAnswered
	CodeEmptyAnswer         = apierr.CodeEmptyAnswer
	CodeAnswerNotFound      = apierr.CodeAnswerNotFound
	CodeSelfVote            = apierr.CodeSelfVote
	CodeInvalidVote         = apierr.CodeInvalidVote
	CodeInsufficientPlayers = apierr.CodeInsufficientPlayers
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
