package model

import "errors"

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotHost         = errors.New("caller is not the session host")

	// Roster errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrAlreadyJoined       = errors.New("player already joined")
	ErrNotInSession        = errors.New("player is not in this session")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Round errors
	ErrGameInProgress  = errors.New("game is in progress")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrGameFinished    = errors.New("game is finished")
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrNoAnswers       = errors.New("no answers submitted")
	ErrAlreadyAnswered = errors.New("player already submitted an answer")
	ErrEmptyAnswer     = errors.New("answer text is empty")
	ErrAnswerNotFound  = errors.New("answer not found")
	ErrSelfVote        = errors.New("players cannot vote for their own answer")
	ErrInvalidVote     = errors.New("invalid vote type")

	// Riddle pool errors
	ErrRiddlePoolNotLoaded = errors.New("riddle pool not loaded")
	ErrRiddlePoolExhausted = errors.New("riddle pool has no riddles")
)
