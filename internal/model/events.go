package model

// EventType identifies the type of an outbound event
type EventType string

const (
	// Roster events
	EventRoleAssigned  EventType = "role-assigned"
	EventRosterChanged EventType = "roster-changed"

	// Round events
	EventPhaseChange EventType = "phase-change"
	EventAnswerCount EventType = "answer-count"
	EventResults     EventType = "results"
	EventGameOver    EventType = "game-over"
)

// OutboundEvent is a message destined for every subscriber of a session
// channel. Payload must be JSON-serializable.
type OutboundEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// PlayerSummary is the roster entry clients see
type PlayerSummary struct {
	ID          PlayerID `json:"id"`
	DisplayName string   `json:"display_name"`
	Role        Role     `json:"role"`
	Score       int      `json:"score"`
	IsHost      bool     `json:"is_host"`
}

// RoleAssignedPayload tells a single player which team they landed on
type RoleAssignedPayload struct {
	PlayerID PlayerID `json:"player_id"`
	Role     Role     `json:"role"`
}

// RosterChangedPayload carries the full roster after a join or leave
type RosterChangedPayload struct {
	Players []PlayerSummary `json:"players"`
}

// RevealedAnswer is a submitted answer as clients see it. It carries
// only the opaque id and the text; authorship is never sent.
type RevealedAnswer struct {
	ID   AnswerID `json:"id"`
	Text string   `json:"text"`
}

// PhaseChangePayload announces the new phase and whatever data that
// phase needs. Optional fields are omitted when not relevant.
type PhaseChangePayload struct {
	Phase         Phase            `json:"phase"`
	RoundIndex    int              `json:"round_index"`
	TotalRounds   int              `json:"total_rounds"`
	DeadlineMs    int64            `json:"deadline_ms,omitempty"`
	Clue          string           `json:"clue,omitempty"`
	CorrectAnswer string           `json:"correct_answer,omitempty"`
	Answers       []RevealedAnswer `json:"answers,omitempty"`
	RevealIndex   int              `json:"reveal_index,omitempty"`
}

// AnswerCountPayload updates clients on submission progress during the
// answering phase without revealing answer content.
type AnswerCountPayload struct {
	Submitted int `json:"submitted"`
	Expected  int `json:"expected"`
}

// ResultsPayload carries the outcome of a round
type ResultsPayload struct {
	RoundIndex       int             `json:"round_index"`
	CorrectWinnerID  PlayerID        `json:"correct_winner_id,omitempty"`
	FunniestWinnerID PlayerID        `json:"funniest_winner_id,omitempty"`
	CorrectAnswer    string          `json:"correct_answer"`
	Players          []PlayerSummary `json:"players"`
}

// GameOverPayload carries final standings
type GameOverPayload struct {
	Players   []PlayerSummary `json:"players"`
	WinnerIDs []PlayerID      `json:"winner_ids"`
}
