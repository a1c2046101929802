package model

import "time"

// SessionCode is the human-readable join code for a session
type SessionCode string

// SessionStatus represents the lifecycle state of a session
type SessionStatus string

const (
	SessionStatusLobby      SessionStatus = "lobby"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusFinished   SessionStatus = "finished"
)

// Session is one game instance
type Session struct {
	Code   SessionCode
	Status SessionStatus

	// HostID is the opaque key issued at creation; host commands
	// must present it
	HostID PlayerID

	// Deck is fixed once drawn at game start
	Deck       []Riddle
	RoundIndex int // 0-based, 0 <= RoundIndex <= len(Deck)

	Roster []Player
	Round  *Round

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the roster entry with the given id, or nil
func (s *Session) GetPlayer(id PlayerID) *Player {
	for i := range s.Roster {
		if s.Roster[i].ID == id {
			return &s.Roster[i]
		}
	}
	return nil
}

// RemovePlayer deletes the roster entry with the given id.
// Returns false if the player was not in the roster.
func (s *Session) RemovePlayer(id PlayerID) bool {
	for i := range s.Roster {
		if s.Roster[i].ID == id {
			s.Roster = append(s.Roster[:i], s.Roster[i+1:]...)
			return true
		}
	}
	return false
}

// CurrentRiddle returns the riddle for the current round, or nil if the
// deck has not been drawn or is exhausted
func (s *Session) CurrentRiddle() *Riddle {
	if s.RoundIndex < 0 || s.RoundIndex >= len(s.Deck) {
		return nil
	}
	return &s.Deck[s.RoundIndex]
}

// RoundsRemain returns true if at least one riddle follows the current one
func (s *Session) RoundsRemain() bool {
	return s.RoundIndex+1 < len(s.Deck)
}

// Clone returns a deep copy safe to hand outside the owning goroutine
func (s *Session) Clone() *Session {
	c := *s
	c.Deck = append([]Riddle(nil), s.Deck...)
	c.Roster = append([]Player(nil), s.Roster...)
	if s.Round != nil {
		r := *s.Round
		r.Answers = append([]SubmittedAnswer(nil), s.Round.Answers...)
		r.CorrectVotes = append([]Vote(nil), s.Round.CorrectVotes...)
		r.FunniestVotes = append([]Vote(nil), s.Round.FunniestVotes...)
		c.Round = &r
	}
	return &c
}

// Phase returns the current round phase, mapping the session lifecycle
// states outside a round to their pseudo-phases
func (s *Session) Phase() Phase {
	switch {
	case s.Status == SessionStatusLobby:
		return PhaseLobby
	case s.Status == SessionStatusFinished:
		return PhaseFinished
	case s.Round != nil:
		return s.Round.Phase
	default:
		return PhaseLobby
	}
}
