package response

import (
	"github.com/kmuir/dirtyminds-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"is_host"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player, hostID model.PlayerID) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Score:       p.Score,
		IsHost:      p.ID == hostID,
	}
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	Code    string `json:"code"`
	HostID  string `json:"host_id"`
	Channel string `json:"channel"`
}

// JoinResponse is the response for joining a session
type JoinResponse struct {
	PlayerID string `json:"player_id"`
	Role     string `json:"role"`
	Channel  string `json:"channel"`
}

// Answer represents a revealed answer in API responses. Only the
// opaque id and the text are exposed; authorship stays server-side.
type Answer struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Session represents a session in API responses
type Session struct {
	Code          string   `json:"code"`
	Status        string   `json:"status"`
	Phase         string   `json:"phase,omitempty"`
	RoundIndex    int      `json:"round_index"`
	TotalRounds   int      `json:"total_rounds"`
	Clue          string   `json:"clue,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Answers       []Answer `json:"answers,omitempty"`
	Players       []Player `json:"players"`
}

// SessionFromModel converts a model.Session to a response Session.
// The clue, correct answer and submitted answers appear only once the
// round has reached the phase that reveals them, so a reconnecting
// client cannot peek ahead.
func SessionFromModel(s *model.Session) Session {
	players := make([]Player, len(s.Roster))
	for i := range s.Roster {
		players[i] = PlayerFromModel(&s.Roster[i], s.HostID)
	}

	resp := Session{
		Code:        string(s.Code),
		Status:      string(s.Status),
		Phase:       string(s.Phase()),
		RoundIndex:  s.RoundIndex,
		TotalRounds: len(s.Deck),
		Players:     players,
	}

	phase := s.Phase()
	if riddle := s.CurrentRiddle(); riddle != nil {
		switch phase {
		case model.PhaseRiddleDisplay, model.PhaseAnswering:
			resp.Clue = riddle.Clue
		case model.PhaseRevealCorrect, model.PhaseRevealAnswers, model.PhaseVoting, model.PhaseResults:
			resp.Clue = riddle.Clue
			resp.CorrectAnswer = riddle.Answer
		}
	}

	if s.Round != nil {
		switch phase {
		case model.PhaseRevealAnswers, model.PhaseVoting, model.PhaseResults:
			resp.Answers = make([]Answer, len(s.Round.Answers))
			for i, a := range s.Round.Answers {
				resp.Answers[i] = Answer{
					ID:   string(a.ID),
					Text: a.Text,
				}
			}
		}
	}

	return resp
}
