package roster

import (
	"strings"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/clock"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/random"
	"github.com/kmuir/dirtyminds-go/internal/model"
)

// MaxDisplayNameLength caps player names on the scoreboard
const MaxDisplayNameLength = 24

// Service manages roster membership and team assignment.
// It mutates sessions in place; callers own persistence.
type Service struct {
	clock  clock.Clock
	random random.Random
}

// New creates a new roster Service
func New(clock clock.Clock, random random.Random) *Service {
	return &Service{
		clock:  clock,
		random: random,
	}
}

// Join adds a player to a lobby-state session and assigns their team
// by an independent coin flip.
func (s *Service) Join(session *model.Session, playerID model.PlayerID, displayName string) (*model.Player, error) {
	if session.Status != model.SessionStatusLobby {
		return nil, model.ErrGameInProgress
	}
	if session.GetPlayer(playerID) != nil {
		return nil, model.ErrAlreadyJoined
	}

	displayName = strings.TrimSpace(displayName)
	if runes := []rune(displayName); len(runes) > MaxDisplayNameLength {
		displayName = string(runes[:MaxDisplayNameLength])
	}
	if displayName == "" {
		displayName = "Player " + string(playerID[:min(8, len(playerID))])
	}

	player := model.Player{
		ID:          playerID,
		DisplayName: displayName,
		Role:        s.flipRole(),
		JoinedAt:    s.clock.Now(),
	}
	session.Roster = append(session.Roster, player)
	session.UpdatedAt = player.JoinedAt

	return session.GetPlayer(playerID), nil
}

// Leave removes a player from the roster. Any answers or votes they
// already contributed to the current round remain.
func (s *Service) Leave(session *model.Session, playerID model.PlayerID) error {
	if !session.RemovePlayer(playerID) {
		return model.ErrNotInSession
	}
	session.UpdatedAt = s.clock.Now()
	return nil
}

// flipRole assigns a role by fair coin flip. Flips are independent per
// join, so teams are not guaranteed to balance.
func (s *Service) flipRole() model.Role {
	if s.random.Intn(2) == 0 {
		return model.RoleSaint
	}
	return model.RoleSinner
}

// Summarize builds the roster view sent to clients
func Summarize(session *model.Session) []model.PlayerSummary {
	summaries := make([]model.PlayerSummary, 0, len(session.Roster))
	for _, p := range session.Roster {
		summaries = append(summaries, model.PlayerSummary{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
			Score:       p.Score,
			IsHost:      p.ID == session.HostID,
		})
	}
	return summaries
}
