package scoring

import (
	"github.com/kmuir/dirtyminds-go/internal/model"
)

// Service tallies round votes and maintains cumulative scores
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// RoundResult holds the outcome of tallying one round's votes.
// A winner ID is empty when its category received no votes.
type RoundResult struct {
	CorrectWinnerID  model.PlayerID
	FunniestWinnerID model.PlayerID

	// Deltas is the score award per player id. Awards depend on role:
	// a SAINT scores for winning the correct category, a SINNER for
	// winning the funniest, and a SINNER sweeping both earns a bonus
	// point on top.
	Deltas map[model.PlayerID]int
}

// TallyRound determines both category winners and the score deltas they
// earn. It mutates nothing; the caller applies the deltas.
func (s *Service) TallyRound(round *model.Round, roster []model.Player) RoundResult {
	result := RoundResult{Deltas: map[model.PlayerID]int{}}
	if round == nil {
		return result
	}

	result.CorrectWinnerID = Winner(round.Votes(model.VoteCorrect))
	result.FunniestWinnerID = Winner(round.Votes(model.VoteFunniest))

	cw, fw := result.CorrectWinnerID, result.FunniestWinnerID
	if cw != "" && roleOf(roster, round, cw) == model.RoleSaint {
		result.Deltas[cw]++
	}
	if fw != "" && roleOf(roster, round, fw) == model.RoleSinner {
		result.Deltas[fw]++
		if fw == cw {
			// A Sinner whose answer was voted both most correct and
			// funniest fooled the whole room
			result.Deltas[fw]++
		}
	}

	return result
}

// roleOf resolves a player's role, falling back to the role recorded on
// their answer when they have already left the roster.
func roleOf(roster []model.Player, round *model.Round, id model.PlayerID) model.Role {
	for i := range roster {
		if roster[i].ID == id {
			return roster[i].Role
		}
	}
	for _, a := range round.Answers {
		if a.PlayerID == id {
			return a.Role
		}
	}
	return ""
}

// Winner returns the vote target with the most votes. Ties go to the
// target that reached the top count first in vote order, matching the
// order votes were originally cast. Empty input yields an empty ID.
func Winner(votes []model.Vote) model.PlayerID {
	if len(votes) == 0 {
		return ""
	}

	counts := make(map[model.PlayerID]int, len(votes))
	var order []model.PlayerID
	for _, v := range votes {
		if _, seen := counts[v.TargetID]; !seen {
			order = append(order, v.TargetID)
		}
		counts[v.TargetID]++
	}

	var winner model.PlayerID
	best := 0
	for _, target := range order {
		if counts[target] > best {
			winner = target
			best = counts[target]
		}
	}
	return winner
}

// GameWinners returns the players holding the top score. More than one
// ID means the game ended in a tie.
func GameWinners(roster []model.Player) []model.PlayerID {
	best := -1
	var winners []model.PlayerID
	for _, p := range roster {
		switch {
		case p.Score > best:
			best = p.Score
			winners = []model.PlayerID{p.ID}
		case p.Score == best:
			winners = append(winners, p.ID)
		}
	}
	return winners
}

// Interface for dependency injection
type ServiceInterface interface {
	TallyRound(round *model.Round, roster []model.Player) RoundResult
}

var _ ServiceInterface = (*Service)(nil)
