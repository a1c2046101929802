package model

// Phase is a named stage within a round
type Phase string

const (
	PhaseLobby         Phase = "lobby"
	PhaseRiddleDisplay Phase = "riddle_display"
	PhaseAnswering     Phase = "answering"
	PhaseRevealCorrect Phase = "reveal_correct"
	PhaseRevealAnswers Phase = "reveal_answers"
	PhaseVoting        Phase = "voting"
	PhaseResults       Phase = "results"
	PhaseFinished      Phase = "finished"
)

// AnswerID identifies a submitted answer without revealing its author
type AnswerID string

// SubmittedAnswer is one player's answer for the current round
type SubmittedAnswer struct {
	ID       AnswerID
	PlayerID PlayerID
	Role     Role
	Text     string
}

// VoteType distinguishes the two voting categories
type VoteType string

const (
	VoteCorrect  VoteType = "correct"
	VoteFunniest VoteType = "funniest"
)

// Vote is one voter's current pick in a category.
// TargetID is the author of the answer voted for.
type Vote struct {
	VoterID  PlayerID
	TargetID PlayerID
}

// Round holds the transient state of one riddle cycle.
// It is reset whenever the session advances to the next riddle.
type Round struct {
	Phase Phase

	// Answers in submission order, at most one per player
	Answers []SubmittedAnswer

	// Votes per category. Order is the order of each voter's first vote;
	// re-voting overwrites the target in place. Tally tie-breaks depend
	// on this ordering, so it must survive serialization.
	CorrectVotes  []Vote
	FunniestVotes []Vote
}

// NewRound creates a round in the given phase with no answers or votes
func NewRound(phase Phase) *Round {
	return &Round{Phase: phase}
}

// HasAnswered returns true if the player already submitted an answer
func (r *Round) HasAnswered(playerID PlayerID) bool {
	for _, a := range r.Answers {
		if a.PlayerID == playerID {
			return true
		}
	}
	return false
}

// AnswerByID returns the submitted answer with the given id, or nil
func (r *Round) AnswerByID(id AnswerID) *SubmittedAnswer {
	for i := range r.Answers {
		if r.Answers[i].ID == id {
			return &r.Answers[i]
		}
	}
	return nil
}

// RecordVote records or overwrites a voter's pick in a category.
// A voter's position in the list is fixed by their first vote.
func (r *Round) RecordVote(voteType VoteType, voterID, targetID PlayerID) {
	votes := r.votesFor(voteType)
	for i := range *votes {
		if (*votes)[i].VoterID == voterID {
			(*votes)[i].TargetID = targetID
			return
		}
	}
	*votes = append(*votes, Vote{VoterID: voterID, TargetID: targetID})
}

// Votes returns the vote list for a category
func (r *Round) Votes(voteType VoteType) []Vote {
	return *r.votesFor(voteType)
}

func (r *Round) votesFor(voteType VoteType) *[]Vote {
	if voteType == VoteFunniest {
		return &r.FunniestVotes
	}
	return &r.CorrectVotes
}
