package round

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/mocks"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/deck"
	"github.com/kmuir/dirtyminds-go/internal/services/roster"
	"github.com/kmuir/dirtyminds-go/internal/services/scoring"
	"github.com/kmuir/dirtyminds-go/internal/storage/memory"
	"github.com/kmuir/dirtyminds-go/internal/testutil"
)

const testHostKey = model.PlayerID("host-key")

type CoordinatorSuite struct {
	suite.Suite
	storage     *memory.Storage
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	coordinator *Coordinator
	session     *model.Session
	ctx         context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()

	deckService := deck.New(s.storage, s.random)
	err := deckService.LoadRiddles([]model.Riddle{
		{Clue: "first clue", Answer: "first answer"},
		{Clue: "second clue", Answer: "second answer"},
	})
	s.Require().NoError(err)

	cfg := DefaultConfig()
	cfg.DeckSize = 2

	s.coordinator = NewCoordinator(
		s.storage,
		deckService,
		roster.New(s.clock, s.random),
		scoring.New(),
		s.clock,
		s.random,
		testutil.NopLogger(),
		cfg,
	)

	s.session = &model.Session{
		Code:      "ABC123",
		Status:    model.SessionStatusLobby,
		HostID:    testHostKey,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.session))
}

// joinPlayers seeds the roster with alternating roles
func (s *CoordinatorSuite) joinPlayers(ids ...model.PlayerID) {
	for i, id := range ids {
		s.random.QueueIntn(i % 2)
		_, err := s.coordinator.Join(s.ctx, s.session, id, "Player "+string(id))
		s.Require().NoError(err)
	}
}

// startGame takes the session into riddle_display
func (s *CoordinatorSuite) startGame() {
	_, err := s.coordinator.StartGame(s.ctx, s.session, testHostKey)
	s.Require().NoError(err)
}

// advanceTo walks the phase machine by expiring timers until the
// session reaches the target phase
func (s *CoordinatorSuite) advanceTo(phase model.Phase) {
	for i := 0; i < 20; i++ {
		if s.session.Phase() == phase {
			return
		}
		_, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
		s.Require().NoError(err)
	}
	s.FailNowf("phase never reached", "wanted %s, stuck at %s", phase, s.session.Phase())
}

func (s *CoordinatorSuite) findEvent(t Transition, eventType model.EventType) *model.OutboundEvent {
	for _, out := range t.Events {
		if out.Event.Type == eventType {
			return &out.Event
		}
	}
	return nil
}

// Join / Leave

func (s *CoordinatorSuite) TestJoinEmitsRoleAndRoster() {
	s.random.QueueIntn(0)

	t, err := s.coordinator.Join(s.ctx, s.session, "player-1", "Alice")
	s.Require().NoError(err)
	s.Require().Len(t.Events, 2)

	s.Equal(model.PlayerID("player-1"), t.Events[0].To)
	s.Equal(model.EventRoleAssigned, t.Events[0].Event.Type)
	role := t.Events[0].Event.Payload.(model.RoleAssignedPayload)
	s.Equal(model.RoleSaint, role.Role)

	s.Empty(t.Events[1].To)
	s.Equal(model.EventRosterChanged, t.Events[1].Event.Type)
	payload := t.Events[1].Event.Payload.(model.RosterChangedPayload)
	s.Len(payload.Players, 1)
}

func (s *CoordinatorSuite) TestJoinPersists() {
	s.joinPlayers("player-1")

	stored, err := s.storage.GetSession(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(stored.Roster, 1)
}

func (s *CoordinatorSuite) TestLeaveEmitsRoster() {
	s.joinPlayers("player-1", "player-2")

	t, err := s.coordinator.Leave(s.ctx, s.session, "player-1")
	s.Require().NoError(err)

	payload := s.findEvent(t, model.EventRosterChanged).Payload.(model.RosterChangedPayload)
	s.Len(payload.Players, 1)
}

func (s *CoordinatorSuite) TestLeaveDuringAnsweringAdvancesWhenRestAnswered() {
	s.joinPlayers("player-1", "player-2", "player-3")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01", "answer02")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "an answer")
	s.Require().NoError(err)
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-2", "another answer")
	s.Require().NoError(err)

	// player-3 was the only holdout; their departure completes the phase
	t, err := s.coordinator.Leave(s.ctx, s.session, "player-3")
	s.Require().NoError(err)

	s.Equal(model.PhaseRevealCorrect, s.session.Phase())
	s.NotNil(s.findEvent(t, model.EventRosterChanged))
	s.NotNil(s.findEvent(t, model.EventPhaseChange))
}

// StartGame

func (s *CoordinatorSuite) TestStartGame() {
	s.joinPlayers("player-1", "player-2")

	t, err := s.coordinator.StartGame(s.ctx, s.session, testHostKey)
	s.Require().NoError(err)

	s.Equal(model.SessionStatusInProgress, s.session.Status)
	s.Equal(model.PhaseRiddleDisplay, s.session.Phase())
	s.Len(s.session.Deck, 2)
	s.Equal(DefaultTimings().RiddleDisplay, t.Delay)

	payload := s.findEvent(t, model.EventPhaseChange).Payload.(model.PhaseChangePayload)
	s.Equal(model.PhaseRiddleDisplay, payload.Phase)
	s.NotEmpty(payload.Clue)
	s.Empty(payload.CorrectAnswer, "answer must stay hidden before reveal")
	s.Equal(s.clock.Now().Add(t.Delay).UnixMilli(), payload.DeadlineMs)
}

func (s *CoordinatorSuite) TestStartGameRequiresHostKey() {
	s.joinPlayers("player-1", "player-2")

	_, err := s.coordinator.StartGame(s.ctx, s.session, "wrong-key")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *CoordinatorSuite) TestStartGameRequiresAPlayer() {
	_, err := s.coordinator.StartGame(s.ctx, s.session, testHostKey)
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *CoordinatorSuite) TestStartGameWithLonePlayer() {
	s.joinPlayers("player-1")

	_, err := s.coordinator.StartGame(s.ctx, s.session, testHostKey)
	s.Require().NoError(err)
	s.Equal(model.PhaseRiddleDisplay, s.session.Phase())
}

func (s *CoordinatorSuite) TestStartGameTwice() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	_, err := s.coordinator.StartGame(s.ctx, s.session, testHostKey)
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *CoordinatorSuite) TestJoinRejectedAfterStart() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	_, err := s.coordinator.Join(s.ctx, s.session, "latecomer", "Late")
	s.ErrorIs(err, model.ErrGameInProgress)
}

// Phase sequencing

func (s *CoordinatorSuite) TestPhaseOrderThroughOneRound() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	wantOrder := []model.Phase{
		model.PhaseAnswering,
		model.PhaseRevealCorrect,
		model.PhaseRevealAnswers,
		model.PhaseVoting,
		model.PhaseResults,
	}
	for _, want := range wantOrder {
		_, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
		s.Require().NoError(err)
		s.Equal(want, s.session.Phase())
	}

	// Results of round 0 roll into round 1's riddle display
	_, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(model.PhaseRiddleDisplay, s.session.Phase())
	s.Equal(1, s.session.RoundIndex)
}

func (s *CoordinatorSuite) TestAnsweringExpiryWithZeroAnswersStillAdvances() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)

	s.Equal(model.PhaseRevealCorrect, s.session.Phase())
	payload := s.findEvent(t, model.EventPhaseChange).Payload.(model.PhaseChangePayload)
	s.Equal("first answer", payload.CorrectAnswer)
}

func (s *CoordinatorSuite) TestRevealAnswersShuffledAndAnonymous() {
	s.joinPlayers("player-1", "player-2", "player-3")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01", "answer02", "answer03")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-2", "two")
	s.Require().NoError(err)
	// The last answer completes the phase early
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-3", "three")
	s.Require().NoError(err)
	s.Require().Equal(model.PhaseRevealCorrect, s.session.Phase())

	// Shuffle draws: swap index 2 with 0, leave index 1 in place
	s.random.QueueIntn(0, 1)
	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)
	s.Equal(model.PhaseRevealAnswers, s.session.Phase())

	payload := s.findEvent(t, model.EventPhaseChange).Payload.(model.PhaseChangePayload)
	s.Require().Len(payload.Answers, 3)
	s.Equal([]model.RevealedAnswer{
		{ID: "answer03", Text: "three"},
		{ID: "answer02", Text: "two"},
		{ID: "answer01", Text: "one"},
	}, payload.Answers, "reveal order must follow the shuffle, not submission")

	// The stored round holds the same shuffled order
	s.Equal(model.AnswerID("answer03"), s.session.Round.Answers[0].ID)
}

func (s *CoordinatorSuite) TestRevealAnswersDurationScalesWithAnswers() {
	s.joinPlayers("player-1", "player-2", "player-3")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01", "answer02")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-2", "two")
	s.Require().NoError(err)

	s.advanceTo(model.PhaseRevealCorrect)
	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)

	s.Equal(model.PhaseRevealAnswers, s.session.Phase())
	want := DefaultTimings().RevealTail + 2*DefaultTimings().RevealAnswerEach
	s.Equal(want, t.Delay)
}

func (s *CoordinatorSuite) TestGameOverAfterLastRound() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	// Two rounds in the deck; run both to completion
	for round := 0; round < 2; round++ {
		s.advanceTo(model.PhaseResults)
		if round == 0 {
			_, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
			s.Require().NoError(err)
			s.Equal(model.PhaseRiddleDisplay, s.session.Phase())
		}
	}

	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)

	s.Equal(model.SessionStatusFinished, s.session.Status)
	s.Equal(model.PhaseFinished, s.session.Phase())
	s.Zero(t.Delay)

	payload := s.findEvent(t, model.EventGameOver).Payload.(model.GameOverPayload)
	s.Len(payload.Players, 2)
	s.Len(payload.WinnerIDs, 2, "scoreless game ties everyone")
}

// Skip

func (s *CoordinatorSuite) TestSkipMatchesExpiry() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	t, err := s.coordinator.Skip(s.ctx, s.session, testHostKey)
	s.Require().NoError(err)
	s.Equal(model.PhaseAnswering, s.session.Phase())
	s.Equal(DefaultTimings().Answering, t.Delay)
}

func (s *CoordinatorSuite) TestSkipAnsweringRequiresAnAnswer() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	_, err := s.coordinator.Skip(s.ctx, s.session, testHostKey)
	s.ErrorIs(err, model.ErrNoAnswers)

	s.random.QueueString("answer01")
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)

	_, err = s.coordinator.Skip(s.ctx, s.session, testHostKey)
	s.Require().NoError(err)
	s.Equal(model.PhaseRevealCorrect, s.session.Phase())
}

func (s *CoordinatorSuite) TestSkipRequiresHostKey() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	_, err := s.coordinator.Skip(s.ctx, s.session, "player-1")
	s.ErrorIs(err, model.ErrNotHost)
}

func (s *CoordinatorSuite) TestSkipBeforeStart() {
	_, err := s.coordinator.Skip(s.ctx, s.session, testHostKey)
	s.ErrorIs(err, model.ErrGameNotStarted)
}

// SubmitAnswer

func (s *CoordinatorSuite) TestSubmitAnswerBroadcastsCount() {
	s.joinPlayers("player-1", "player-2", "player-3")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01")
	t, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "my answer")
	s.Require().NoError(err)

	payload := s.findEvent(t, model.EventAnswerCount).Payload.(model.AnswerCountPayload)
	s.Equal(1, payload.Submitted)
	s.Equal(3, payload.Expected)
	s.Equal(model.PhaseAnswering, s.session.Phase())
}

func (s *CoordinatorSuite) TestSubmitAnswerLastPlayerAdvancesEarly() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01", "answer02")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)

	t, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-2", "two")
	s.Require().NoError(err)

	s.Equal(model.PhaseRevealCorrect, s.session.Phase())
	s.Equal(DefaultTimings().RevealCorrect, t.Delay)
}

func (s *CoordinatorSuite) TestSubmitAnswerWrongPhase() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "too soon")
	s.ErrorIs(err, model.ErrWrongPhase)
}

func (s *CoordinatorSuite) TestSubmitAnswerTwice() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)

	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "again")
	s.ErrorIs(err, model.ErrAlreadyAnswered)
}

func (s *CoordinatorSuite) TestSubmitAnswerEmpty() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "   ")
	s.ErrorIs(err, model.ErrEmptyAnswer)
}

func (s *CoordinatorSuite) TestSubmitAnswerUnknownPlayer() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "stranger", "hello")
	s.ErrorIs(err, model.ErrNotInSession)
}

// CastVote

// votingWithAnswers walks a three-player session into voting with
// answers from player-1 and player-2
func (s *CoordinatorSuite) votingWithAnswers() {
	s.joinPlayers("player-1", "player-2", "player-3")
	s.startGame()
	s.advanceTo(model.PhaseAnswering)

	s.random.QueueString("answer01", "answer02")
	_, err := s.coordinator.SubmitAnswer(s.ctx, s.session, "player-1", "one")
	s.Require().NoError(err)
	_, err = s.coordinator.SubmitAnswer(s.ctx, s.session, "player-2", "two")
	s.Require().NoError(err)

	s.advanceTo(model.PhaseVoting)
}

func (s *CoordinatorSuite) TestCastVote() {
	s.votingWithAnswers()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-3", model.VoteCorrect, "answer01")
	s.Require().NoError(err)

	votes := s.session.Round.Votes(model.VoteCorrect)
	s.Require().Len(votes, 1)
	s.Equal(model.PlayerID("player-3"), votes[0].VoterID)
	s.Equal(model.PlayerID("player-1"), votes[0].TargetID)
}

func (s *CoordinatorSuite) TestCastVoteSelf() {
	s.votingWithAnswers()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-1", model.VoteCorrect, "answer01")
	s.ErrorIs(err, model.ErrSelfVote)
}

func (s *CoordinatorSuite) TestCastVoteUnknownAnswer() {
	s.votingWithAnswers()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-3", model.VoteCorrect, "missing1")
	s.ErrorIs(err, model.ErrAnswerNotFound)
}

func (s *CoordinatorSuite) TestCastVoteInvalidType() {
	s.votingWithAnswers()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-3", "meanest", "answer01")
	s.ErrorIs(err, model.ErrInvalidVote)
}

func (s *CoordinatorSuite) TestCastVoteWrongPhase() {
	s.joinPlayers("player-1", "player-2")
	s.startGame()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-1", model.VoteCorrect, "answer01")
	s.ErrorIs(err, model.ErrWrongPhase)
}

// Results

func (s *CoordinatorSuite) TestVotingExpiryEmitsResultsAndScores() {
	s.votingWithAnswers()

	_, err := s.coordinator.CastVote(s.ctx, s.session, "player-3", model.VoteCorrect, "answer01")
	s.Require().NoError(err)
	_, err = s.coordinator.CastVote(s.ctx, s.session, "player-3", model.VoteFunniest, "answer02")
	s.Require().NoError(err)

	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)

	s.Equal(model.PhaseResults, s.session.Phase())

	payload := s.findEvent(t, model.EventResults).Payload.(model.ResultsPayload)
	s.Equal(model.PlayerID("player-1"), payload.CorrectWinnerID)
	s.Equal(model.PlayerID("player-2"), payload.FunniestWinnerID)
	s.Equal("first answer", payload.CorrectAnswer)

	s.Equal(1, s.session.GetPlayer("player-1").Score)
	s.Equal(1, s.session.GetPlayer("player-2").Score)
}

func (s *CoordinatorSuite) TestVotingExpiryWithNoVotes() {
	s.votingWithAnswers()

	t, err := s.coordinator.HandleTimerExpiry(s.ctx, s.session)
	s.Require().NoError(err)

	payload := s.findEvent(t, model.EventResults).Payload.(model.ResultsPayload)
	s.Empty(payload.CorrectWinnerID)
	s.Empty(payload.FunniestWinnerID)
}
