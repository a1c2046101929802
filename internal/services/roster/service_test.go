package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/mocks"
	"github.com/kmuir/dirtyminds-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	session *model.Session
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.clock, s.random)
	s.session = &model.Session{
		Code:   "ABC123",
		Status: model.SessionStatusLobby,
		HostID: "host-key",
	}
}

func (s *ServiceSuite) TestJoinAddsPlayer() {
	s.random.QueueIntn(0) // coin flip -> SAINT

	player, err := s.service.Join(s.session, "player-1", "Alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("player-1"), player.ID)
	s.Equal("Alice", player.DisplayName)
	s.Equal(model.RoleSaint, player.Role)
	s.Equal(s.clock.Now(), player.JoinedAt)
	s.Len(s.session.Roster, 1)
}

func (s *ServiceSuite) TestJoinCoinFlipSinner() {
	s.random.QueueIntn(1)

	player, err := s.service.Join(s.session, "player-1", "Alice")
	s.Require().NoError(err)
	s.Equal(model.RoleSinner, player.Role)
}

func (s *ServiceSuite) TestJoinFlipsIndependently() {
	// Each join flips its own coin; same-side runs are legitimate
	s.random.QueueIntn(0, 0, 0)

	for _, id := range []model.PlayerID{"player-1", "player-2", "player-3"} {
		player, err := s.service.Join(s.session, id, string(id))
		s.Require().NoError(err)
		s.Equal(model.RoleSaint, player.Role)
	}
}

func (s *ServiceSuite) TestJoinRejectsDuplicate() {
	s.random.QueueIntn(0)
	_, err := s.service.Join(s.session, "player-1", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Join(s.session, "player-1", "Alice Again")
	s.ErrorIs(err, model.ErrAlreadyJoined)
}

func (s *ServiceSuite) TestJoinRejectedOnceGameStarted() {
	s.session.Status = model.SessionStatusInProgress

	_, err := s.service.Join(s.session, "player-1", "Alice")
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *ServiceSuite) TestJoinTruncatesLongName() {
	s.random.QueueIntn(0)
	longName := "This name is much much much too long for a scoreboard"

	player, err := s.service.Join(s.session, "player-1", longName)
	s.Require().NoError(err)
	s.Len(player.DisplayName, MaxDisplayNameLength)
}

func (s *ServiceSuite) TestJoinTruncatesMultibyteNameOnRuneBoundary() {
	s.random.QueueIntn(0)
	longName := strings.Repeat("日", MaxDisplayNameLength+5)

	player, err := s.service.Join(s.session, "player-1", longName)
	s.Require().NoError(err)

	runes := []rune(player.DisplayName)
	s.Len(runes, MaxDisplayNameLength)
	for _, r := range runes {
		s.Equal('日', r)
	}
}

func (s *ServiceSuite) TestJoinDefaultsEmptyName() {
	s.random.QueueIntn(0)

	player, err := s.service.Join(s.session, "abcdef12-3456", "   ")
	s.Require().NoError(err)
	s.Equal("Player abcdef12", player.DisplayName)
}

func (s *ServiceSuite) TestLeaveRemovesPlayer() {
	s.random.QueueIntn(0, 0)
	_, _ = s.service.Join(s.session, "player-1", "Alice")
	_, _ = s.service.Join(s.session, "player-2", "Bob")

	err := s.service.Leave(s.session, "player-1")
	s.Require().NoError(err)

	s.Len(s.session.Roster, 1)
	s.Nil(s.session.GetPlayer("player-1"))
}

func (s *ServiceSuite) TestLeaveUnknownPlayer() {
	err := s.service.Leave(s.session, "nobody")
	s.ErrorIs(err, model.ErrNotInSession)
}

func (s *ServiceSuite) TestLeaveKeepsRoundContributions() {
	s.random.QueueIntn(0, 0)
	_, _ = s.service.Join(s.session, "player-1", "Alice")
	_, _ = s.service.Join(s.session, "player-2", "Bob")

	s.session.Status = model.SessionStatusInProgress
	s.session.Round = model.NewRound(model.PhaseVoting)
	s.session.Round.Answers = []model.SubmittedAnswer{
		{ID: "answer-1", PlayerID: "player-1", Role: model.RoleSaint, Text: "an answer"},
	}
	s.session.Round.RecordVote(model.VoteCorrect, "player-1", "player-2")

	err := s.service.Leave(s.session, "player-1")
	s.Require().NoError(err)

	s.Len(s.session.Round.Answers, 1)
	s.Len(s.session.Round.Votes(model.VoteCorrect), 1)
}

func (s *ServiceSuite) TestSummarize() {
	s.random.QueueIntn(0)
	_, _ = s.service.Join(s.session, "player-1", "Alice")
	s.session.GetPlayer("player-1").Score = 3

	summaries := Summarize(s.session)
	s.Require().Len(summaries, 1)
	s.Equal(model.PlayerID("player-1"), summaries[0].ID)
	s.Equal("Alice", summaries[0].DisplayName)
	s.Equal(3, summaries[0].Score)
	s.False(summaries[0].IsHost)
}
