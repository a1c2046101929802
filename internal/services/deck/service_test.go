package deck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/mocks"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.random)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())
	s.Equal(0, s.service.Count())
}

func (s *ServiceSuite) TestLoadRiddles() {
	riddles := []model.Riddle{
		{Clue: "clue one", Answer: "answer one"},
		{Clue: "clue two", Answer: "answer two"},
	}
	err := s.service.LoadRiddles(riddles)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(2, s.service.Count())
}

func (s *ServiceSuite) TestLoadFromStorage() {
	riddles := []model.Riddle{{Clue: "c", Answer: "a"}}
	err := s.storage.SaveRiddlePool(s.ctx, riddles)
	s.Require().NoError(err)

	err = s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(1, s.service.Count())
}

func (s *ServiceSuite) TestLoadFromStorageWhenEmpty() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrRiddlePoolNotLoaded)
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "riddles.txt")
	content := "# comment line\n" +
		"clue one\tanswer one\n" +
		"\n" +
		"clue two\tanswer two\n"
	err := os.WriteFile(path, []byte(content), 0o644)
	s.Require().NoError(err)

	err = s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)

	s.Equal(2, s.service.Count())

	// File contents are persisted for later LoadFromStorage calls
	stored, err := s.storage.GetRiddlePool(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.Riddle{
		{Clue: "clue one", Answer: "answer one"},
		{Clue: "clue two", Answer: "answer two"},
	}, stored)
}

func (s *ServiceSuite) TestLoadFromFileRejectsMalformedLine() {
	path := filepath.Join(s.T().TempDir(), "riddles.txt")
	err := os.WriteFile(path, []byte("no tab here\n"), 0o644)
	s.Require().NoError(err)

	err = s.service.LoadFromFile(s.ctx, path)
	s.Error(err)
}

func (s *ServiceSuite) TestLoadFromFileMissing() {
	err := s.service.LoadFromFile(s.ctx, "/nonexistent/riddles.txt")
	s.Error(err)
}

func (s *ServiceSuite) TestLoadDefault() {
	err := s.service.LoadDefault(s.ctx)
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Greater(s.service.Count(), 9)

	stored, err := s.storage.GetRiddlePool(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, s.service.Count())
}

func (s *ServiceSuite) TestDrawNotLoaded() {
	_, err := s.service.Draw(3)
	s.ErrorIs(err, model.ErrRiddlePoolNotLoaded)
}

func (s *ServiceSuite) TestDrawEmptyPool() {
	_ = s.service.LoadRiddles([]model.Riddle{})
	_, err := s.service.Draw(3)
	s.ErrorIs(err, model.ErrRiddlePoolExhausted)
}

func (s *ServiceSuite) TestDrawReturnsDistinctRiddles() {
	riddles := []model.Riddle{
		{Clue: "c1", Answer: "a1"},
		{Clue: "c2", Answer: "a2"},
		{Clue: "c3", Answer: "a3"},
		{Clue: "c4", Answer: "a4"},
	}
	_ = s.service.LoadRiddles(riddles)
	// Mock random returns 0 for every Intn call, giving a deterministic
	// shuffle we can assert uniqueness against
	drawn, err := s.service.Draw(3)
	s.Require().NoError(err)
	s.Len(drawn, 3)

	seen := map[string]bool{}
	for _, r := range drawn {
		s.False(seen[r.Clue], "riddle drawn twice: %s", r.Clue)
		seen[r.Clue] = true
	}
}

func (s *ServiceSuite) TestDrawCapsAtPoolSize() {
	riddles := []model.Riddle{
		{Clue: "c1", Answer: "a1"},
		{Clue: "c2", Answer: "a2"},
	}
	_ = s.service.LoadRiddles(riddles)

	drawn, err := s.service.Draw(10)
	s.Require().NoError(err)
	s.Len(drawn, 2)
}

func (s *ServiceSuite) TestDrawDoesNotMutatePool() {
	riddles := []model.Riddle{
		{Clue: "c1", Answer: "a1"},
		{Clue: "c2", Answer: "a2"},
		{Clue: "c3", Answer: "a3"},
	}
	_ = s.service.LoadRiddles(riddles)

	_, err := s.service.Draw(3)
	s.Require().NoError(err)

	drawnAgain, err := s.service.Draw(3)
	s.Require().NoError(err)
	s.Len(drawnAgain, 3)
	s.Equal(3, s.service.Count())
}
