package deck

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/random"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/storage"
)

// Service manages the riddle pool and draws per-game decks
type Service struct {
	storage storage.Storage
	random  random.Random

	mu      sync.RWMutex
	riddles []model.Riddle
	loaded  bool
}

// New creates a new deck Service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// LoadFromStorage loads the riddle pool from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	riddles, err := s.storage.GetRiddlePool(ctx)
	if err != nil {
		return err
	}
	return s.loadRiddles(riddles)
}

// LoadFromFile loads riddles from a file, one tab-separated clue/answer
// pair per line. Blank lines and lines starting with # are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var riddles []model.Riddle
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		clue, answer, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("line %d: expected tab-separated clue and answer", lineNum)
		}
		riddles = append(riddles, model.Riddle{
			Clue:   strings.TrimSpace(clue),
			Answer: strings.TrimSpace(answer),
		})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveRiddlePool(ctx, riddles); err != nil {
		return err
	}

	return s.loadRiddles(riddles)
}

// LoadRiddles directly loads a slice of riddles (useful for testing)
func (s *Service) LoadRiddles(riddles []model.Riddle) error {
	return s.loadRiddles(riddles)
}

// LoadDefault loads the built-in riddle pool and saves it to storage
func (s *Service) LoadDefault(ctx context.Context) error {
	if err := s.storage.SaveRiddlePool(ctx, DefaultPool()); err != nil {
		return err
	}
	return s.loadRiddles(DefaultPool())
}

func (s *Service) loadRiddles(riddles []model.Riddle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.riddles = make([]model.Riddle, len(riddles))
	copy(s.riddles, riddles)
	s.loaded = true
	return nil
}

// IsLoaded returns whether the riddle pool has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count returns the number of riddles in the pool
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.riddles)
}

// Draw returns n distinct riddles in random order. If the pool holds
// fewer than n riddles the whole pool is returned, shuffled.
func (s *Service) Draw(n int) ([]model.Riddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, model.ErrRiddlePoolNotLoaded
	}
	if len(s.riddles) == 0 {
		return nil, model.ErrRiddlePoolExhausted
	}

	shuffled := make([]model.Riddle, len(s.riddles))
	copy(shuffled, s.riddles)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], nil
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadRiddles(riddles []model.Riddle) error
	LoadDefault(ctx context.Context) error
	IsLoaded() bool
	Count() int
	Draw(n int) ([]model.Riddle, error)
}

var _ ServiceInterface = (*Service)(nil)
