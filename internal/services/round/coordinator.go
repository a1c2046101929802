package round

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kmuir/dirtyminds-go/internal/dependencies/clock"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/random"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/deck"
	"github.com/kmuir/dirtyminds-go/internal/services/roster"
	"github.com/kmuir/dirtyminds-go/internal/services/scoring"
	"github.com/kmuir/dirtyminds-go/internal/storage"
)

const (
	// AnswerIDLength is the length of generated answer ids
	AnswerIDLength = 8
	// AnswerIDAlphabet is the characters used in answer ids
	AnswerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// MaxAnswerLength caps submitted answer text
	MaxAnswerLength = 200
)

// Timings holds the per-phase durations of a round
type Timings struct {
	RiddleDisplay    time.Duration
	Answering        time.Duration
	RevealCorrect    time.Duration
	RevealAnswerEach time.Duration
	RevealTail       time.Duration
	Voting           time.Duration
	Results          time.Duration
}

// DefaultTimings returns the standard pacing
func DefaultTimings() Timings {
	return Timings{
		RiddleDisplay:    5 * time.Second,
		Answering:        60 * time.Second,
		RevealCorrect:    5 * time.Second,
		RevealAnswerEach: 3 * time.Second,
		RevealTail:       2 * time.Second,
		Voting:           30 * time.Second,
		Results:          10 * time.Second,
	}
}

// Config holds game-level settings for the coordinator
type Config struct {
	// DeckSize is the number of riddles drawn per game
	DeckSize int
	// MinPlayers is the minimum roster size to start a game
	MinPlayers int
	Timings    Timings
}

// DefaultConfig returns sensible coordinator defaults
func DefaultConfig() Config {
	return Config{
		DeckSize:   10,
		MinPlayers: 1,
		Timings:    DefaultTimings(),
	}
}

// Outgoing pairs an event with an optional single recipient
type Outgoing struct {
	// To is empty for events broadcast to the whole session channel
	To    model.PlayerID
	Event model.OutboundEvent
}

// Transition is the result of applying a command or timer expiry to a
// session. Delay > 0 means a phase timer must be armed.
type Transition struct {
	Events []Outgoing
	Delay  time.Duration
}

func broadcastEvent(eventType model.EventType, payload any) Outgoing {
	return Outgoing{Event: model.OutboundEvent{Type: eventType, Payload: payload}}
}

func direct(to model.PlayerID, eventType model.EventType, payload any) Outgoing {
	return Outgoing{To: to, Event: model.OutboundEvent{Type: eventType, Payload: payload}}
}

// Coordinator drives the round phase machine. Its methods mutate the
// session and persist it; callers serialize access per session.
type Coordinator struct {
	storage        storage.Storage
	deckService    deck.ServiceInterface
	rosterService  *roster.Service
	scoringService scoring.ServiceInterface
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
	config         Config
}

// NewCoordinator creates a new round Coordinator
func NewCoordinator(
	storage storage.Storage,
	deckService deck.ServiceInterface,
	rosterService *roster.Service,
	scoringService scoring.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	config Config,
) *Coordinator {
	return &Coordinator{
		storage:        storage,
		deckService:    deckService,
		rosterService:  rosterService,
		scoringService: scoringService,
		clock:          clock,
		random:         random,
		logger:         logger,
		config:         config,
	}
}

// Join adds a player to the session roster
func (c *Coordinator) Join(ctx context.Context, session *model.Session, playerID model.PlayerID, displayName string) (Transition, error) {
	player, err := c.rosterService.Join(session, playerID, displayName)
	if err != nil {
		return Transition{}, err
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return Transition{}, err
	}

	c.logger.Info("player joined",
		slog.String("session", string(session.Code)),
		slog.String("player_id", string(playerID)),
		slog.String("role", string(player.Role)),
	)

	return Transition{Events: []Outgoing{
		direct(playerID, model.EventRoleAssigned, model.RoleAssignedPayload{
			PlayerID: playerID,
			Role:     player.Role,
		}),
		broadcastEvent(model.EventRosterChanged, model.RosterChangedPayload{
			Players: roster.Summarize(session),
		}),
	}}, nil
}

// Leave removes a player from the session roster. Contributions they
// already made to the current round are kept.
func (c *Coordinator) Leave(ctx context.Context, session *model.Session, playerID model.PlayerID) (Transition, error) {
	if err := c.rosterService.Leave(session, playerID); err != nil {
		return Transition{}, err
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return Transition{}, err
	}

	c.logger.Info("player left",
		slog.String("session", string(session.Code)),
		slog.String("player_id", string(playerID)),
	)

	events := []Outgoing{
		broadcastEvent(model.EventRosterChanged, model.RosterChangedPayload{
			Players: roster.Summarize(session),
		}),
	}

	// A shrunken roster may mean everyone remaining has now answered
	if session.Phase() == model.PhaseAnswering && c.allAnswered(session) {
		t, err := c.advance(ctx, session)
		if err != nil {
			return Transition{}, err
		}
		t.Events = append(events, t.Events...)
		return t, nil
	}

	return Transition{Events: events}, nil
}

// StartGame draws the deck and moves the session into its first round
func (c *Coordinator) StartGame(ctx context.Context, session *model.Session, hostKey model.PlayerID) (Transition, error) {
	if hostKey != session.HostID {
		return Transition{}, model.ErrNotHost
	}
	switch session.Status {
	case model.SessionStatusInProgress:
		return Transition{}, model.ErrGameInProgress
	case model.SessionStatusFinished:
		return Transition{}, model.ErrGameFinished
	}
	if len(session.Roster) < c.config.MinPlayers {
		return Transition{}, model.ErrInsufficientPlayers
	}

	riddles, err := c.deckService.Draw(c.config.DeckSize)
	if err != nil {
		return Transition{}, err
	}

	session.Status = model.SessionStatusInProgress
	session.Deck = riddles
	session.RoundIndex = 0
	session.Round = model.NewRound(model.PhaseRiddleDisplay)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return Transition{}, err
	}

	c.logger.Info("game started",
		slog.String("session", string(session.Code)),
		slog.Int("players", len(session.Roster)),
		slog.Int("rounds", len(session.Deck)),
	)

	delay := c.config.Timings.RiddleDisplay
	return Transition{
		Events: []Outgoing{c.phaseChangeEvent(session, delay)},
		Delay:  delay,
	}, nil
}

// Skip advances out of the current phase on host request. Skipping the
// answering phase requires at least one submitted answer.
func (c *Coordinator) Skip(ctx context.Context, session *model.Session, hostKey model.PlayerID) (Transition, error) {
	if hostKey != session.HostID {
		return Transition{}, model.ErrNotHost
	}
	if session.Status == model.SessionStatusFinished {
		return Transition{}, model.ErrGameFinished
	}
	if session.Status != model.SessionStatusInProgress || session.Round == nil {
		return Transition{}, model.ErrGameNotStarted
	}
	if session.Round.Phase == model.PhaseAnswering && len(session.Round.Answers) == 0 {
		return Transition{}, model.ErrNoAnswers
	}

	return c.advance(ctx, session)
}

// SubmitAnswer records a player's answer during the answering phase.
// When the last roster member answers the round advances immediately.
func (c *Coordinator) SubmitAnswer(ctx context.Context, session *model.Session, playerID model.PlayerID, text string) (Transition, error) {
	if session.Status != model.SessionStatusInProgress || session.Round == nil {
		return Transition{}, model.ErrGameNotStarted
	}
	if session.Round.Phase != model.PhaseAnswering {
		return Transition{}, model.ErrWrongPhase
	}

	player := session.GetPlayer(playerID)
	if player == nil {
		return Transition{}, model.ErrNotInSession
	}
	if session.Round.HasAnswered(playerID) {
		return Transition{}, model.ErrAlreadyAnswered
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Transition{}, model.ErrEmptyAnswer
	}
	if runes := []rune(text); len(runes) > MaxAnswerLength {
		text = string(runes[:MaxAnswerLength])
	}

	session.Round.Answers = append(session.Round.Answers, model.SubmittedAnswer{
		ID:       model.AnswerID(c.random.String(AnswerIDLength, AnswerIDAlphabet)),
		PlayerID: playerID,
		Role:     player.Role,
		Text:     text,
	})
	session.UpdatedAt = c.clock.Now()

	if c.allAnswered(session) {
		return c.advance(ctx, session)
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return Transition{}, err
	}

	return Transition{Events: []Outgoing{
		broadcastEvent(model.EventAnswerCount, model.AnswerCountPayload{
			Submitted: len(session.Round.Answers),
			Expected:  len(session.Roster),
		}),
	}}, nil
}

// CastVote records or changes a player's vote during the voting phase.
// Votes stay private until results, so nothing is broadcast.
func (c *Coordinator) CastVote(ctx context.Context, session *model.Session, voterID model.PlayerID, voteType model.VoteType, answerID model.AnswerID) (Transition, error) {
	if session.Status != model.SessionStatusInProgress || session.Round == nil {
		return Transition{}, model.ErrGameNotStarted
	}
	if session.Round.Phase != model.PhaseVoting {
		return Transition{}, model.ErrWrongPhase
	}
	if voteType != model.VoteCorrect && voteType != model.VoteFunniest {
		return Transition{}, model.ErrInvalidVote
	}
	if session.GetPlayer(voterID) == nil {
		return Transition{}, model.ErrNotInSession
	}

	answer := session.Round.AnswerByID(answerID)
	if answer == nil {
		return Transition{}, model.ErrAnswerNotFound
	}
	if answer.PlayerID == voterID {
		return Transition{}, model.ErrSelfVote
	}

	session.Round.RecordVote(voteType, voterID, answer.PlayerID)
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return Transition{}, err
	}

	return Transition{}, nil
}

// HandleTimerExpiry advances the phase machine when a phase timer fires
func (c *Coordinator) HandleTimerExpiry(ctx context.Context, session *model.Session) (Transition, error) {
	if session.Status != model.SessionStatusInProgress || session.Round == nil {
		return Transition{}, model.ErrGameNotStarted
	}
	return c.advance(ctx, session)
}

// advance performs the single legal transition out of the current phase.
// The transition commits only if the session persists; on a storage
// failure the session is restored so a retry repeats the same step.
func (c *Coordinator) advance(ctx context.Context, session *model.Session) (Transition, error) {
	backup := session.Clone()
	round := session.Round
	var transition Transition

	switch round.Phase {
	case model.PhaseRiddleDisplay:
		round.Phase = model.PhaseAnswering
		transition = c.timedPhase(session, c.config.Timings.Answering)

	case model.PhaseAnswering:
		round.Phase = model.PhaseRevealCorrect
		transition = c.timedPhase(session, c.config.Timings.RevealCorrect)

	case model.PhaseRevealCorrect:
		round.Phase = model.PhaseRevealAnswers
		c.shuffleAnswers(round)
		delay := c.config.Timings.RevealTail +
			time.Duration(len(round.Answers))*c.config.Timings.RevealAnswerEach
		transition = c.timedPhase(session, delay)

	case model.PhaseRevealAnswers:
		round.Phase = model.PhaseVoting
		transition = c.timedPhase(session, c.config.Timings.Voting)

	case model.PhaseVoting:
		round.Phase = model.PhaseResults
		result := c.scoringService.TallyRound(round, session.Roster)
		for i := range session.Roster {
			session.Roster[i].Score += result.Deltas[session.Roster[i].ID]
		}
		transition = c.timedPhase(session, c.config.Timings.Results)
		transition.Events = append(transition.Events,
			broadcastEvent(model.EventResults, model.ResultsPayload{
				RoundIndex:       session.RoundIndex,
				CorrectWinnerID:  result.CorrectWinnerID,
				FunniestWinnerID: result.FunniestWinnerID,
				CorrectAnswer:    session.CurrentRiddle().Answer,
				Players:          roster.Summarize(session),
			}),
		)

	case model.PhaseResults:
		if session.RoundsRemain() {
			session.RoundIndex++
			session.Round = model.NewRound(model.PhaseRiddleDisplay)
			transition = c.timedPhase(session, c.config.Timings.RiddleDisplay)
		} else {
			session.Status = model.SessionStatusFinished
			session.Round = nil
			transition = Transition{Events: []Outgoing{
				broadcastEvent(model.EventGameOver, model.GameOverPayload{
					Players:   roster.Summarize(session),
					WinnerIDs: scoring.GameWinners(session.Roster),
				}),
			}}
		}

	default:
		return Transition{}, model.ErrWrongPhase
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		*session = *backup
		return Transition{}, err
	}

	c.logger.Info("phase advanced",
		slog.String("session", string(session.Code)),
		slog.String("phase", string(session.Phase())),
		slog.Int("round", session.RoundIndex),
	)

	return transition, nil
}

// timedPhase builds the standard transition for a phase with a timer
func (c *Coordinator) timedPhase(session *model.Session, delay time.Duration) Transition {
	return Transition{
		Events: []Outgoing{c.phaseChangeEvent(session, delay)},
		Delay:  delay,
	}
}

// phaseChangeEvent builds the phase-change broadcast, attaching the
// data each phase needs.
func (c *Coordinator) phaseChangeEvent(session *model.Session, delay time.Duration) Outgoing {
	payload := model.PhaseChangePayload{
		Phase:       session.Phase(),
		RoundIndex:  session.RoundIndex,
		TotalRounds: len(session.Deck),
	}
	if delay > 0 {
		payload.DeadlineMs = c.clock.Now().Add(delay).UnixMilli()
	}

	riddle := session.CurrentRiddle()

	switch payload.Phase {
	case model.PhaseRiddleDisplay, model.PhaseAnswering:
		payload.Clue = riddle.Clue

	case model.PhaseRevealCorrect:
		payload.Clue = riddle.Clue
		payload.CorrectAnswer = riddle.Answer

	case model.PhaseRevealAnswers, model.PhaseVoting:
		payload.Clue = riddle.Clue
		payload.CorrectAnswer = riddle.Answer
		payload.Answers = revealAnswers(session)
	}

	return broadcastEvent(model.EventPhaseChange, payload)
}

// allAnswered reports whether every current roster member has answered
func (c *Coordinator) allAnswered(session *model.Session) bool {
	if session.Round == nil || len(session.Roster) == 0 {
		return false
	}
	for _, p := range session.Roster {
		if !session.Round.HasAnswered(p.ID) {
			return false
		}
	}
	return true
}

// shuffleAnswers randomizes the stored answer order so the reveal does
// not follow submission order, which would hint at authorship.
func (c *Coordinator) shuffleAnswers(round *model.Round) {
	answers := round.Answers
	for i := len(answers) - 1; i > 0; i-- {
		j := c.random.Intn(i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}
}

// revealAnswers builds the anonymous answer list clients vote on.
// Authorship stays server-side for self-vote checks and scoring.
func revealAnswers(session *model.Session) []model.RevealedAnswer {
	revealed := make([]model.RevealedAnswer, 0, len(session.Round.Answers))
	for _, a := range session.Round.Answers {
		revealed = append(revealed, model.RevealedAnswer{
			ID:   a.ID,
			Text: a.Text,
		})
	}
	return revealed
}
