package round

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kmuir/dirtyminds-go/internal/broadcast"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/clock"
	"github.com/kmuir/dirtyminds-go/internal/model"
)

const inboxSize = 64

// timerRetryDelay is how long the actor waits before retrying a phase
// advance whose persistence failed, so a transient storage outage does
// not strand the session until a manual skip.
const timerRetryDelay = 5 * time.Second

// command is the closed set of messages an actor processes
type command interface {
	isCommand()
}

type joinCmd struct {
	playerID    model.PlayerID
	displayName string
	reply       chan joinResult
}

type joinResult struct {
	player model.Player
	err    error
}

type leaveCmd struct {
	playerID model.PlayerID
	reply    chan error
}

type startCmd struct {
	hostKey model.PlayerID
	reply   chan error
}

type skipCmd struct {
	hostKey model.PlayerID
	reply   chan error
}

type answerCmd struct {
	playerID model.PlayerID
	text     string
	reply    chan error
}

type voteCmd struct {
	voterID  model.PlayerID
	voteType model.VoteType
	answerID model.AnswerID
	reply    chan error
}

type snapshotCmd struct {
	reply chan *model.Session
}

type timerCmd struct {
	gen uint64
}

func (joinCmd) isCommand()     {}
func (leaveCmd) isCommand()    {}
func (startCmd) isCommand()    {}
func (skipCmd) isCommand()     {}
func (answerCmd) isCommand()   {}
func (voteCmd) isCommand()     {}
func (snapshotCmd) isCommand() {}
func (timerCmd) isCommand()    {}

// Actor owns one session's state. All mutations flow through its inbox
// so commands and timer expiries are applied strictly one at a time.
type Actor struct {
	session     *model.Session
	coordinator *Coordinator
	gateway     broadcast.Gateway
	clock       clock.Clock
	logger      *slog.Logger

	inbox    chan command
	done     chan struct{}
	stopOnce sync.Once

	// Loop-owned. The generation counter invalidates callbacks from
	// timers that were superseded before they fired.
	timer    clock.Timer
	timerGen uint64
}

// NewActor creates an actor for the given session and starts its loop
func NewActor(
	session *model.Session,
	coordinator *Coordinator,
	gateway broadcast.Gateway,
	clock clock.Clock,
	logger *slog.Logger,
) *Actor {
	a := &Actor{
		session:     session,
		coordinator: coordinator,
		gateway:     gateway,
		clock:       clock,
		logger:      logger.With(slog.String("session", string(session.Code))),
		inbox:       make(chan command, inboxSize),
		done:        make(chan struct{}),
	}
	go a.run()
	return a
}

// Code returns the session code this actor owns
func (a *Actor) Code() model.SessionCode {
	return a.session.Code
}

// Stop shuts the actor down. Pending commands are abandoned.
func (a *Actor) Stop() {
	a.stopOnce.Do(func() {
		close(a.done)
	})
}

func (a *Actor) run() {
	defer func() {
		if a.timer != nil {
			a.timer.Stop()
		}
	}()

	ctx := context.Background()
	for {
		select {
		case cmd := <-a.inbox:
			a.handle(ctx, cmd)
		case <-a.done:
			return
		}
	}
}

func (a *Actor) handle(ctx context.Context, cmd command) {
	switch cmd := cmd.(type) {
	case joinCmd:
		t, err := a.coordinator.Join(ctx, a.session, cmd.playerID, cmd.displayName)
		result := joinResult{err: err}
		if err == nil {
			result.player = *a.session.GetPlayer(cmd.playerID)
		}
		a.apply(t, err)
		cmd.reply <- result

	case leaveCmd:
		t, err := a.coordinator.Leave(ctx, a.session, cmd.playerID)
		a.apply(t, err)
		cmd.reply <- err

	case startCmd:
		t, err := a.coordinator.StartGame(ctx, a.session, cmd.hostKey)
		a.apply(t, err)
		cmd.reply <- err

	case skipCmd:
		t, err := a.coordinator.Skip(ctx, a.session, cmd.hostKey)
		a.apply(t, err)
		cmd.reply <- err

	case answerCmd:
		t, err := a.coordinator.SubmitAnswer(ctx, a.session, cmd.playerID, cmd.text)
		a.apply(t, err)
		cmd.reply <- err

	case voteCmd:
		t, err := a.coordinator.CastVote(ctx, a.session, cmd.voterID, cmd.voteType, cmd.answerID)
		a.apply(t, err)
		cmd.reply <- err

	case snapshotCmd:
		cmd.reply <- a.session.Clone()

	case timerCmd:
		if cmd.gen != a.timerGen {
			// A skip or early advance already superseded this timer
			return
		}
		t, err := a.coordinator.HandleTimerExpiry(ctx, a.session)
		if err != nil {
			a.logger.Error("timer expiry failed", slog.Any("error", err))
			if a.session.Status == model.SessionStatusInProgress {
				a.armTimer(timerRetryDelay)
			}
			return
		}
		a.apply(t, nil)
	}
}

// apply publishes a transition's events and re-arms the phase timer
func (a *Actor) apply(t Transition, err error) {
	if err != nil {
		return
	}

	for _, out := range t.Events {
		if out.To != "" {
			a.gateway.PublishTo(a.session.Code, out.To, out.Event)
		} else {
			a.gateway.Publish(a.session.Code, out.Event)
		}
	}

	// A transition into a timed phase replaces any pending timer. When
	// play has stopped (game over), the pending timer must die too.
	if t.Delay > 0 || a.session.Status != model.SessionStatusInProgress {
		a.armTimer(t.Delay)
	}
}

func (a *Actor) armTimer(delay time.Duration) {
	a.timerGen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if delay <= 0 {
		return
	}

	gen := a.timerGen
	a.timer = a.clock.AfterFunc(delay, func() {
		select {
		case a.inbox <- timerCmd{gen: gen}:
		case <-a.done:
		}
	})
}

// send dispatches a command and waits for the actor to pick it up
func (a *Actor) send(ctx context.Context, cmd command) error {
	select {
	case a.inbox <- cmd:
		return nil
	case <-a.done:
		return model.ErrSessionNotFound
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join adds a player to the session
func (a *Actor) Join(ctx context.Context, playerID model.PlayerID, displayName string) (model.Player, error) {
	reply := make(chan joinResult, 1)
	if err := a.send(ctx, joinCmd{playerID: playerID, displayName: displayName, reply: reply}); err != nil {
		return model.Player{}, err
	}
	select {
	case result := <-reply:
		return result.player, result.err
	case <-ctx.Done():
		return model.Player{}, ctx.Err()
	}
}

// Leave removes a player from the session
func (a *Actor) Leave(ctx context.Context, playerID model.PlayerID) error {
	return a.roundTrip(ctx, func(reply chan error) command {
		return leaveCmd{playerID: playerID, reply: reply}
	})
}

// StartGame begins the game on behalf of the host
func (a *Actor) StartGame(ctx context.Context, hostKey model.PlayerID) error {
	return a.roundTrip(ctx, func(reply chan error) command {
		return startCmd{hostKey: hostKey, reply: reply}
	})
}

// Skip advances past the current phase on behalf of the host
func (a *Actor) Skip(ctx context.Context, hostKey model.PlayerID) error {
	return a.roundTrip(ctx, func(reply chan error) command {
		return skipCmd{hostKey: hostKey, reply: reply}
	})
}

// SubmitAnswer records a player's answer
func (a *Actor) SubmitAnswer(ctx context.Context, playerID model.PlayerID, text string) error {
	return a.roundTrip(ctx, func(reply chan error) command {
		return answerCmd{playerID: playerID, text: text, reply: reply}
	})
}

// CastVote records a player's vote
func (a *Actor) CastVote(ctx context.Context, voterID model.PlayerID, voteType model.VoteType, answerID model.AnswerID) error {
	return a.roundTrip(ctx, func(reply chan error) command {
		return voteCmd{voterID: voterID, voteType: voteType, answerID: answerID, reply: reply}
	})
}

// Snapshot returns a copy of the current session state
func (a *Actor) Snapshot(ctx context.Context) (*model.Session, error) {
	reply := make(chan *model.Session, 1)
	if err := a.send(ctx, snapshotCmd{reply: reply}); err != nil {
		return nil, err
	}
	select {
	case session := <-reply:
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *Actor) roundTrip(ctx context.Context, build func(chan error) command) error {
	reply := make(chan error, 1)
	if err := a.send(ctx, build(reply)); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
