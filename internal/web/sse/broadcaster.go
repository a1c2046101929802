package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/kmuir/dirtyminds-go/internal/broadcast"
	"github.com/kmuir/dirtyminds-go/internal/model"
)

// Broadcaster delivers game events to SSE clients. It is the SSE
// implementation of the broadcast gateway.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

var _ broadcast.Gateway = (*Broadcaster)(nil)

// Publish sends an event to every client subscribed to the session
func (b *Broadcaster) Publish(code model.SessionCode, event model.OutboundEvent) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		// Nobody listening yet; events are fire-and-forget
		return
	}

	data, ok := b.encode(code, event)
	if !ok {
		return
	}
	hub.BroadcastEvent(string(event.Type), data)
}

// PublishTo sends an event to a single player's connections
func (b *Broadcaster) PublishTo(code model.SessionCode, playerID model.PlayerID, event model.OutboundEvent) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}

	data, ok := b.encode(code, event)
	if !ok {
		return
	}
	hub.SendEventTo(playerID, string(event.Type), data)
}

func (b *Broadcaster) encode(code model.SessionCode, event model.OutboundEvent) (string, bool) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		b.logger.Error("sse failed to encode event payload",
			slog.String("session", string(code)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return "", false
	}
	return string(data), true
}
