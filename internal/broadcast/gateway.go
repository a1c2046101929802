package broadcast

import "github.com/kmuir/dirtyminds-go/internal/model"

// ChannelName returns the wire channel name for a session. Clients
// subscribe to this channel to receive session events.
func ChannelName(code model.SessionCode) string {
	return "presence-game-" + string(code)
}

// Gateway delivers events to subscribed clients. Delivery is best
// effort; a slow or absent subscriber never blocks the caller.
type Gateway interface {
	// Publish sends an event to every subscriber of the session channel
	Publish(code model.SessionCode, event model.OutboundEvent)

	// PublishTo sends an event to a single subscriber of the channel
	PublishTo(code model.SessionCode, playerID model.PlayerID, event model.OutboundEvent)
}
