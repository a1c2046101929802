package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
	"github.com/kmuir/dirtyminds-go/internal/web/sse"
)

// EventsHandler serves the SSE event stream for a session
type EventsHandler struct {
	registry   *round.Registry
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(registry *round.Registry, hubManager *sse.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		registry:   registry,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Stream handles GET /api/v1/sessions/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	code := sessionCodeVar(r)
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	if playerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := actor.Snapshot(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	// The host id is valid even though the host never appears in the
	// roster.
	isHost := playerID == session.HostID
	if !isHost && session.GetPlayer(playerID) == nil {
		WriteError(w, model.ErrNotInSession)
		return
	}

	hub := h.hubManager.GetOrCreateHub(code)
	disconnected := sse.ServeSSE(w, r, hub, playerID)

	// A dropped stream counts as leaving the session. The request
	// context is already cancelled at this point, so detach.
	if disconnected && !isHost {
		if err := actor.Leave(context.Background(), playerID); err != nil {
			h.logger.Debug("leave after disconnect failed",
				slog.String("session_code", string(code)),
				slog.String("player_id", string(playerID)),
				slog.String("error", err.Error()))
		}
	}
}
