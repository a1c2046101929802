package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kmuir/dirtyminds-go/internal/api/request"
	"github.com/kmuir/dirtyminds-go/internal/api/response"
	"github.com/kmuir/dirtyminds-go/internal/broadcast"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	registry *round.Registry
	baseURL  string
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *round.Registry, baseURL string) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func sessionCodeVar(r *http.Request) model.SessionCode {
	return model.SessionCode(strings.ToUpper(mux.Vars(r)["code"]))
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := h.registry.CreateSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateSessionResponse{
		Code:    string(session.Code),
		HostID:  string(session.HostID),
		Channel: broadcast.ChannelName(session.Code),
	})
}

// Get handles GET /api/v1/sessions/{code}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.registry.Snapshot(r.Context(), sessionCodeVar(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Join handles POST /api/v1/sessions/{code}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := sessionCodeVar(r)

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	actor, err := h.registry.Get(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := actor.Join(r.Context(), playerID, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		PlayerID: string(player.ID),
		Role:     string(player.Role),
		Channel:  broadcast.ChannelName(code),
	})
}

// Leave handles POST /api/v1/sessions/{code}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	code := sessionCodeVar(r)

	var req request.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	actor, err := h.registry.Get(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := actor.Leave(r.Context(), model.PlayerID(req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// QRCode handles GET /api/v1/sessions/{code}/qr
// It renders the join URL for the session as a PNG QR code.
func (h *SessionHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	code := sessionCodeVar(r)

	if _, err := h.registry.Snapshot(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", h.baseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, 256)
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
