package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kmuir/dirtyminds-go/internal/api/handler"
	"github.com/kmuir/dirtyminds-go/internal/api/middleware"
	"github.com/kmuir/dirtyminds-go/internal/services/round"
	"github.com/kmuir/dirtyminds-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *round.Registry
	HubManager *sse.HubManager
	BaseURL    string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Registry, cfg.BaseURL)
	gameHandler := handler.NewGameHandler(cfg.Registry)
	eventsHandler := handler.NewEventsHandler(cfg.Registry, cfg.HubManager, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{code}/qr", sessionHandler.QRCode).Methods(http.MethodGet)
	sessions.HandleFunc("/{code}/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}/leave", sessionHandler.Leave).Methods(http.MethodPost)

	// Gameplay routes
	sessions.HandleFunc("/{code}/start", gameHandler.Start).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}/skip", gameHandler.Skip).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}/answers", gameHandler.Answer).Methods(http.MethodPost)
	sessions.HandleFunc("/{code}/votes", gameHandler.Vote).Methods(http.MethodPost)

	// Event stream
	sessions.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
