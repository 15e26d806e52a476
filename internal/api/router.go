package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictacgo/internal/api/handler"
	"github.com/mcoot/tictacgo/internal/api/middleware"
	"github.com/mcoot/tictacgo/internal/api/sse"
	"github.com/mcoot/tictacgo/internal/dependencies/clock"
	"github.com/mcoot/tictacgo/internal/services/game"
	"github.com/mcoot/tictacgo/internal/services/session"
	"github.com/mcoot/tictacgo/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	Session        *session.Store
	Ledger         *stats.Ledger
	GameController *game.Controller
	Hub            *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Session, cfg.GameController, cfg.Hub, cfg.Clock)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	statsHandler := handler.NewStatsHandler(cfg.Ledger)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	// Create middleware
	identityMiddleware := middleware.RequireIdentity(cfg.Session)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session", sessionHandler.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/session", sessionHandler.SignOut).Methods(http.MethodDelete)
	api.HandleFunc("/session/mark", sessionHandler.SetMark).Methods(http.MethodPut)

	// Game routes (guests may play)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game", gameHandler.New).Methods(http.MethodPost)
	api.HandleFunc("/game/moves", gameHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/result", gameHandler.Result).Methods(http.MethodGet)

	// Stats routes (require a signed-in identity)
	statsRoutes := api.PathPrefix("/stats").Subrouter()
	statsRoutes.Use(identityMiddleware)
	statsRoutes.HandleFunc("", statsHandler.Get).Methods(http.MethodGet)
	statsRoutes.HandleFunc("", statsHandler.Reset).Methods(http.MethodDelete)

	// Event stream
	api.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
