package transport

import (
	"net/http"

	"boardcamp/internal/middleware"
	"boardcamp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GameHandler handles HTTP requests for games
type GameHandler struct {
	gameService service.GameService
	logger      *zap.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService service.GameService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// RegisterRoutes registers all game routes
func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.ListGames)
		r.Post("/", h.CreateGame)
	})
}

// ListGames handles listing games. The name parameter filters by a
// case-insensitive prefix.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.List(r.Context(), r.URL.Query())
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, games)
}

// CreateGame handles game creation
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	record, err := middleware.DecodeRecord(w, r)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	game, err := h.gameService.Create(r.Context(), record)
	if err != nil {
		middleware.RespondWithAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Game created",
		zap.Int64("game_id", game.ID),
		zap.Int64("category_id", game.CategoryID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, game)
}
