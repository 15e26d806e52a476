package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictacgo/internal/api/request"
	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/game"
)

// GameHandler handles the current game
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g := h.gameController.Game()
	response.JSON(w, http.StatusOK, response.GameResponse{Game: response.GameFromModel(g)})
}

// New handles POST /api/v1/game
func (h *GameHandler) New(w http.ResponseWriter, r *http.Request) {
	g := h.gameController.NewGame(r.Context())
	response.JSON(w, http.StatusCreated, response.GameResponse{Game: response.GameFromModel(g)})
}

// Move handles POST /api/v1/game/moves. Illegal moves are not errors: the
// response reports applied=false with the reason.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Index == nil {
		WriteError(w, NewInvalidRequestError("index is required"))
		return
	}

	res, err := h.gameController.Move(r.Context(), *req.Index)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoveFromResult(res, err))
}

// Result handles GET /api/v1/games/{id}/result
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	result, err := h.gameController.Finish(r.Context(), gameID)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultResponse{
		Result:   *response.ResultFromModel(result),
		Warnings: model.Warnings(err),
	})
}
