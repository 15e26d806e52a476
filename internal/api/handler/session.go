package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/tictacgo/internal/api/request"
	"github.com/mcoot/tictacgo/internal/api/response"
	"github.com/mcoot/tictacgo/internal/dependencies/clock"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/game"
	"github.com/mcoot/tictacgo/internal/services/session"
)

// SessionHandler handles sign-in, sign-out and mark selection
type SessionHandler struct {
	session        *session.Store
	gameController *game.Controller
	publisher      game.Publisher
	clock          clock.Clock
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sess *session.Store, gameController *game.Controller, publisher game.Publisher, clk clock.Clock) *SessionHandler {
	return &SessionHandler{
		session:        sess,
		gameController: gameController,
		publisher:      publisher,
		clock:          clk,
	}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SessionFromState(h.session.Snapshot(), nil))
}

// SignIn handles POST /api/v1/session
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.session.SignIn(r.Context(), req.Identity)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	h.publish(model.EventSignedIn, id)
	response.JSON(w, http.StatusOK, response.SessionFromState(h.session.Snapshot(), err))
}

// SignOut handles DELETE /api/v1/session
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	previous := h.session.Current()

	err := h.session.SignOut(r.Context())
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	if !previous.IsGuest() {
		h.publish(model.EventSignedOut, previous)
	}
	response.JSON(w, http.StatusOK, response.SessionFromState(h.session.Snapshot(), err))
}

// SetMark handles PUT /api/v1/session/mark
func (h *SessionHandler) SetMark(w http.ResponseWriter, r *http.Request) {
	var req request.SetMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	mark, err := model.ParseMark(req.Mark)
	if err != nil {
		WriteError(w, err)
		return
	}

	err = h.gameController.ChooseMark(r.Context(), mark)
	if isFatal(err) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromState(h.session.Snapshot(), err))
}

func (h *SessionHandler) publish(eventType model.EventType, id model.Identity) {
	h.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: h.clock.Now(),
		Identity:  id,
	})
}
