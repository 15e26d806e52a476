// Package game runs the current tic-tac-toe game: it derives turns, applies
// moves through the board engine and hands each finished game to the stats
// ledger exactly once.
package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/tictacgo/internal/dependencies/clock"
	"github.com/mcoot/tictacgo/internal/dependencies/ids"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/board"
	"github.com/mcoot/tictacgo/internal/services/session"
	"github.com/mcoot/tictacgo/internal/services/stats"
)

// rememberedResults bounds how many finished games Finish can still answer for
const rememberedResults = 32

// MoveResult describes what a call to Move did
type MoveResult struct {
	Applied  bool
	Index    int
	Mark     model.Mark // The mark placed, or the mark whose turn it was
	Rejected error      // Why the move was ignored; nil when applied
	Game     *model.Game
	Result   *model.GameResult // Non-nil once the game is over
}

// Controller owns the single active game
type Controller struct {
	session   *session.Store
	ledger    *stats.Ledger
	ids       ids.Generator
	clock     clock.Clock
	publisher Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	game    *model.Game
	results map[model.GameID]*model.GameResult
	order   []model.GameID
}

// NewController creates a new game Controller. A nil publisher discards
// events.
func NewController(
	sess *session.Store,
	ledger *stats.Ledger,
	idGen ids.Generator,
	clk clock.Clock,
	publisher Publisher,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		session:   sess,
		ledger:    ledger,
		ids:       idGen,
		clock:     clk,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "game-controller")),
		results:   make(map[model.GameID]*model.GameResult),
	}
}

// NewGame replaces the current game with an empty board. The player's
// preferred mark moves first.
func (c *Controller) NewGame(ctx context.Context) *model.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked().Clone()
}

// Game returns a copy of the current game, starting one if needed
func (c *Controller) Game() *model.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked().Clone()
}

// Move places the mark whose turn it is at index. Illegal moves leave the
// game untouched and are reported through MoveResult.Rejected rather than
// as an error. The returned error is only ever a storage warning from
// recording a finished game.
func (c *Controller) Move(ctx context.Context, index int) (*MoveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.currentLocked()
	turn := board.CurrentTurn(g.Board, g.Board.Starting)

	next, err := board.ApplyMove(g.Board, index, turn)
	if err != nil {
		c.logger.Debug("move ignored",
			slog.String("game_id", string(g.ID)),
			slog.Int("index", index),
			slog.String("reason", err.Error()),
		)
		res := &MoveResult{Index: index, Mark: turn, Rejected: err, Game: g.Clone()}
		if g.Result != nil {
			res.Result = copyResult(g.Result)
		}
		return res, nil
	}

	g.Board = next
	status := board.Status(next)

	payload := model.MoveAppliedPayload{Index: index, Mark: turn}
	if !status.IsTerminal() {
		payload.NextTurn = board.CurrentTurn(next, next.Starting)
	}
	c.publish(model.EventMoveApplied, g.ID, payload)

	res := &MoveResult{Applied: true, Index: index, Mark: turn}

	var warn error
	if status.IsTerminal() {
		res.Result, warn = c.finishLocked(ctx, g)
	}
	res.Game = g.Clone()
	return res, warn
}

// ChooseMark changes the player's mark. It is only allowed before the first
// move of the current game, and also makes the new mark move first.
func (c *Controller) ChooseMark(ctx context.Context, mark model.Mark) error {
	if !mark.IsValid() {
		return model.ErrInvalidMark
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	g := c.currentLocked()
	if !board.CanChooseStartingMark(g.Board) {
		return model.ErrMarkLocked
	}

	err := c.session.SetMarkPreference(ctx, mark)
	if err != nil && !model.IsWarning(err) {
		return err
	}

	g.Board.Starting = mark
	c.publish(model.EventMarkChanged, g.ID, model.MarkChangedPayload{Mark: mark})
	return err
}

// Finish returns the result of a finished game, recording it on first
// observation. Later calls for the same game return the same result without
// recording again.
func (c *Controller) Finish(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if result, ok := c.results[gameID]; ok {
		return copyResult(result), nil
	}

	if c.game == nil || c.game.ID != gameID {
		return nil, model.ErrGameNotFound
	}
	if !board.Status(c.game.Board).IsTerminal() {
		return nil, model.ErrGameNotFinished
	}
	return c.finishLocked(ctx, c.game)
}

// currentLocked returns the active game. Until the first move the starting
// mark follows the session's preference, which may change on sign-in.
func (c *Controller) currentLocked() *model.Game {
	if c.game == nil {
		return c.startLocked()
	}
	if c.game.Board.IsBlank() {
		c.game.Board.Starting = c.session.MarkPreference()
	}
	return c.game
}

func (c *Controller) startLocked() *model.Game {
	starting := c.session.MarkPreference()
	c.game = &model.Game{
		ID:        c.ids.NewGameID(),
		Board:     board.NewGame(starting),
		StartedAt: c.clock.Now(),
	}

	c.logger.Debug("game started",
		slog.String("game_id", string(c.game.ID)),
		slog.String("starting", string(starting)),
	)
	c.publish(model.EventGameStarted, c.game.ID, model.GameStartedPayload{Starting: starting})
	return c.game
}

// finishLocked observes the terminal state of g once
func (c *Controller) finishLocked(ctx context.Context, g *model.Game) (*model.GameResult, error) {
	if g.Result != nil {
		return copyResult(g.Result), nil
	}

	winner := board.DetectWinner(g.Board)
	tie := board.IsTie(g.Board, winner)
	playerMark := c.session.MarkPreference()
	identity := c.session.Current()

	outcome, ok := board.Outcome(winner, tie, playerMark)
	if !ok {
		return nil, model.ErrGameNotFinished
	}

	result := &model.GameResult{
		GameID:     g.ID,
		Winner:     winner,
		Tie:        tie,
		PlayerMark: playerMark,
		Identity:   identity,
		Outcome:    outcome,
	}

	var warn error
	if !identity.IsGuest() {
		_, warn = c.ledger.Record(ctx, identity, playerMark, outcome)
		result.Recorded = true
	}

	g.Result = result
	g.FinishedAt = c.clock.Now()
	c.remember(result)

	c.logger.Info("game finished",
		slog.String("game_id", string(g.ID)),
		slog.String("identity", string(identity)),
		slog.String("outcome", string(outcome)),
		slog.Bool("recorded", result.Recorded),
	)
	c.publish(model.EventGameFinished, g.ID, model.GameFinishedPayload{
		Winner:  winner,
		Tie:     tie,
		Outcome: outcome,
	})

	return copyResult(result), warn
}

func (c *Controller) remember(result *model.GameResult) {
	c.results[result.GameID] = result
	c.order = append(c.order, result.GameID)
	if len(c.order) > rememberedResults {
		delete(c.results, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *Controller) publish(eventType model.EventType, gameID model.GameID, payload any) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    gameID,
		Identity:  c.session.Current(),
		Payload:   payload,
	})
}

func copyResult(r *model.GameResult) *model.GameResult {
	c := *r
	if r.Winner != nil {
		w := *r.Winner
		c.Winner = &w
	}
	return &c
}
