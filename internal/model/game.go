package model

import "time"

// GameID uniquely identifies one game instance
type GameID string

// Game is a single round of play. Its status and turn are derived from Board.
type Game struct {
	ID         GameID
	Board      Board
	StartedAt  time.Time
	FinishedAt time.Time // Zero until a terminal state is observed

	// Result is set the first time the terminal state is observed.
	// A non-nil Result means stats have been handled for this game.
	Result *GameResult
}

// IsFinished returns true once the terminal state has been observed
func (g *Game) IsFinished() bool {
	return g.Result != nil
}

// Clone returns a copy that shares no mutable state with g
func (g *Game) Clone() *Game {
	c := *g
	if g.Result != nil {
		r := *g.Result
		if g.Result.Winner != nil {
			w := *g.Result.Winner
			r.Winner = &w
		}
		c.Result = &r
	}
	return &c
}

// GameResult is the terminal state of a game as handed to the display layer
type GameResult struct {
	GameID     GameID
	Winner     *WinResult // nil on a tie
	Tie        bool
	PlayerMark Mark     // The player's mark preference when the game ended
	Identity   Identity // Empty for guest games
	Outcome    Outcome  // From the player's point of view
	Recorded   bool     // True if the outcome was written to the ledger
}
