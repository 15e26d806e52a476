package response

import (
	"time"

	"github.com/mcoot/tictacgo/internal/api/apierr"
	"github.com/mcoot/tictacgo/internal/model"
	"github.com/mcoot/tictacgo/internal/services/board"
	"github.com/mcoot/tictacgo/internal/services/game"
	"github.com/mcoot/tictacgo/internal/services/session"
)

// Session represents the signed-in user in API responses
type Session struct {
	Identity   string     `json:"identity"`
	Guest      bool       `json:"guest"`
	Mark       string     `json:"mark"`
	SignedInAt *time.Time `json:"signed_in_at,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

// SessionFromState converts a session.State
func SessionFromState(s session.State, warn error) Session {
	out := Session{
		Identity: string(s.Identity),
		Guest:    s.IsGuest(),
		Mark:     string(s.Mark),
		Warnings: model.Warnings(warn),
	}
	if !s.SignedInAt.IsZero() {
		t := s.SignedInAt
		out.SignedInAt = &t
	}
	return out
}

// Winner is the winning mark and line
type Winner struct {
	Mark string `json:"mark"`
	Line [3]int `json:"line"`
}

func winnerFromModel(w *model.WinResult) *Winner {
	if w == nil {
		return nil
	}
	return &Winner{Mark: string(w.Mark), Line: w.Line}
}

// Result is a finished game from the player's point of view
type Result struct {
	GameID     string  `json:"game_id"`
	Winner     *Winner `json:"winner,omitempty"`
	Tie        bool    `json:"tie"`
	Outcome    string  `json:"outcome"`
	PlayerMark string  `json:"player_mark"`
	Identity   string  `json:"identity,omitempty"`
	Recorded   bool    `json:"recorded"`
}

// ResultFromModel converts a model.GameResult
func ResultFromModel(r *model.GameResult) *Result {
	if r == nil {
		return nil
	}
	return &Result{
		GameID:     string(r.GameID),
		Winner:     winnerFromModel(r.Winner),
		Tie:        r.Tie,
		Outcome:    string(r.Outcome),
		PlayerMark: string(r.PlayerMark),
		Identity:   string(r.Identity),
		Recorded:   r.Recorded,
	}
}

// ResultResponse wraps a result with any storage warnings
type ResultResponse struct {
	Result
	Warnings []string `json:"warnings,omitempty"`
}

// Game represents the current game. Empty cells are "".
type Game struct {
	ID            string     `json:"id"`
	Cells         [9]string  `json:"cells"`
	Starting      string     `json:"starting"`
	Status        string     `json:"status"`
	Turn          string     `json:"turn,omitempty"` // Empty once the game is over
	CanChooseMark bool       `json:"can_choose_mark"`
	Winner        *Winner    `json:"winner,omitempty"`
	Result        *Result    `json:"result,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// GameFromModel converts a model.Game, deriving status and turn from its
// board
func GameFromModel(g *model.Game) Game {
	status := board.Status(g.Board)
	out := Game{
		ID:            string(g.ID),
		Starting:      string(g.Board.Starting),
		Status:        string(status),
		CanChooseMark: board.CanChooseStartingMark(g.Board),
		Winner:        winnerFromModel(board.DetectWinner(g.Board)),
		Result:        ResultFromModel(g.Result),
		StartedAt:     g.StartedAt,
	}
	for i, cell := range g.Board.Cells {
		out.Cells[i] = string(cell)
	}
	if !status.IsTerminal() {
		out.Turn = string(board.CurrentTurn(g.Board, g.Board.Starting))
	}
	if !g.FinishedAt.IsZero() {
		t := g.FinishedAt
		out.FinishedAt = &t
	}
	return out
}

// GameResponse wraps a game view with any storage warnings
type GameResponse struct {
	Game     Game     `json:"game"`
	Warnings []string `json:"warnings,omitempty"`
}

// Move is the response for playing a cell
type Move struct {
	Applied  bool     `json:"applied"`
	Index    int      `json:"index"`
	Mark     string   `json:"mark"`
	Rejected string   `json:"rejected,omitempty"` // Error code when not applied
	Game     Game     `json:"game"`
	Result   *Result  `json:"result,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// MoveFromResult converts a game.MoveResult
func MoveFromResult(res *game.MoveResult, warn error) Move {
	out := Move{
		Applied:  res.Applied,
		Index:    res.Index,
		Mark:     string(res.Mark),
		Game:     GameFromModel(res.Game),
		Result:   ResultFromModel(res.Result),
		Warnings: model.Warnings(warn),
	}
	if res.Rejected != nil {
		out.Rejected = apierr.Code(res.Rejected)
	}
	return out
}

// StatRecord is one mark's counters
type StatRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
	Played int `json:"played"`
}

func statRecordFromModel(r model.StatRecord) StatRecord {
	return StatRecord{Wins: r.Wins, Losses: r.Losses, Ties: r.Ties, Played: r.Played()}
}

// Stats is an identity's ledger entry
type Stats struct {
	Identity string     `json:"identity"`
	X        StatRecord `json:"X"`
	O        StatRecord `json:"O"`
	Total    StatRecord `json:"total"`
	Warnings []string   `json:"warnings,omitempty"`
}

// StatsFromEntry converts a model.LedgerEntry
func StatsFromEntry(id model.Identity, entry model.LedgerEntry, warn error) Stats {
	return Stats{
		Identity: string(id),
		X:        statRecordFromModel(entry.X),
		O:        statRecordFromModel(entry.O),
		Total:    statRecordFromModel(entry.Total()),
		Warnings: model.Warnings(warn),
	}
}
