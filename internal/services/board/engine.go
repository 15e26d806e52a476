// Package board implements the rules of tic-tac-toe as pure functions over
// model.Board values. Nothing here touches storage or session state.
package board

import (
	"github.com/mcoot/tictacgo/internal/model"
)

// NewGame returns an empty board on which starting moves first
func NewGame(starting model.Mark) model.Board {
	if !starting.IsValid() {
		starting = model.DefaultMark
	}
	return model.Board{Starting: starting}
}

// CurrentTurn derives whose turn it is from the mark counts: equal counts
// mean starting moves, otherwise its opponent does.
func CurrentTurn(b model.Board, starting model.Mark) model.Mark {
	if !starting.IsValid() {
		starting = model.DefaultMark
	}
	if b.Count(model.MarkX) == b.Count(model.MarkO) {
		return starting
	}
	return starting.Opponent()
}

// ApplyMove returns a copy of b with mark placed at index. An illegal move
// returns b unchanged with an error wrapping model.ErrIllegalMove.
// The caller supplies mark, normally from CurrentTurn.
func ApplyMove(b model.Board, index int, mark model.Mark) (model.Board, error) {
	if !mark.IsValid() {
		return b, model.ErrInvalidMark
	}
	if !model.IsValidIndex(index) {
		return b, model.ErrInvalidPosition
	}
	if DetectWinner(b) != nil || b.IsFull() {
		return b, model.ErrGameComplete
	}
	if !b.IsEmpty(index) {
		return b, model.ErrCellOccupied
	}

	next := b
	next.Cells[index] = mark
	return next, nil
}

// DetectWinner returns the first line in model.Lines held entirely by one
// mark, or nil if there is none
func DetectWinner(b model.Board) *model.WinResult {
	for _, line := range model.Lines {
		v := b.Cells[line[0]]
		if v != model.MarkNone && v == b.Cells[line[1]] && v == b.Cells[line[2]] {
			return &model.WinResult{Mark: v, Line: line}
		}
	}
	return nil
}

// IsTie returns true if every cell is occupied and there is no winner
func IsTie(b model.Board, winner *model.WinResult) bool {
	return winner == nil && b.IsFull()
}

// CanChooseStartingMark returns true while no move has been made
func CanChooseStartingMark(b model.Board) bool {
	return b.IsBlank()
}

// Status derives the game phase from the board
func Status(b model.Board) model.GameStatus {
	winner := DetectWinner(b)
	switch {
	case winner != nil:
		return model.GameStatusWon
	case IsTie(b, winner):
		return model.GameStatusTied
	case b.IsBlank():
		return model.GameStatusEmpty
	default:
		return model.GameStatusInProgress
	}
}

// Outcome derives the player's outcome for a terminal board. It returns
// false while the game is still being played.
func Outcome(winner *model.WinResult, tie bool, player model.Mark) (model.Outcome, bool) {
	switch {
	case winner != nil && winner.Mark == player:
		return model.OutcomeWin, true
	case winner != nil:
		return model.OutcomeLoss, true
	case tie:
		return model.OutcomeTie, true
	default:
		return "", false
	}
}
