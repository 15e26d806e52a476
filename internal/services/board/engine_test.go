package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictacgo/internal/model"
)

type EngineSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// Helper to create a board from three row strings, '.' for empty
func (s *EngineSuite) createBoard(rows ...string) model.Board {
	b := NewGame(model.MarkX)
	for row, cells := range rows {
		for col, c := range cells {
			switch c {
			case 'X':
				b.Cells[row*3+col] = model.MarkX
			case 'O':
				b.Cells[row*3+col] = model.MarkO
			}
		}
	}
	return b
}

// play applies indices alternately starting with starting, requiring each
// move to succeed
func (s *EngineSuite) play(starting model.Mark, indices ...int) model.Board {
	b := NewGame(starting)
	for _, idx := range indices {
		var err error
		b, err = ApplyMove(b, idx, CurrentTurn(b, starting))
		s.Require().NoError(err, "move %d", idx)
	}
	return b
}

// NewGame tests

func (s *EngineSuite) TestNewGameIsEmpty() {
	b := NewGame(model.MarkO)

	s.Equal(model.MarkO, b.Starting)
	s.Equal(0, b.MoveCount())
	s.True(CanChooseStartingMark(b))
	s.Equal(model.GameStatusEmpty, Status(b))
}

func (s *EngineSuite) TestNewGameDefaultsInvalidStartingMark() {
	b := NewGame(model.MarkNone)
	s.Equal(model.MarkX, b.Starting)
}

// CurrentTurn tests

func (s *EngineSuite) TestCurrentTurnStartsWithStartingMark() {
	s.Equal(model.MarkX, CurrentTurn(NewGame(model.MarkX), model.MarkX))
	s.Equal(model.MarkO, CurrentTurn(NewGame(model.MarkO), model.MarkO))
}

func (s *EngineSuite) TestCurrentTurnAlternates() {
	b := NewGame(model.MarkX)
	expected := model.MarkX
	for _, idx := range []int{4, 0, 8, 2, 6, 3, 5, 7} {
		s.Require().Equal(expected, CurrentTurn(b, model.MarkX))
		var err error
		b, err = ApplyMove(b, idx, expected)
		s.Require().NoError(err)
		expected = expected.Opponent()
	}
}

func (s *EngineSuite) TestCurrentTurnWithOStarting() {
	b := s.play(model.MarkO, 4)
	s.Equal(model.MarkX, CurrentTurn(b, model.MarkO))

	b = s.play(model.MarkO, 4, 0)
	s.Equal(model.MarkO, CurrentTurn(b, model.MarkO))
}

// ApplyMove tests

func (s *EngineSuite) TestApplyMoveSetsCell() {
	b := NewGame(model.MarkX)

	next, err := ApplyMove(b, 4, model.MarkX)
	s.Require().NoError(err)

	s.Equal(model.MarkX, next.Get(4))
	s.Equal(1, next.MoveCount())
}

func (s *EngineSuite) TestApplyMoveDoesNotMutateInput() {
	b := NewGame(model.MarkX)

	_, err := ApplyMove(b, 4, model.MarkX)
	s.Require().NoError(err)

	s.Equal(model.MarkNone, b.Get(4))
}

func (s *EngineSuite) TestApplyMoveOccupiedCellIsNoOp() {
	b := s.play(model.MarkX, 4)

	next, err := ApplyMove(b, 4, model.MarkO)
	s.ErrorIs(err, model.ErrCellOccupied)
	s.ErrorIs(err, model.ErrIllegalMove)
	s.Equal(b, next)
}

func (s *EngineSuite) TestApplyMoveOutOfRangeIsNoOp() {
	b := NewGame(model.MarkX)

	for _, idx := range []int{-1, 9, 100} {
		next, err := ApplyMove(b, idx, model.MarkX)
		s.ErrorIs(err, model.ErrInvalidPosition)
		s.Equal(b, next)
	}
}

func (s *EngineSuite) TestApplyMoveAfterWinIsNoOp() {
	b := s.play(model.MarkX, 0, 4, 1, 5, 2)

	next, err := ApplyMove(b, 8, model.MarkO)
	s.ErrorIs(err, model.ErrGameComplete)
	s.Equal(b, next)
}

func (s *EngineSuite) TestApplyMoveRejectsInvalidMark() {
	b := NewGame(model.MarkX)

	next, err := ApplyMove(b, 0, model.MarkNone)
	s.ErrorIs(err, model.ErrInvalidMark)
	s.Equal(b, next)
}

// DetectWinner tests

func (s *EngineSuite) TestTopRowWin() {
	b := s.play(model.MarkX, 0, 4, 1, 5, 2)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal(model.MarkX, winner.Mark)
	s.Equal([3]int{0, 1, 2}, winner.Line)
	s.False(IsTie(b, winner))
	s.Equal(model.GameStatusWon, Status(b))
}

func (s *EngineSuite) TestNoWinnerOnEmptyBoard() {
	s.Nil(DetectWinner(NewGame(model.MarkX)))
}

func (s *EngineSuite) TestEveryLineIsDetected() {
	for _, line := range model.Lines {
		b := NewGame(model.MarkO)
		for _, idx := range line {
			b.Cells[idx] = model.MarkO
		}

		winner := DetectWinner(b)
		s.Require().NotNil(winner, "line %v", line)
		s.Equal(model.MarkO, winner.Mark)
		s.Equal(line, winner.Line)
	}
}

func (s *EngineSuite) TestRowsAreScannedBeforeLaterRows() {
	b := s.createBoard(
		"XXX",
		"...",
		"OOO",
	)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal(model.MarkX, winner.Mark)
	s.Equal([3]int{0, 1, 2}, winner.Line)
}

func (s *EngineSuite) TestColumnsAreScannedLeftToRight() {
	b := s.createBoard(
		"X.O",
		"X.O",
		"X.O",
	)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal([3]int{0, 3, 6}, winner.Line)
}

func (s *EngineSuite) TestColumnsAreScannedBeforeDiagonals() {
	b := s.createBoard(
		"XX.",
		".X.",
		".XX",
	)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal([3]int{1, 4, 7}, winner.Line)
}

func (s *EngineSuite) TestAntiDiagonal() {
	b := s.createBoard(
		"X.O",
		"XO.",
		"O.X",
	)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal(model.MarkO, winner.Mark)
	s.Equal([3]int{2, 4, 6}, winner.Line)
}

// IsTie tests

func (s *EngineSuite) TestFullBoardWithoutLineIsTie() {
	b := s.play(model.MarkX, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	winner := DetectWinner(b)
	s.Nil(winner)
	s.True(IsTie(b, winner))
	s.Equal(model.GameStatusTied, Status(b))
}

func (s *EngineSuite) TestLastMoveCompletingDiagonalIsWinNotTie() {
	// X takes 0, 2, 4, 7 and finishes on 8, completing the 0-4-8 diagonal
	b := s.play(model.MarkX, 0, 1, 2, 3, 4, 5, 7, 6, 8)

	winner := DetectWinner(b)
	s.Require().NotNil(winner)
	s.Equal(model.MarkX, winner.Mark)
	s.Equal([3]int{0, 4, 8}, winner.Line)
	s.False(IsTie(b, winner))
}

func (s *EngineSuite) TestPartialBoardIsNotTie() {
	b := s.play(model.MarkX, 0, 1, 2)
	s.False(IsTie(b, DetectWinner(b)))
	s.Equal(model.GameStatusInProgress, Status(b))
}

// CanChooseStartingMark tests

func (s *EngineSuite) TestCannotChooseStartingMarkAfterFirstMove() {
	b := s.play(model.MarkX, 4)
	s.False(CanChooseStartingMark(b))
}

// Outcome tests

func (s *EngineSuite) TestOutcome() {
	xWins := &model.WinResult{Mark: model.MarkX, Line: [3]int{0, 1, 2}}

	tests := []struct {
		name     string
		winner   *model.WinResult
		tie      bool
		player   model.Mark
		expected model.Outcome
		ok       bool
	}{
		{"player wins", xWins, false, model.MarkX, model.OutcomeWin, true},
		{"player loses", xWins, false, model.MarkO, model.OutcomeLoss, true},
		{"tie as X", nil, true, model.MarkX, model.OutcomeTie, true},
		{"tie as O", nil, true, model.MarkO, model.OutcomeTie, true},
		{"not finished", nil, false, model.MarkX, "", false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			outcome, ok := Outcome(tt.winner, tt.tie, tt.player)
			s.Equal(tt.ok, ok)
			s.Equal(tt.expected, outcome)
		})
	}
}

// Exhaustive checks over every board reachable by legal alternating play

func hasUniformLine(b model.Board) bool {
	for _, line := range model.Lines {
		v := b.Cells[line[0]]
		if v != model.MarkNone && v == b.Cells[line[1]] && v == b.Cells[line[2]] {
			return true
		}
	}
	return false
}

func TestReachableBoards(t *testing.T) {
	for _, starting := range []model.Mark{model.MarkX, model.MarkO} {
		seen := map[model.Board]bool{}
		var walk func(b model.Board)
		walk = func(b model.Board) {
			if seen[b] {
				return
			}
			seen[b] = true

			winner := DetectWinner(b)
			require.Equal(t, hasUniformLine(b), winner != nil, "board %v", b.Cells)
			assert.Equal(t, b.IsFull() && winner == nil, IsTie(b, winner), "board %v", b.Cells)

			diff := b.Count(starting) - b.Count(starting.Opponent())
			require.True(t, diff == 0 || diff == 1, "board %v", b.Cells)

			turn := CurrentTurn(b, starting)
			for idx := 0; idx < model.BoardSize; idx++ {
				next, err := ApplyMove(b, idx, turn)
				if err != nil {
					require.ErrorIs(t, err, model.ErrIllegalMove)
					require.Equal(t, b, next)
					continue
				}
				require.Equal(t, turn.Opponent(), CurrentTurn(next, starting))
				walk(next)
			}
		}
		walk(NewGame(starting))

		// 5478 distinct positions are reachable in tic-tac-toe
		assert.Len(t, seen, 5478)
	}
}
