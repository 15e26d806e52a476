package model

// BoardSize is the number of cells on the board
const BoardSize = 9

// Board is a 3x3 grid stored row-major: index = row*3 + col.
// Board is a value type; the engine returns modified copies.
type Board struct {
	Cells    [BoardSize]Mark `json:"cells"`
	Starting Mark            `json:"starting"` // Mark that moves first
}

// Lines lists every winning line in scan order: rows top-to-bottom,
// columns left-to-right, then the 0-4-8 and 2-4-6 diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Get returns the mark at index, or MarkNone if the index is out of range
func (b Board) Get(index int) Mark {
	if !IsValidIndex(index) {
		return MarkNone
	}
	return b.Cells[index]
}

// IsEmpty returns true if the cell at index is empty
func (b Board) IsEmpty(index int) bool {
	return IsValidIndex(index) && b.Cells[index] == MarkNone
}

// Count returns the number of cells holding mark
func (b Board) Count(mark Mark) int {
	n := 0
	for _, c := range b.Cells {
		if c == mark {
			n++
		}
	}
	return n
}

// MoveCount returns the number of occupied cells
func (b Board) MoveCount() int {
	return BoardSize - b.Count(MarkNone)
}

// IsFull returns true if every cell is occupied
func (b Board) IsFull() bool {
	return b.Count(MarkNone) == 0
}

// IsBlank returns true if no cell is occupied
func (b Board) IsBlank() bool {
	return b.Count(MarkNone) == BoardSize
}

// IsValidIndex returns true for indices 0-8
func IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// WinResult identifies the winning mark and the line it completed
type WinResult struct {
	Mark Mark   `json:"mark"`
	Line [3]int `json:"line"`
}

// GameStatus is the phase of a game, derived from its board
type GameStatus string

const (
	GameStatusEmpty      GameStatus = "empty"       // No moves yet, mark choice allowed
	GameStatusInProgress GameStatus = "in_progress" // 1-8 moves, no winner
	GameStatusWon        GameStatus = "won"         // Terminal
	GameStatusTied       GameStatus = "tied"        // Terminal, board full
)

// IsTerminal returns true for won and tied games
func (s GameStatus) IsTerminal() bool {
	return s == GameStatusWon || s == GameStatusTied
}
