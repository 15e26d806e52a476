package model

import "strings"

// Mark is a player's symbol. It doubles as a cell value, where MarkNone is
// an empty cell.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

// DefaultMark is the preference used by guests and identities that never
// chose one
const DefaultMark = MarkX

// ParseMark parses "X" or "O", case-insensitively
func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(MarkX):
		return MarkX, nil
	case string(MarkO):
		return MarkO, nil
	default:
		return MarkNone, ErrInvalidMark
	}
}

// IsValid returns true for X and O
func (m Mark) IsValid() bool {
	return m == MarkX || m == MarkO
}

// Opponent returns the other mark. MarkNone has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

func (m Mark) String() string {
	if m == MarkNone {
		return "-"
	}
	return string(m)
}
