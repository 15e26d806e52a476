package ids

import (
	"github.com/google/uuid"

	"github.com/mcoot/tictacgo/internal/model"
)

// Generator produces identifiers for new games
type Generator interface {
	NewGameID() model.GameID
}

// UUIDGenerator issues random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewGameID returns a fresh random game ID
func (g *UUIDGenerator) NewGameID() model.GameID {
	return model.GameID(uuid.NewString())
}
