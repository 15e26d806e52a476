package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Game events
	EventGameStarted  EventType = "game_started"
	EventMoveApplied  EventType = "move_applied"
	EventGameFinished EventType = "game_finished"

	// Session events
	EventMarkChanged EventType = "mark_changed"
	EventSignedIn    EventType = "signed_in"
	EventSignedOut   EventType = "signed_out"
)

// Event is published to display collaborators when the core changes state
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id,omitempty"` // Empty for session events
	Identity  Identity  `json:"identity,omitempty"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Starting Mark `json:"starting"`
}

// MoveAppliedPayload contains data for move applied events
type MoveAppliedPayload struct {
	Index    int  `json:"index"`
	Mark     Mark `json:"mark"`
	NextTurn Mark `json:"next_turn,omitempty"` // Empty once the game is over
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	Winner  *WinResult `json:"winner,omitempty"`
	Tie     bool       `json:"tie"`
	Outcome Outcome    `json:"outcome"`
}

// MarkChangedPayload contains data for mark changed events
type MarkChangedPayload struct {
	Mark Mark `json:"mark"`
}
