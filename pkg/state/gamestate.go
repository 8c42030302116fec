package state

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/escape-room/pkg/scene"
)

// Pace is the player's preferred pacing. It is stored but does not yet
// change how scenes are sequenced.
type Pace string

const (
	PaceStandard Pace = "standard"
	PaceFast     Pace = "fast"
)

// ParsePace accepts "standard" or "fast" in any case.
func ParsePace(s string) (Pace, bool) {
	switch Pace(lower(s)) {
	case PaceStandard:
		return PaceStandard, true
	case PaceFast:
		return PaceFast, true
	default:
		return "", false
	}
}

// Tone is the content rating of a session.
type Tone string

// TonePG13 is the only tone the game ships with.
const TonePG13 Tone = "pg13"

// GameState is the mutable state of a single escape room playthrough.
type GameState struct {
	ID           uuid.UUID     `json:"id"`            // Regenerated every time the session is reset
	RoomsCleared int           `json:"rooms_cleared"` // Number of rooms completed so far
	RoomSequence []scene.Scene `json:"room_sequence"` // Shuffled rooms, fixed for the session
	Pace         Pace          `json:"pace"`
	Tone         Tone          `json:"tone"`
	StartedAt    time.Time     `json:"started_at"`
}

// NewGameState returns a fresh session for the given room order.
func NewGameState(rooms []scene.Scene) *GameState {
	return &GameState{
		ID:           uuid.New(),
		RoomsCleared: 0,
		RoomSequence: rooms,
		Pace:         PaceStandard,
		Tone:         TonePG13,
		StartedAt:    time.Now(),
	}
}

// Reset starts a new playthrough in place with the given room order.
// Pace is a player preference and survives the reset.
func (gs *GameState) Reset(rooms []scene.Scene) {
	gs.ID = uuid.New()
	gs.RoomsCleared = 0
	gs.RoomSequence = rooms
	gs.StartedAt = time.Now()
	if gs.Pace == "" {
		gs.Pace = PaceStandard
	}
	gs.Tone = TonePG13
}

// Room returns the room at index n, or false if n is outside the sequence.
func (gs *GameState) Room(n int) (scene.Scene, bool) {
	if n < 0 || n >= len(gs.RoomSequence) {
		return scene.Scene{}, false
	}
	return gs.RoomSequence[n], true
}
