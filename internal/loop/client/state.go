package client

import (
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/server"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active round
	GameStateOver                      // Round ended, show score and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// PlayerBlinkFrequency is how many times per second the ship blinks while
// protected after a hit.
const PlayerBlinkFrequency = 10.0

// ClientState holds per-session screen state. Round state lives in game.Round.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the inactivity warning is showing
	wasInactive   bool

	FinalScore int
	FinalWave  int
	Rank       int // Rank of the last round on the top-score board, 0 if none
	TopScores  []server.TopScoreEntry
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: -1, // Forces a full clear on the first frame
		Running:       true,
	}
}
