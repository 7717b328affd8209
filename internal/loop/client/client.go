// Package client runs one terminal session: it reads keys, drives a round
// and renders it with half-block characters.
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	round        *game.Round
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates one frame of output
	writer       io.Writer
	readInput    func() input.Input
	resetInput   func()
	stopInput    func()
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	now          func() time.Time
	sprites      []game.Sprite // Reused snapshot buffer
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Seed         int64 // Seeds the round's random source; 0 seeds from the clock
	Logger       *log.Logger
}

// NewClient registers a session with gs and prepares its round.
func NewClient(gs server.GameServer, r io.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("user", handle.Username)

	roundOpts := []game.Option{game.WithLogger(logger)}
	if opts.Seed != 0 {
		roundOpts = append(roundOpts, game.WithSeed(opts.Seed))
	}
	round, err := game.New(gs.Config(), roundOpts...)
	if err != nil {
		gs.UnregisterClient(handle.ID)
		return nil, fmt.Errorf("new round: %w", err)
	}
	field := round.Config().Window

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	stream := input.StartStream(r)
	c := &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		round:        round,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		readInput:    func() input.Input { return input.ReadInput(stream) },
		resetInput:   func() { input.ResetKeyInput(stream) },
		stopInput:    stream.Close,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		now:          time.Now,
	}
	c.lastInput = c.now()
	c.state.TopScores = gs.TopScores()
	return c, nil
}

// Run starts the client loop. Blocks until the client quits, the connection
// ends, ctx is cancelled or the server shuts down.
func (c *Client) Run(ctx context.Context) error {
	defer c.server.UnregisterClient(c.handle.ID)
	defer c.stopInput()

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)

	lastTime := c.now()

	for c.state.Running && ctx.Err() == nil {
		frameStart := c.now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.step(delta); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// step runs one frame: input, server events, screen logic, drawing.
func (c *Client) step(delta time.Duration) error {
	c.state.delta = delta

	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateOver:
		c.updateOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}

	return c.drawFrame()
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	in := c.readInput()
	c.state.Input = in
	now := c.now()

	if len(in.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if idle := now.Sub(c.lastInput).Seconds(); idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit || in.Closed {
		c.state.Running = false
	}
	// A lone ESC byte may be a split arrow key sequence, so it only quits
	// outside a round.
	if in.Escape && c.state.GameState != GameStatePlaying {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				if c.state.GameState == GameStatePlaying {
					c.finishRound()
				}
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventTopScoresChanged:
				c.state.TopScores = c.server.TopScores()
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.Cols() || renderHeight != c.canvas.Rows() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState feeds input to the round and advances it one frame.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	c.round.SetMoveIntent(in.MoveIntent())
	if in.Space {
		c.round.RequestShoot()
	}
	c.round.Advance(c.state.delta.Seconds())

	if c.round.IsGameOver() {
		c.finishRound()
		c.state.GameState = GameStateOver
	}
}

// updateOverState waits for a restart. Space is ignored so a held fire key
// does not skip the score screen.
func (c *Client) updateOverState() {
	if c.state.Input.Restart || c.state.Input.Enter {
		c.startGame()
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// startGame starts a fresh round.
func (c *Client) startGame() {
	c.resetInput()
	c.round.Setup()
	c.state.GameState = GameStatePlaying
	c.logger.Debug("round started")
}

// finishRound records the round's result on the top-score board.
func (c *Client) finishRound() {
	c.resetInput()
	c.state.FinalScore = c.round.Score()
	c.state.FinalWave = c.round.Wave()
	c.state.Rank = c.server.SubmitScore(c.handle.ID, c.state.FinalScore, c.state.FinalWave)
	c.state.TopScores = c.server.TopScores()
	c.logger.Info("round finished", "score", c.state.FinalScore, "wave", c.state.FinalWave,
		"reason", c.round.EndReason(), "rank", c.state.Rank)
}
