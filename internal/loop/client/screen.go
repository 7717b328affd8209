package client

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/object"
)

// groundHalfHeight is the half thickness of the floor line in field units.
const groundHalfHeight = 1.0

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.state.GameState == GameStatePlaying && !c.state.isInactive {
		c.drawField()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawField draws the round's sprites and the floor onto the canvas.
func (c *Client) drawField() {
	snap := c.round.SnapshotInto(c.sprites)
	c.sprites = snap.Sprites

	for i := range snap.Sprites {
		c.drawSprite(&snap.Sprites[i])
	}
	c.canvas.FillRect(snap.Width/2, 0, snap.Width/2, groundHalfHeight, draw.ColorGreen)
}

func (c *Client) drawSprite(s *game.Sprite) {
	switch s.Kind {
	case object.KindAlien:
		mask, color := alienLook(s.Variant)
		c.canvas.FillMask(mask, s.X, s.Y, s.HalfW, s.HalfH, color)
	case object.KindUFO:
		c.canvas.FillMask(&draw.MaskUFO, s.X, s.Y, s.HalfW, s.HalfH, draw.ColorRed)
	case object.KindPlayer:
		if object.ShouldRenderBlink(s.Invulnerable, PlayerBlinkFrequency) {
			c.canvas.FillMask(&draw.MaskShip, s.X, s.Y, s.HalfW, s.HalfH, draw.ColorGreen)
		}
	case object.KindPlayerBullet:
		c.canvas.FillRect(s.X, s.Y, s.HalfW, s.HalfH, draw.ColorWhite)
	case object.KindAlienBullet:
		c.canvas.FillRect(s.X, s.Y, s.HalfW, s.HalfH, draw.ColorYellow)
	case object.KindHitSplat:
		c.canvas.FillMask(&draw.MaskSplat, s.X, s.Y, s.HalfW, s.HalfH, draw.ColorYellow)
	}
}

func alienLook(v object.AlienVariant) (*draw.Mask, draw.Color) {
	switch v {
	case object.AlienTop:
		return &draw.MaskAlienTop, draw.ColorMagenta
	case object.AlienMid:
		return &draw.MaskAlienMid, draw.ColorCyan
	default:
		return &draw.MaskAlienBottom, draw.ColorWhite
	}
}

// text writes s at (col, row) and marks the cells so the canvas repaints
// them once the text is gone.
func (c *Client) text(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// centered writes s centred on column center.
func (c *Client) centered(center, row int, s string) {
	col := c.chunkWriter.WriteCentered(center, row, s)
	c.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

// blinkOn alternates every 600ms for prompts.
func (c *Client) blinkOn() bool {
	return c.now().UnixMilli()/600%2 == 0
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.Cols()
	termHeight := c.canvas.Rows()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateOver:
		c.drawOverScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - c.now().Sub(c.lastInput).Seconds())
	c.centered(centerX, centerY, fmt.Sprintf("You will be disconnected in %3d seconds.", max(left, 0)))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// Title art (figlet "small" font).
var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	" | || .` |\\ V / _ \\| |) | _||   /\\__ \\",
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawArt draws centred art starting at row top and returns the row below it.
func (c *Client) drawArt(art []string, centerX, top int) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.text(max(centerX-width/2, 1), top+i, line)
	}
	return top + len(art)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	row := c.drawArt(titleArt, centerX, centerY-9)

	c.centered(centerX, row+1, "~ Space Invaders over SSH ~")

	// Points table
	row += 3
	for _, v := range []object.AlienVariant{object.AlienTop, object.AlienMid, object.AlienBottom} {
		c.centered(centerX, row, fmt.Sprintf("%-6s alien . . %2d pts", v, v.Points()))
		row++
	}
	c.centered(centerX, row, fmt.Sprintf("Mystery UFO . . %3d pts", c.round.Config().UFO.Bonus))

	// Controls section
	row += 2
	controlLines := []string{
		"A D / < >  . . . Move",
		"SPACE / W  . .  Shoot",
		"Q  . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, row+i, line)
	}
	row += len(controlLines) + 1

	// Blinking start prompt
	if c.blinkOn() {
		c.centered(centerX, row, ">>  Press SPACE to Start  <<")
	}

	c.drawTopScores(centerX, row+2)
}

// drawPlayingHUD draws score, lives and wave on the top row.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int) {
	lives := c.round.Lives()
	livesText := fmt.Sprintf("LIVES %-*s", c.round.Config().Player.Lives*2, strings.Repeat("▲ ", lives))
	c.text(2, 1, livesText)

	c.centered(termWidth/2, 1, fmt.Sprintf("SCORE %06d", c.round.Score()))

	waveText := fmt.Sprintf("WAVE %-3d", c.round.Wave())
	c.text(max(termWidth-len(waveText), 1), 1, waveText)
}

// drawOverScreen draws the game over screen with the final score and board.
func (c *Client) drawOverScreen(centerX, centerY int) {
	row := c.drawArt(gameOverArt, centerX, centerY-9)

	c.centered(centerX, row+1, fmt.Sprintf("Score: %d   Wave: %d", c.state.FinalScore, c.state.FinalWave))
	if c.state.Rank > 0 {
		c.centered(centerX, row+2, fmt.Sprintf("New top score! Rank #%d", c.state.Rank))
	}

	if c.blinkOn() {
		c.centered(centerX, row+4, ">>  Press R to play again, Q or ESC to quit  <<")
	}

	c.drawTopScores(centerX, row+6)
}

// drawTopScores lists the host's best rounds, if any.
func (c *Client) drawTopScores(centerX, row int) {
	scores := c.state.TopScores
	if len(scores) == 0 {
		return
	}
	c.centered(centerX, row, "TOP SCORES")
	for i, e := range scores {
		line := fmt.Sprintf("%d. %-*s %7d  wave %-2d", i+1, config.MaxUsernameLength, e.Username, e.Score, e.Wave)
		c.centered(centerX, row+1+i, line)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
