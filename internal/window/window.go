// Package window plays a round in a desktop window using ebiten.
package window

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/invaders/internal/game"
)

// App adapts a game.Round to ebiten's Update/Draw/Layout loop.
type App struct {
	round          *game.Round
	logger         *log.Logger
	lastUpdateTime time.Time
	now            func() time.Time
	sprites        []game.Sprite
	best           int
}

// New wraps round for ebiten.RunGame. A nil logger discards output.
func New(round *game.Round, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		round:          round,
		logger:         logger,
		lastUpdateTime: time.Now(),
		now:            time.Now,
	}
}

// Keys read every frame.
type Keys struct {
	Left, Right, Fire bool
	Restart, Quit     bool
}

func pollKeys() Keys {
	return Keys{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Quit: inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	now := a.now()
	dt := now.Sub(a.lastUpdateTime).Seconds()
	a.lastUpdateTime = now
	return a.apply(pollKeys(), dt)
}

// apply feeds one frame of keys to the round. Returns ebiten.Termination
// when the player quits.
func (a *App) apply(k Keys, dt float64) error {
	if k.Quit {
		return ebiten.Termination
	}

	if a.round.IsGameOver() {
		if k.Restart {
			a.round.Setup()
			a.logger.Debug("round restarted")
		}
		return nil
	}

	a.round.SetMoveIntent(moveIntent(k.Left, k.Right))
	if k.Fire {
		a.round.RequestShoot()
	}
	a.round.Advance(dt)

	if a.round.IsGameOver() {
		a.best = max(a.best, a.round.Score())
		a.logger.Info("round finished", "score", a.round.Score(), "wave", a.round.Wave(),
			"reason", a.round.EndReason())
	}
	return nil
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.round.SnapshotInto(a.sprites)
	a.sprites = snap.Sprites
	drawSnapshot(screen, &snap, a.best)
}

// Layout implements ebiten.Game. The logical screen is the play field;
// ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := a.round.Config().Window
	return int(w.Width), int(w.Height)
}

// moveIntent maps held keys to -1, 0 or 1.
func moveIntent(left, right bool) int {
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	default:
		return 0
	}
}
