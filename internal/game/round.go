// Package game runs one round of Invaders: it owns the player, the fleet,
// bullets and the UFO, and advances them one frame at a time.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/fleet"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// State is the round's lifecycle state.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	if s == StateGameOver {
		return "game-over"
	}
	return "playing"
}

// EndReason records why a round ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndInvasion
	EndNoLives
)

func (r EndReason) String() string {
	switch r {
	case EndInvasion:
		return "invasion"
	case EndNoLives:
		return "no lives"
	default:
		return "none"
	}
}

// Option configures a Round.
type Option func(*Round)

// WithLogger sets the logger for round events. Rounds log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(r *Round) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRand sets the random source for shooter selection and UFO spawns.
func WithRand(rng object.Rand) Option {
	return func(r *Round) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return func(r *Round) {
		r.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLayout replaces the formation built from the config.
func WithLayout(layout fleet.Layout) Option {
	return func(r *Round) {
		r.layout = layout
	}
}

// OnGameOver registers a callback run once when the round ends.
func OnGameOver(fn func(score int, reason EndReason)) Option {
	return func(r *Round) {
		r.onGameOver = fn
	}
}

// Round is a single game from the first wave to game over.
// It is not safe for concurrent use.
type Round struct {
	cfg        *config.Game
	rng        object.Rand
	logger     *log.Logger
	layout     fleet.Layout
	onGameOver func(score int, reason EndReason)

	player        *object.Player
	fleet         *fleet.Fleet
	playerBullets []*object.Bullet
	alienBullets  []*object.Bullet
	ufo           *object.UFO
	splats        []*object.HitSplat
	grid          *physics.SpatialGrid

	score  int
	wave   int
	state  State
	reason EndReason

	moveIntent  int
	shootQueued bool
}

// New validates cfg and returns a round ready to play.
func New(cfg config.Game, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Round{
		cfg:    &cfg,
		layout: fleet.LayoutFromConfig(&cfg),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// After the options, so a replaced layout sizes the grid.
	r.grid = physics.NewSpatialGrid(cfg.Window.Width, cfg.Window.Height, broadPhaseCellSize(r.layout.HalfSize, cfg.Bullet))
	r.Setup()
	return r, nil
}

// Setup starts the round over: fresh player and fleet, score 0, wave 1.
func (r *Round) Setup() {
	r.player = object.NewPlayer(r.cfg.Window.Width/2, r.cfg.Player.SpawnY, r.cfg)
	if r.fleet == nil {
		r.fleet = fleet.New(r.cfg, r.layout, r.rng)
	} else {
		r.fleet.Reset()
	}
	r.playerBullets = r.playerBullets[:0]
	r.alienBullets = r.alienBullets[:0]
	r.splats = r.splats[:0]
	r.ufo = nil

	r.score = 0
	r.wave = 1
	r.state = StatePlaying
	r.reason = EndNone
	r.moveIntent = 0
	r.shootQueued = false
}

// SetMoveIntent sets the ship's direction (-1, 0, 1) until changed.
func (r *Round) SetMoveIntent(dir int) {
	r.moveIntent = dir
}

// RequestShoot queues a shot for the next frame. It is dropped silently if
// the cooldown has not elapsed by then.
func (r *Round) RequestShoot() {
	r.shootQueued = true
}

// Advance runs one frame of dt seconds. Negative dt counts as 0 and dt is
// capped at the configured maximum frame delta. Does nothing after game over.
func (r *Round) Advance(dt float64) {
	if r.state == StateGameOver {
		return
	}
	dt = physics.Clamp(dt, 0, r.cfg.MaxFrameDelta)

	r.applyIntents()
	r.player.Advance(dt)

	if b := r.fleet.Advance(dt); b != nil {
		r.alienBullets = append(r.alienBullets, b)
	}
	r.trySpawnUFO()

	r.resolveCombat(dt)
	r.updateSplats(dt)

	if r.fleet.IsEmpty() {
		r.nextWave()
	}

	switch {
	case r.fleet.HasBreached(0):
		r.end(EndInvasion)
	case r.player.Lives <= 0:
		r.end(EndNoLives)
	}
}

func (r *Round) applyIntents() {
	r.player.SetMoveIntent(r.moveIntent)
	if r.shootQueued {
		r.shootQueued = false
		if b := r.player.TryShoot(); b != nil {
			r.playerBullets = append(r.playerBullets, b)
		}
	}
}

func (r *Round) trySpawnUFO() {
	if r.ufo != nil || r.rng.Float64() >= r.cfg.UFO.SpawnChance {
		return
	}
	dir := 1
	if r.rng.Intn(2) == 1 {
		dir = -1
	}
	r.ufo = object.NewUFO(dir, r.cfg)
	r.logger.Debug("ufo spawned", "direction", dir)
}

func (r *Round) updateSplats(dt float64) {
	for _, s := range r.splats {
		s.Update(dt)
	}
	r.splats = object.Compact(r.splats)
}

// nextWave replaces a wiped fleet. Score and lives carry over.
func (r *Round) nextWave() {
	r.playerBullets = r.playerBullets[:0]
	r.alienBullets = r.alienBullets[:0]
	r.ufo = nil
	r.fleet.Reset()
	r.wave++
	r.logger.Debug("wave cleared", "wave", r.wave, "score", r.score, "lives", r.player.Lives)
}

func (r *Round) end(reason EndReason) {
	if r.state == StateGameOver {
		return
	}
	r.state = StateGameOver
	r.reason = reason
	r.logger.Debug("game over", "reason", reason, "score", r.score, "wave", r.wave)
	if r.onGameOver != nil {
		r.onGameOver(r.score, reason)
	}
}

// Score returns the points earned this round.
func (r *Round) Score() int { return r.score }

// Lives returns the player's remaining lives.
func (r *Round) Lives() int { return r.player.Lives }

// Wave returns how many fleets have been spawned this round.
func (r *Round) Wave() int { return r.wave }

// State returns the lifecycle state.
func (r *Round) State() State { return r.state }

// IsGameOver reports whether the round has ended.
func (r *Round) IsGameOver() bool { return r.state == StateGameOver }

// EndReason returns why the round ended, or EndNone while playing.
func (r *Round) EndReason() EndReason { return r.reason }

// Config returns the tuning the round was built with.
func (r *Round) Config() *config.Game { return r.cfg }

// Player returns the ship.
func (r *Round) Player() *object.Player { return r.player }

// Fleet returns the alien formation.
func (r *Round) Fleet() *fleet.Fleet { return r.fleet }

// UFO returns the active UFO, or nil.
func (r *Round) UFO() *object.UFO { return r.ufo }

// PlayerBullets returns the player's bullets in flight.
func (r *Round) PlayerBullets() []*object.Bullet { return r.playerBullets }

// AlienBullets returns the aliens' bullets in flight.
func (r *Round) AlienBullets() []*object.Bullet { return r.alienBullets }
