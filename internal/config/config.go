package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned (wrapped) when a tuning value is out of range.
var ErrInvalid = errors.New("invalid config")

// Window is the play field size in logical units. Y points up.
type Window struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Player tunes the ship and its bullets.
type Player struct {
	Lives              int     `toml:"lives"`
	Speed              float64 `toml:"speed"`          // Units per second
	ShootCooldown      float64 `toml:"shoot_cooldown"` // Seconds between shots
	BulletSpeed        float64 `toml:"bullet_speed"`
	SpawnY             float64 `toml:"spawn_y"`
	HalfWidth          float64 `toml:"half_width"`
	HalfHeight         float64 `toml:"half_height"`
	HitInvulnerability float64 `toml:"hit_invulnerability"` // Seconds immune after a hit, 0 disables
}

// Fleet tunes the alien formation.
type Fleet struct {
	Rows             int     `toml:"rows"`
	Columns          int     `toml:"columns"`
	SpacingX         float64 `toml:"spacing_x"`
	SpacingY         float64 `toml:"spacing_y"`
	OriginX          float64 `toml:"origin_x"` // Centre of the top-left alien
	OriginY          float64 `toml:"origin_y"`
	TopRows          int     `toml:"top_rows"` // Rows using the Top variant, counted from the top
	MidRows          int     `toml:"mid_rows"` // Rows using the Mid variant, below the top band
	BaseSpeed        float64 `toml:"base_speed"`
	MaxSpeed         float64 `toml:"max_speed"`
	Drop             float64 `toml:"drop"`
	BulletSpeed      float64 `toml:"bullet_speed"`
	ShootCooldown    float64 `toml:"shoot_cooldown"`
	MinShootCooldown float64 `toml:"min_shoot_cooldown"`
	AlienHalfSize    float64 `toml:"alien_half_size"` // Half extent before variant scale
}

// UFO tunes the bonus saucer.
type UFO struct {
	Speed       float64 `toml:"speed"`
	SpawnChance float64 `toml:"spawn_chance"` // Per-frame probability when none is active
	Bonus       int     `toml:"bonus"`
	TopOffset   float64 `toml:"top_offset"` // Distance of the flight line below the top edge
	HalfWidth   float64 `toml:"half_width"`
	HalfHeight  float64 `toml:"half_height"`
}

// Bullet is the collision box shared by all bullets.
type Bullet struct {
	HalfWidth  float64 `toml:"half_width"`
	HalfHeight float64 `toml:"half_height"`
}

// Effects tunes cosmetic entities.
type Effects struct {
	HitSplatLifetime float64 `toml:"hit_splat_lifetime"`
}

// Game holds every tunable of a round. Build one per round and share it by
// pointer; nothing mutates it after Validate succeeds.
type Game struct {
	Window        Window  `toml:"window"`
	Player        Player  `toml:"player"`
	Fleet         Fleet   `toml:"fleet"`
	UFO           UFO     `toml:"ufo"`
	Bullet        Bullet  `toml:"bullet"`
	Effects       Effects `toml:"effects"`
	MaxFrameDelta float64 `toml:"max_frame_delta"` // Longest dt a single frame may integrate
}

// Default returns the classic tuning.
func Default() Game {
	const width, height = 800.0, 600.0
	return Game{
		Window: Window{Width: width, Height: height},
		Player: Player{
			Lives:              3,
			Speed:              300,
			ShootCooldown:      0.2,
			BulletSpeed:        300,
			SpawnY:             60,
			HalfWidth:          16,
			HalfHeight:         12,
			HitInvulnerability: 1.0,
		},
		Fleet: Fleet{
			Rows:             5,
			Columns:          11,
			SpacingX:         60,
			SpacingY:         60,
			OriginX:          100,
			OriginY:          height - 70,
			TopRows:          1,
			MidRows:          2,
			BaseSpeed:        50,
			MaxSpeed:         85,
			Drop:             30,
			BulletSpeed:      200,
			ShootCooldown:    3.0,
			MinShootCooldown: 1.5,
			AlienHalfSize:    12,
		},
		UFO: UFO{
			Speed:       100,
			SpawnChance: 0.001,
			Bonus:       100,
			TopOffset:   40,
			HalfWidth:   24,
			HalfHeight:  10,
		},
		Bullet:        Bullet{HalfWidth: 2, HalfHeight: 6},
		Effects:       Effects{HitSplatLifetime: 0.06},
		MaxFrameDelta: 0.25,
	}
}

// Validate reports the first out-of-range value.
func (g *Game) Validate() error {
	checks := []struct {
		ok    bool
		field string
	}{
		{g.Window.Width > 0, "window.width"},
		{g.Window.Height > 0, "window.height"},
		{g.Player.Lives >= 1, "player.lives"},
		{g.Player.Speed >= 0, "player.speed"},
		{g.Player.ShootCooldown >= 0, "player.shoot_cooldown"},
		{g.Player.BulletSpeed > 0, "player.bullet_speed"},
		{g.Player.HalfWidth > 0, "player.half_width"},
		{g.Player.HalfHeight > 0, "player.half_height"},
		{g.Player.HitInvulnerability >= 0, "player.hit_invulnerability"},
		{g.Fleet.Rows >= 1, "fleet.rows"},
		{g.Fleet.Columns >= 1, "fleet.columns"},
		{g.Fleet.SpacingX > 0, "fleet.spacing_x"},
		{g.Fleet.SpacingY > 0, "fleet.spacing_y"},
		{g.Fleet.TopRows >= 0, "fleet.top_rows"},
		{g.Fleet.MidRows >= 0, "fleet.mid_rows"},
		{g.Fleet.BaseSpeed >= 0, "fleet.base_speed"},
		{g.Fleet.MaxSpeed >= 0, "fleet.max_speed"},
		{g.Fleet.Drop >= 0, "fleet.drop"},
		{g.Fleet.BulletSpeed > 0, "fleet.bullet_speed"},
		{g.Fleet.ShootCooldown > 0, "fleet.shoot_cooldown"},
		{g.Fleet.MinShootCooldown >= 0, "fleet.min_shoot_cooldown"},
		{g.Fleet.AlienHalfSize > 0, "fleet.alien_half_size"},
		{g.UFO.Speed > 0, "ufo.speed"},
		{g.UFO.SpawnChance >= 0 && g.UFO.SpawnChance <= 1, "ufo.spawn_chance"},
		{g.UFO.Bonus >= 0, "ufo.bonus"},
		{g.UFO.HalfWidth > 0, "ufo.half_width"},
		{g.UFO.HalfHeight > 0, "ufo.half_height"},
		{g.Bullet.HalfWidth > 0, "bullet.half_width"},
		{g.Bullet.HalfHeight > 0, "bullet.half_height"},
		{g.Effects.HitSplatLifetime >= 0, "effects.hit_splat_lifetime"},
		{g.MaxFrameDelta > 0, "max_frame_delta"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s out of range", ErrInvalid, c.field)
		}
	}
	return nil
}

// Shell timing
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal rendering limits. Larger terminals get a centred, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Scoreboard
const (
	TopScoreCount     = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)
