package object

import (
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Player is the ship at the bottom of the screen.
type Player struct {
	Entity
	Lives int

	Speed         float64 // Units per second
	FireRate      float64 // Minimum seconds between shots
	BulletSpeed   float64
	bulletShape   BulletShape
	fieldWidth    float64
	hitProtection float64 // Invulnerability granted by each hit

	moveDir      int
	fireCooldown float64 // Time until next shot allowed
	canShoot     bool
	invulnerable float64 // Seconds of invulnerability remaining
}

// NewPlayer creates a ship centred at (x, y) tuned by cfg.
func NewPlayer(x, y float64, cfg *config.Game) *Player {
	return &Player{
		Entity:        Entity{X: x, Y: y, HalfW: cfg.Player.HalfWidth, HalfH: cfg.Player.HalfHeight},
		Lives:         cfg.Player.Lives,
		Speed:         cfg.Player.Speed,
		FireRate:      cfg.Player.ShootCooldown,
		BulletSpeed:   cfg.Player.BulletSpeed,
		bulletShape:   BulletShape{HalfW: cfg.Bullet.HalfWidth, HalfH: cfg.Bullet.HalfHeight},
		fieldWidth:    cfg.Window.Width,
		hitProtection: cfg.Player.HitInvulnerability,
		canShoot:      true, // First shot is always available
	}
}

// SetMoveIntent sets the horizontal direction: -1 left, 0 stop, 1 right.
// There is no acceleration; the ship moves at full speed immediately.
func (p *Player) SetMoveIntent(dir int) {
	switch {
	case dir < 0:
		p.moveDir = -1
	case dir > 0:
		p.moveDir = 1
	default:
		p.moveDir = 0
	}
}

// MoveIntent returns the current horizontal direction.
func (p *Player) MoveIntent() int {
	return p.moveDir
}

// Advance moves the ship, keeps it on screen and ticks its timers.
func (p *Player) Advance(dt float64) {
	p.X += float64(p.moveDir) * p.Speed * dt
	p.clampToScreen()

	if !p.canShoot {
		p.fireCooldown -= dt
		if p.fireCooldown <= 0 {
			p.canShoot = true
		}
	}

	if p.invulnerable > 0 {
		p.invulnerable -= dt
		if p.invulnerable < 0 {
			p.invulnerable = 0
		}
	}
}

// clampToScreen keeps the bounding box inside [0, fieldWidth].
func (p *Player) clampToScreen() {
	if p.fieldWidth < 2*p.HalfW {
		p.X = p.fieldWidth / 2
		return
	}
	p.X = physics.Clamp(p.X, p.HalfW, p.fieldWidth-p.HalfW)
}

// CanShoot reports whether the cooldown has elapsed.
func (p *Player) CanShoot() bool {
	return p.canShoot
}

// TryShoot returns a bullet leaving the ship's top edge, or nil while the
// cooldown is running.
func (p *Player) TryShoot() *Bullet {
	if !p.canShoot {
		return nil
	}
	p.canShoot = false
	p.fireCooldown = p.FireRate
	return NewBullet(p.X, p.Box().Top(), p.BulletSpeed, OwnerPlayer, p.bulletShape)
}

// IsVulnerable reports whether hits currently count.
func (p *Player) IsVulnerable() bool {
	return p.invulnerable <= 0
}

// Invulnerable returns the remaining invulnerability in seconds.
func (p *Player) Invulnerable() float64 {
	return p.invulnerable
}

// ApplyHit costs one life and starts the invulnerability window.
// Returns true when no lives are left.
func (p *Player) ApplyHit() bool {
	if p.Lives > 0 {
		p.Lives--
	}
	p.invulnerable = p.hitProtection
	return p.Lives <= 0
}
