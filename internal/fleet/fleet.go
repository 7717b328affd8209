// Package fleet moves the alien formation: marching, bouncing off the screen
// edges, speeding up as it thins out, and picking which alien fires next.
package fleet

import (
	"math"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

// VariantFunc selects the variant for a grid row (0 is the top row).
type VariantFunc func(row int) object.AlienVariant

// RowBands assigns Top to the first top rows, Mid to the next mid rows and
// Bottom to the rest.
func RowBands(top, mid int) VariantFunc {
	return func(row int) object.AlienVariant {
		switch {
		case row < top:
			return object.AlienTop
		case row < top+mid:
			return object.AlienMid
		default:
			return object.AlienBottom
		}
	}
}

// Flat assigns the same variant to every row.
func Flat(v object.AlienVariant) VariantFunc {
	return func(int) object.AlienVariant { return v }
}

// Layout describes the formation grid.
type Layout struct {
	Rows, Columns      int
	SpacingX, SpacingY float64
	OriginX, OriginY   float64 // Centre of the top-left alien
	HalfSize           float64 // Alien half extent before variant scale
	Variant            VariantFunc
}

// LayoutFromConfig builds the layout described by the fleet tuning.
func LayoutFromConfig(cfg *config.Game) Layout {
	return Layout{
		Rows:     cfg.Fleet.Rows,
		Columns:  cfg.Fleet.Columns,
		SpacingX: cfg.Fleet.SpacingX,
		SpacingY: cfg.Fleet.SpacingY,
		OriginX:  cfg.Fleet.OriginX,
		OriginY:  cfg.Fleet.OriginY,
		HalfSize: cfg.Fleet.AlienHalfSize,
		Variant:  RowBands(cfg.Fleet.TopRows, cfg.Fleet.MidRows),
	}
}

// Create builds rows*columns aliens on a regular grid, column by column.
// Rows grow downward from the origin.
func Create(layout Layout) []*object.Alien {
	variant := layout.Variant
	if variant == nil {
		variant = Flat(object.AlienMid)
	}

	aliens := make([]*object.Alien, 0, layout.Rows*layout.Columns)
	for col := 0; col < layout.Columns; col++ {
		for row := 0; row < layout.Rows; row++ {
			x := layout.OriginX + float64(col)*layout.SpacingX
			y := layout.OriginY - float64(row)*layout.SpacingY
			aliens = append(aliens, object.NewAlien(x, y, variant(row), layout.HalfSize, col, row))
		}
	}
	return aliens
}

// Fleet owns the live aliens and the formation state.
type Fleet struct {
	layout     Layout
	fieldWidth float64
	rng        object.Rand

	baseSpeed    float64
	maxSpeed     float64
	drop         float64
	baseCooldown float64
	minCooldown  float64
	bulletSpeed  float64
	bulletShape  object.BulletShape

	aliens       []*object.Alien
	front        []*object.Alien // Scratch buffer for shooter selection
	initialCount int
	direction    int // 1 right, -1 left
	speed        float64
	cooldown     float64
	shootTimer   float64
}

// New creates a fleet in formation.
func New(cfg *config.Game, layout Layout, rng object.Rand) *Fleet {
	f := &Fleet{
		layout:       layout,
		fieldWidth:   cfg.Window.Width,
		rng:          rng,
		baseSpeed:    cfg.Fleet.BaseSpeed,
		maxSpeed:     cfg.Fleet.MaxSpeed,
		drop:         cfg.Fleet.Drop,
		baseCooldown: cfg.Fleet.ShootCooldown,
		minCooldown:  cfg.Fleet.MinShootCooldown,
		bulletSpeed:  cfg.Fleet.BulletSpeed,
		bulletShape:  object.BulletShape{HalfW: cfg.Bullet.HalfWidth, HalfH: cfg.Bullet.HalfHeight},
	}
	f.Reset()
	return f
}

// Reset rebuilds the formation and restores direction, speed and shoot timer.
func (f *Fleet) Reset() {
	f.aliens = Create(f.layout)
	f.initialCount = len(f.aliens)
	f.direction = 1
	f.shootTimer = f.baseCooldown
	f.updateSpeed()
	f.cooldown = f.currentCooldown()
}

// Advance moves the formation by one frame and returns the bullet fired this
// frame, or nil.
func (f *Fleet) Advance(dt float64) *object.Bullet {
	f.Compact()
	f.updateSpeed()
	f.move(dt)

	f.shootTimer -= dt
	f.cooldown = f.currentCooldown()

	if f.shootTimer <= 0 && len(f.aliens) > 0 {
		shooter := f.pickShooter()
		f.shootTimer = f.cooldown
		return shooter.Shoot(f.bulletSpeed, f.bulletShape)
	}
	return nil
}

// updateSpeed recomputes speed from the live ratio, capped at maxSpeed.
func (f *Fleet) updateSpeed() {
	live := f.LiveCount()
	if live == 0 {
		f.speed = 0
		return
	}
	f.speed = math.Min(f.baseSpeed*float64(f.initialCount)/float64(live), f.maxSpeed)
}

// currentCooldown shrinks the alien fire interval as the fleet thins out,
// never below minCooldown.
func (f *Fleet) currentCooldown() float64 {
	if f.initialCount == 0 {
		return f.baseCooldown
	}
	cd := f.baseCooldown * float64(f.LiveCount()) / float64(f.initialCount)
	return math.Max(cd, f.minCooldown)
}

// move shifts the formation horizontally, then flips and drops it once if any
// alien has reached the edge it is heading toward.
func (f *Fleet) move(dt float64) {
	step := float64(f.direction) * f.speed * dt
	for _, a := range f.aliens {
		if a.IsDestroyed() {
			continue
		}
		a.X += step
	}

	if !f.touchingEdge() {
		return
	}

	f.direction = -f.direction
	for _, a := range f.aliens {
		if a.IsDestroyed() {
			continue
		}
		a.Y -= f.drop
	}
}

func (f *Fleet) touchingEdge() bool {
	for _, a := range f.aliens {
		if a.IsDestroyed() {
			continue
		}
		box := a.Box()
		if f.direction > 0 && box.Right() >= f.fieldWidth {
			return true
		}
		if f.direction < 0 && box.Left() <= 0 {
			return true
		}
	}
	return false
}

// Frontline returns the lowest alien of every populated column, ordered by
// column. The slice is reused by the next call.
func (f *Fleet) Frontline() []*object.Alien {
	cols := f.layout.Columns
	if cap(f.front) < cols {
		f.front = make([]*object.Alien, cols)
	}
	front := f.front[:cols]
	clear(front)

	for _, a := range f.aliens {
		if a.IsDestroyed() || a.Column < 0 || a.Column >= cols {
			continue
		}
		if cur := front[a.Column]; cur == nil || a.Y < cur.Y {
			front[a.Column] = a
		}
	}

	kept := front[:0]
	for _, a := range front {
		if a != nil {
			kept = append(kept, a)
		}
	}
	return kept
}

// pickShooter chooses uniformly among the frontline aliens.
func (f *Fleet) pickShooter() *object.Alien {
	front := f.Frontline()
	return front[f.rng.Intn(len(front))]
}

// Remove marks an alien dead. It stays in the slice until the next Compact so
// callers may keep iterating Aliens.
func (f *Fleet) Remove(a *object.Alien) {
	a.MarkDestroyed()
}

// Compact drops removed aliens from the live collection.
func (f *Fleet) Compact() {
	f.aliens = object.Compact(f.aliens)
}

// Aliens returns the alien collection. Entries removed since the last Compact
// are still present and report IsDestroyed.
func (f *Fleet) Aliens() []*object.Alien {
	return f.aliens
}

// LiveCount returns the number of aliens not yet removed.
func (f *Fleet) LiveCount() int {
	n := 0
	for _, a := range f.aliens {
		if !a.IsDestroyed() {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every alien has been destroyed.
func (f *Fleet) IsEmpty() bool {
	return f.LiveCount() == 0
}

// HasBreached reports whether any live alien's bottom edge is at or below floorY.
func (f *Fleet) HasBreached(floorY float64) bool {
	for _, a := range f.aliens {
		if !a.IsDestroyed() && a.Box().Bottom() <= floorY {
			return true
		}
	}
	return false
}

// InitialCount returns the size of the formation when it was built.
func (f *Fleet) InitialCount() int { return f.initialCount }

// Direction returns 1 when marching right, -1 when marching left.
func (f *Fleet) Direction() int { return f.direction }

// Speed returns the horizontal speed computed on the last update.
func (f *Fleet) Speed() float64 { return f.speed }

// Cooldown returns the alien fire interval computed on the last update.
func (f *Fleet) Cooldown() float64 { return f.cooldown }

// ShootTimer returns the time left before the next alien shot.
func (f *Fleet) ShootTimer() float64 { return f.shootTimer }
