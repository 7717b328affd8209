// Package object defines the moving entities of a round: the player ship,
// aliens, bullets, the bonus UFO and hit splats.
package object

import "github.com/tomz197/invaders/internal/physics"

// Kind identifies what an entity is, for shells that render mixed sprites.
type Kind int

const (
	KindPlayer Kind = iota
	KindAlien
	KindPlayerBullet
	KindAlienBullet
	KindUFO
	KindHitSplat
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAlien:
		return "alien"
	case KindPlayerBullet:
		return "player-bullet"
	case KindAlienBullet:
		return "alien-bullet"
	case KindUFO:
		return "ufo"
	case KindHitSplat:
		return "hit-splat"
	default:
		return "unknown"
	}
}

// Rand is the random source used for shooter selection and UFO spawns.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Entity is the state every moving object shares. Coordinates are screen
// space with y pointing up.
type Entity struct {
	X, Y         float64 // Centre
	HalfW, HalfH float64 // Half extents of the bounding box
	destroyed    bool
}

// Box returns the bounding box derived from position and half extents.
func (e *Entity) Box() physics.Box {
	return physics.Box{X: e.X, Y: e.Y, HalfW: e.HalfW, HalfH: e.HalfH}
}

// MarkDestroyed marks the entity for removal on the next compaction.
func (e *Entity) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true once the entity has been marked for removal.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Compact removes destroyed items in place, keeping the order of survivors.
// Scans mark, Compact sweeps; never remove while iterating.
func Compact[T Destructible](items []T) []T {
	kept := items[:0] // reuse backing array
	for _, item := range items {
		if !item.IsDestroyed() {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
