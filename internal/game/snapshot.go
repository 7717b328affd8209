package game

import "github.com/tomz197/invaders/internal/object"

// Sprite is one renderable entity. Coordinates are field space with y up.
type Sprite struct {
	Kind         object.Kind
	Variant      object.AlienVariant // Aliens only
	X, Y         float64
	HalfW, HalfH float64
	Invulnerable float64 // Player only: seconds of protection left, for blinking
}

// Snapshot is everything a shell needs to draw one frame.
type Snapshot struct {
	Width, Height float64
	Score         int
	Lives         int
	Wave          int
	GameOver      bool
	Sprites       []Sprite
}

// Snapshot returns the current frame with a freshly allocated sprite list.
func (r *Round) Snapshot() Snapshot {
	return r.SnapshotInto(nil)
}

// SnapshotInto is Snapshot reusing buf for the sprite list.
func (r *Round) SnapshotInto(buf []Sprite) Snapshot {
	return Snapshot{
		Width:    r.cfg.Window.Width,
		Height:   r.cfg.Window.Height,
		Score:    r.score,
		Lives:    r.player.Lives,
		Wave:     r.wave,
		GameOver: r.IsGameOver(),
		Sprites:  r.AppendSprites(buf[:0]),
	}
}

// AppendSprites appends every live entity to dst, back to front: aliens, UFO,
// bullets, the ship, then hit splats.
func (r *Round) AppendSprites(dst []Sprite) []Sprite {
	for _, a := range r.fleet.Aliens() {
		if a.IsDestroyed() {
			continue
		}
		dst = append(dst, entitySprite(object.KindAlien, &a.Entity))
		dst[len(dst)-1].Variant = a.Variant
	}
	if r.ufo != nil && !r.ufo.IsDestroyed() {
		dst = append(dst, entitySprite(object.KindUFO, &r.ufo.Entity))
	}
	for _, b := range r.playerBullets {
		if !b.IsDestroyed() {
			dst = append(dst, entitySprite(b.Kind(), &b.Entity))
		}
	}
	for _, b := range r.alienBullets {
		if !b.IsDestroyed() {
			dst = append(dst, entitySprite(b.Kind(), &b.Entity))
		}
	}

	ship := entitySprite(object.KindPlayer, &r.player.Entity)
	ship.Invulnerable = r.player.Invulnerable()
	dst = append(dst, ship)

	for _, s := range r.splats {
		if !s.IsDestroyed() {
			dst = append(dst, entitySprite(object.KindHitSplat, &s.Entity))
		}
	}
	return dst
}

func entitySprite(kind object.Kind, e *object.Entity) Sprite {
	return Sprite{Kind: kind, X: e.X, Y: e.Y, HalfW: e.HalfW, HalfH: e.HalfH}
}
