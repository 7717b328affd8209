package game

import (
	"math"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// broadPhaseCellSize is large enough that any bullet overlapping an alien
// of the given unscaled half size lies in the 3x3 neighborhood of the
// alien's cell.
func broadPhaseCellSize(alienHalfSize float64, bullet config.Bullet) float64 {
	alienHalf := alienHalfSize * object.MaxAlienScale()
	return math.Max(alienHalf+bullet.HalfWidth, alienHalf+bullet.HalfHeight)
}

// resolveCombat moves projectiles and the UFO, then resolves hits in a fixed
// order. Hit entities are only marked during the scans; slices are compacted
// at the end.
func (r *Round) resolveCombat(dt float64) {
	height := r.cfg.Window.Height

	for _, b := range r.playerBullets {
		b.Update(dt, height)
	}
	for _, b := range r.alienBullets {
		b.Update(dt, height)
	}
	if r.ufo != nil && r.ufo.Update(dt, r.cfg.Window.Width) {
		r.ufo = nil
	}

	r.playerBulletsVsAliens()
	r.playerBulletsVsUFO()
	r.alienBulletsVsPlayer()
	r.aliensVsPlayer()

	r.playerBullets = object.Compact(r.playerBullets)
	r.alienBullets = object.Compact(r.alienBullets)
	r.fleet.Compact()
}

// playerBulletsVsAliens lets each bullet destroy at most one alien: the
// earliest in formation order among those it overlaps.
func (r *Round) playerBulletsVsAliens() {
	aliens := r.fleet.Aliens()
	if len(aliens) == 0 || len(r.playerBullets) == 0 {
		return
	}

	r.grid.Clear()
	for i, a := range aliens {
		if !a.IsDestroyed() {
			r.grid.Insert(a.X, a.Y, i)
		}
	}

	for _, b := range r.playerBullets {
		if b.IsDestroyed() {
			continue
		}
		box := b.Box()
		hit := -1
		r.grid.QueryAround(b.X, b.Y, func(i int) bool {
			if (hit < 0 || i < hit) && !aliens[i].IsDestroyed() && physics.Overlaps(box, aliens[i].Box()) {
				hit = i
			}
			return false
		})
		if hit < 0 {
			continue
		}

		a := aliens[hit]
		r.score += a.Points()
		r.fleet.Remove(a)
		b.MarkDestroyed()
		r.splat(a.X, a.Y)
	}
}

func (r *Round) playerBulletsVsUFO() {
	if r.ufo == nil {
		return
	}
	for _, b := range r.playerBullets {
		if b.IsDestroyed() || !physics.Overlaps(b.Box(), r.ufo.Box()) {
			continue
		}
		r.score += r.cfg.UFO.Bonus
		b.MarkDestroyed()
		r.ufo.MarkDestroyed()
		r.splat(r.ufo.X, r.ufo.Y)
		r.logger.Debug("ufo destroyed", "score", r.score)
		r.ufo = nil
		return
	}
}

// alienBulletsVsPlayer consumes bullets that hit a vulnerable ship. Bullets
// pass through while the ship is invulnerable.
func (r *Round) alienBulletsVsPlayer() {
	p := r.player
	for _, b := range r.alienBullets {
		if !p.IsVulnerable() || p.Lives <= 0 {
			return
		}
		if b.IsDestroyed() || !physics.Overlaps(b.Box(), p.Box()) {
			continue
		}
		b.MarkDestroyed()
		r.hitPlayer()
	}
}

// aliensVsPlayer destroys aliens that ram a vulnerable ship, without scoring.
// Ramming costs at most one hit per frame however many aliens overlap.
func (r *Round) aliensVsPlayer() {
	p := r.player
	hit := false
	for _, a := range r.fleet.Aliens() {
		if !p.IsVulnerable() || p.Lives <= 0 {
			return
		}
		if a.IsDestroyed() || !physics.Overlaps(a.Box(), p.Box()) {
			continue
		}
		r.fleet.Remove(a)
		r.splat(a.X, a.Y)
		if !hit {
			r.hitPlayer()
			hit = true
		}
	}
}

func (r *Round) hitPlayer() {
	p := r.player
	r.splat(p.X, p.Y)
	p.ApplyHit()
	r.logger.Debug("player hit", "lives", p.Lives)
}

func (r *Round) splat(x, y float64) {
	r.splats = append(r.splats, object.NewHitSplat(x, y, r.cfg.Effects.HitSplatLifetime))
}
