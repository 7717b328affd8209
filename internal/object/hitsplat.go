package object

// hitSplatHalfSize is the half extent of the splat marker.
const hitSplatHalfSize = 8.0

// HitSplat is a short-lived marker drawn where something was hit.
// It never takes part in collisions.
type HitSplat struct {
	Entity
	Lifetime float64 // Seconds remaining
}

// NewHitSplat creates a splat at (x, y) that lasts lifetime seconds.
func NewHitSplat(x, y, lifetime float64) *HitSplat {
	return &HitSplat{
		Entity:   Entity{X: x, Y: y, HalfW: hitSplatHalfSize, HalfH: hitSplatHalfSize},
		Lifetime: lifetime,
	}
}

// Update ages the splat. Returns true once it has expired.
func (h *HitSplat) Update(dt float64) bool {
	h.Lifetime -= dt
	if h.Lifetime <= 0 {
		h.MarkDestroyed()
		return true
	}
	return false
}
