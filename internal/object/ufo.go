package object

import "github.com/tomz197/invaders/internal/config"

// UFO is the bonus saucer crossing the top of the screen.
type UFO struct {
	Entity
	Direction int // 1 moves right, -1 moves left
	Speed     float64
}

// NewUFO creates a UFO entering from the left edge (direction 1) or the right
// edge (direction -1) on the flight line below the top of the screen.
func NewUFO(direction int, cfg *config.Game) *UFO {
	x := 0.0
	if direction < 0 {
		direction = -1
		x = cfg.Window.Width
	} else {
		direction = 1
	}
	return &UFO{
		Entity: Entity{
			X:     x,
			Y:     cfg.Window.Height - cfg.UFO.TopOffset,
			HalfW: cfg.UFO.HalfWidth,
			HalfH: cfg.UFO.HalfHeight,
		},
		Direction: direction,
		Speed:     cfg.UFO.Speed,
	}
}

// Update moves the UFO and marks it destroyed once it has left the screen on
// the side it was heading to. Returns true if it should be removed.
func (u *UFO) Update(dt, fieldWidth float64) bool {
	if u.IsDestroyed() {
		return true
	}

	u.X += float64(u.Direction) * u.Speed * dt

	box := u.Box()
	if (u.Direction > 0 && box.Left() > fieldWidth) || (u.Direction < 0 && box.Right() < 0) {
		u.MarkDestroyed()
		return true
	}
	return false
}
