package object

// Owner identifies who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerAlien
)

// BulletShape is the collision box of a bullet.
type BulletShape struct {
	HalfW, HalfH float64
}

// Bullet travels vertically at a fixed speed.
type Bullet struct {
	Entity
	Owner Owner
	VY    float64 // Positive moves up
}

// NewBullet creates a bullet centred at (x, y) with vertical velocity vy.
func NewBullet(x, y, vy float64, owner Owner, shape BulletShape) *Bullet {
	return &Bullet{
		Entity: Entity{X: x, Y: y, HalfW: shape.HalfW, HalfH: shape.HalfH},
		Owner:  owner,
		VY:     vy,
	}
}

// Kind returns the sprite kind for this bullet.
func (b *Bullet) Kind() Kind {
	if b.Owner == OwnerPlayer {
		return KindPlayerBullet
	}
	return KindAlienBullet
}

// Update moves the bullet and marks it destroyed once it has fully left the
// field vertically. Returns true if the bullet should be removed.
func (b *Bullet) Update(dt, fieldHeight float64) bool {
	if b.IsDestroyed() {
		return true
	}

	b.Y += b.VY * dt

	box := b.Box()
	if (b.VY > 0 && box.Bottom() > fieldHeight) || (b.VY < 0 && box.Top() < 0) {
		b.MarkDestroyed()
		return true
	}
	return false
}
