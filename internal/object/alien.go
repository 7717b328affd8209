package object

// AlienVariant is the scoring tier of an alien.
type AlienVariant int

const (
	AlienTop AlienVariant = iota
	AlienMid
	AlienBottom
)

// alienSpec holds the static properties of a variant.
type alienSpec struct {
	points int
	scale  float64
}

var alienSpecs = map[AlienVariant]alienSpec{
	AlienTop:    {points: 30, scale: 0.95},
	AlienMid:    {points: 20, scale: 1.0},
	AlienBottom: {points: 10, scale: 1.25},
}

// Points returns the score awarded for destroying an alien of this variant.
func (v AlienVariant) Points() int {
	return alienSpecs[v].points
}

// Scale returns the size of this variant relative to the base alien size.
func (v AlienVariant) Scale() float64 {
	if spec, ok := alienSpecs[v]; ok {
		return spec.scale
	}
	return 1
}

func (v AlienVariant) String() string {
	switch v {
	case AlienTop:
		return "top"
	case AlienMid:
		return "mid"
	case AlienBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Alien is one member of the fleet.
type Alien struct {
	Entity
	Variant AlienVariant
	Column  int // Grid column, fixed at formation time
	Row     int // Grid row, 0 is the top row
}

// NewAlien creates an alien centred at (x, y). halfSize is scaled by the variant.
func NewAlien(x, y float64, variant AlienVariant, halfSize float64, column, row int) *Alien {
	h := halfSize * variant.Scale()
	return &Alien{
		Entity:  Entity{X: x, Y: y, HalfW: h, HalfH: h},
		Variant: variant,
		Column:  column,
		Row:     row,
	}
}

// Points returns the score value of this alien.
func (a *Alien) Points() int {
	return a.Variant.Points()
}

// Shoot fires a bullet downward from the alien's bottom edge.
func (a *Alien) Shoot(speed float64, shape BulletShape) *Bullet {
	return NewBullet(a.X, a.Box().Bottom(), -speed, OwnerAlien, shape)
}

// MaxAlienScale returns the largest variant scale, for sizing broad-phase cells.
func MaxAlienScale() float64 {
	largest := 0.0
	for _, spec := range alienSpecs {
		if spec.scale > largest {
			largest = spec.scale
		}
	}
	return largest
}
