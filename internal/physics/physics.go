// Package physics provides axis-aligned bounding box collision utilities.
package physics

// Box is an axis-aligned rectangle described by its centre and half extents.
type Box struct {
	X, Y         float64 // Centre
	HalfW, HalfH float64
}

// Left returns the minimum x of the box.
func (b Box) Left() float64 { return b.X - b.HalfW }

// Right returns the maximum x of the box.
func (b Box) Right() float64 { return b.X + b.HalfW }

// Bottom returns the minimum y of the box (y points up).
func (b Box) Bottom() float64 { return b.Y - b.HalfH }

// Top returns the maximum y of the box.
func (b Box) Top() float64 { return b.Y + b.HalfH }

// Overlaps reports whether both the x-ranges and the y-ranges intersect.
// Boxes that only share an edge do not overlap.
func Overlaps(a, b Box) bool {
	return a.Left() < b.Right() && b.Left() < a.Right() &&
		a.Bottom() < b.Top() && b.Bottom() < a.Top()
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
