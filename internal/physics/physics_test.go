package physics

import (
	"sort"
	"testing"
)

func TestOverlaps(t *testing.T) {
	base := Box{X: 10, Y: 10, HalfW: 5, HalfH: 5}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"same box", base, true},
		{"contained", Box{X: 10, Y: 10, HalfW: 1, HalfH: 1}, true},
		{"partial x and y", Box{X: 14, Y: 6, HalfW: 2, HalfH: 2}, true},
		{"x overlap only", Box{X: 12, Y: 30, HalfW: 5, HalfH: 5}, false},
		{"y overlap only", Box{X: 30, Y: 12, HalfW: 5, HalfH: 5}, false},
		{"touching edge", Box{X: 20, Y: 10, HalfW: 5, HalfH: 5}, false},
		{"far away", Box{X: -100, Y: -100, HalfW: 1, HalfH: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(base, tt.b); got != tt.want {
				t.Errorf("Overlaps(base, %+v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.b)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 10, Y: 20, HalfW: 3, HalfH: 4}
	if b.Left() != 7 || b.Right() != 13 || b.Bottom() != 16 || b.Top() != 24 {
		t.Errorf("unexpected edges: l=%v r=%v b=%v t=%v", b.Left(), b.Right(), b.Bottom(), b.Top())
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned a value outside the range")
	}
}

func collect(g *SpatialGrid, x, y float64) []int {
	var found []int
	g.QueryAround(x, y, func(i int) bool {
		found = append(found, i)
		return false
	})
	sort.Ints(found)
	return found
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)   // cell (0,0)
	g.Insert(15, 15, 1) // cell (1,1)
	g.Insert(55, 55, 2) // cell (5,5)

	got := collect(g, 8, 8)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("expected [0 1] near origin, got %v", got)
	}

	got = collect(g, 55, 55)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected [2] in the middle, got %v", got)
	}
}

func TestSpatialGridDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(95, 5, 0) // far right column

	if got := collect(g, 2, 5); len(got) != 0 {
		t.Errorf("bounded grid must not wrap, got %v", got)
	}
}

func TestSpatialGridClampsOffField(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(-20, 50, 0)  // clamps into column 0
	g.Insert(50, 130, 1) // clamps into the top row

	if got := collect(g, 1, 50); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected off-field item 0 near the left border, got %v", got)
	}
	if got := collect(g, 50, 99); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected off-field item 1 near the top border, got %v", got)
	}
}

func TestSpatialGridEarlyStopAndClear(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	for i := 0; i < 5; i++ {
		g.Insert(50, 50, i)
	}

	calls := 0
	g.QueryAround(50, 50, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("expected iteration to stop after the first item, got %d calls", calls)
	}

	g.Clear()
	if got := collect(g, 50, 50); len(got) != 0 {
		t.Errorf("expected empty grid after Clear, got %v", got)
	}
}
