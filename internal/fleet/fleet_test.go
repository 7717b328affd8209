package fleet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/object"
)

// firstRand always picks index 0 and never spawns anything.
type firstRand struct{}

func (firstRand) Intn(int) int     { return 0 }
func (firstRand) Float64() float64 { return 1 }

func testConfig() *config.Game {
	cfg := config.Default()
	return &cfg
}

func newTestFleet(cfg *config.Game, rng object.Rand) *Fleet {
	return New(cfg, LayoutFromConfig(cfg), rng)
}

// removeN kills aliens from the back of the collection until n remain.
func removeN(f *Fleet, keep int) {
	aliens := f.Aliens()
	for i := len(aliens) - 1; i >= keep; i-- {
		f.Remove(aliens[i])
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCreateGrid(t *testing.T) {
	cfg := testConfig()
	f := newTestFleet(cfg, firstRand{})

	if f.InitialCount() != 55 || f.LiveCount() != 55 {
		t.Fatalf("expected 55 aliens, got initial=%d live=%d", f.InitialCount(), f.LiveCount())
	}

	for _, a := range f.Aliens() {
		wantX := cfg.Fleet.OriginX + float64(a.Column)*cfg.Fleet.SpacingX
		wantY := cfg.Fleet.OriginY - float64(a.Row)*cfg.Fleet.SpacingY
		if a.X != wantX || a.Y != wantY {
			t.Errorf("alien c%d r%d at (%v,%v), want (%v,%v)", a.Column, a.Row, a.X, a.Y, wantX, wantY)
		}
	}

	// Default bands: 1 top row, 2 mid rows, 2 bottom rows.
	wantVariant := []object.AlienVariant{object.AlienTop, object.AlienMid, object.AlienMid, object.AlienBottom, object.AlienBottom}
	for _, a := range f.Aliens() {
		if a.Variant != wantVariant[a.Row] {
			t.Errorf("row %d has variant %v, want %v", a.Row, a.Variant, wantVariant[a.Row])
		}
	}

	if f.Direction() != 1 || f.Speed() != cfg.Fleet.BaseSpeed {
		t.Errorf("fresh fleet should march right at base speed, got dir=%d speed=%v", f.Direction(), f.Speed())
	}
}

func TestCreateFlatVariant(t *testing.T) {
	aliens := Create(Layout{Rows: 2, Columns: 2, SpacingX: 10, SpacingY: 10, HalfSize: 2, Variant: Flat(object.AlienBottom)})
	for _, a := range aliens {
		if a.Variant != object.AlienBottom {
			t.Errorf("expected flat bottom variant, got %v", a.Variant)
		}
	}
}

func TestSpeedScaling(t *testing.T) {
	cfg := testConfig()
	cfg.Fleet.MaxSpeed = 1000
	f := newTestFleet(cfg, firstRand{})

	removeN(f, 11)
	f.Advance(0)
	if want := cfg.Fleet.BaseSpeed * 5; !almostEqual(f.Speed(), want) {
		t.Errorf("with 11 of 55 alive expected speed %v, got %v", want, f.Speed())
	}
}

func TestSpeedCappedAtMax(t *testing.T) {
	cfg := testConfig()
	f := newTestFleet(cfg, firstRand{})

	removeN(f, 11)
	f.Advance(0)
	if want := math.Min(cfg.Fleet.BaseSpeed*5, cfg.Fleet.MaxSpeed); f.Speed() != want {
		t.Errorf("expected speed %v, got %v", want, f.Speed())
	}

	removeN(f, 1)
	f.Advance(0)
	if f.Speed() != cfg.Fleet.MaxSpeed {
		t.Errorf("last alien should be capped at %v, got %v", cfg.Fleet.MaxSpeed, f.Speed())
	}
}

func TestSpeedZeroWhenEmpty(t *testing.T) {
	f := newTestFleet(testConfig(), firstRand{})
	removeN(f, 0)

	if b := f.Advance(1); b != nil {
		t.Error("empty fleet must not fire")
	}
	if f.Speed() != 0 {
		t.Errorf("empty fleet speed should be 0, got %v", f.Speed())
	}
	if !f.IsEmpty() {
		t.Error("expected empty fleet")
	}
}

func TestCooldownScaling(t *testing.T) {
	cfg := testConfig()
	cfg.Fleet.ShootCooldown = 3.0
	cfg.Fleet.MinShootCooldown = 1.5

	tests := []struct {
		live int
		want float64
	}{
		{55, 3.0},
		{40, 3.0 * 40 / 55},
		{10, 1.5}, // 3.0*10/55 is below the floor
		{1, 1.5},
	}

	for _, tt := range tests {
		f := newTestFleet(cfg, firstRand{})
		removeN(f, tt.live)
		f.Advance(0)
		if !almostEqual(f.Cooldown(), tt.want) {
			t.Errorf("live=%d: expected cooldown %v, got %v", tt.live, tt.want, f.Cooldown())
		}
	}
}

// edgeConfig builds a 2x3 fleet whose right column sits one unit from the
// right edge.
func edgeConfig() (*config.Game, Layout) {
	cfg := testConfig()
	cfg.Fleet.BaseSpeed = 50
	cfg.Fleet.MaxSpeed = 50
	cfg.Fleet.Drop = 30
	layout := Layout{
		Rows:     2,
		Columns:  3,
		SpacingX: 60,
		SpacingY: 60,
		OriginX:  cfg.Window.Width - 131, // right edge of column 2 at width-1
		OriginY:  400,
		HalfSize: 10,
		Variant:  Flat(object.AlienMid),
	}
	return cfg, layout
}

func TestEdgeBounceDropsWholeFleetOnce(t *testing.T) {
	cfg, layout := edgeConfig()
	f := New(cfg, layout, firstRand{})

	before := make(map[*object.Alien]float64)
	for _, a := range f.Aliens() {
		before[a] = a.Y
	}

	f.Advance(0.1) // moves 5 units, both rows of column 2 cross the edge

	if f.Direction() != -1 {
		t.Fatalf("expected direction to flip to -1, got %d", f.Direction())
	}
	for _, a := range f.Aliens() {
		if got := before[a] - a.Y; got != cfg.Fleet.Drop {
			t.Errorf("alien c%d r%d dropped %v, want exactly %v", a.Column, a.Row, got, cfg.Fleet.Drop)
		}
	}

	// A frame without movement must not bounce again.
	f.Advance(0)
	if f.Direction() != -1 {
		t.Error("direction flipped again on a zero-length frame")
	}
	for _, a := range f.Aliens() {
		if got := before[a] - a.Y; got != cfg.Fleet.Drop {
			t.Errorf("alien dropped again on a zero-length frame: total %v", got)
		}
	}

	// Marching left moves every alien left.
	xs := make(map[*object.Alien]float64)
	for _, a := range f.Aliens() {
		xs[a] = a.X
	}
	f.Advance(0.1)
	for _, a := range f.Aliens() {
		if !almostEqual(xs[a]-a.X, 5) {
			t.Errorf("expected alien to move 5 left, moved %v", xs[a]-a.X)
		}
	}
}

func TestEdgeBounceLeft(t *testing.T) {
	cfg, layout := edgeConfig()
	layout.OriginX = 11 // left edge of column 0 at 1
	f := New(cfg, layout, firstRand{})

	f.direction = -1
	y := f.Aliens()[0].Y
	f.Advance(0.1)

	if f.Direction() != 1 {
		t.Errorf("expected direction to flip to 1, got %d", f.Direction())
	}
	if got := y - f.Aliens()[0].Y; got != cfg.Fleet.Drop {
		t.Errorf("expected drop %v, got %v", cfg.Fleet.Drop, got)
	}
}

func TestNoBounceAwayFromEdge(t *testing.T) {
	cfg := testConfig()
	f := newTestFleet(cfg, firstRand{})
	y := f.Aliens()[0].Y

	f.Advance(0.1)
	if f.Direction() != 1 {
		t.Error("fleet in the middle of the screen must not bounce")
	}
	if f.Aliens()[0].Y != y {
		t.Error("fleet in the middle of the screen must not drop")
	}
}

func TestShootTimerFiresFromFrontline(t *testing.T) {
	cfg := testConfig()
	f := newTestFleet(cfg, firstRand{})

	if b := f.Advance(cfg.Fleet.ShootCooldown - 0.5); b != nil {
		t.Fatal("fleet fired before its timer elapsed")
	}
	b := f.Advance(0.5)
	if b == nil {
		t.Fatal("expected the fleet to fire once the timer elapsed")
	}
	if b.Owner != object.OwnerAlien || b.VY >= 0 {
		t.Errorf("expected a downward alien bullet, got owner %v vy %v", b.Owner, b.VY)
	}

	// firstRand picks the frontline alien of column 0: the bottom row.
	front := f.Frontline()[0]
	if front.Column != 0 || front.Row != cfg.Fleet.Rows-1 {
		t.Errorf("expected frontline of column 0 to be the bottom row, got r%d", front.Row)
	}
	if b.X != front.X || b.Y != front.Box().Bottom() {
		t.Errorf("bullet should leave the shooter's bottom edge, got (%v,%v)", b.X, b.Y)
	}
	if f.ShootTimer() != f.Cooldown() {
		t.Errorf("shoot timer should reset to cooldown %v, got %v", f.Cooldown(), f.ShootTimer())
	}
}

func TestShooterSelectionDomain(t *testing.T) {
	cfg := testConfig()
	layout := Layout{
		Rows:     3,
		Columns:  3,
		SpacingX: 60,
		SpacingY: 60,
		OriginX:  200,
		OriginY:  400,
		HalfSize: 10,
		Variant:  Flat(object.AlienMid),
	}
	f := New(cfg, layout, rand.New(rand.NewSource(7)))

	// Kill the bottom alien of column 1 so its middle alien becomes the front.
	for _, a := range f.Aliens() {
		if a.Column == 1 && a.Row == 2 {
			f.Remove(a)
		}
	}
	f.Compact()

	isFront := func(a *object.Alien) bool {
		for _, other := range f.Aliens() {
			if other.Column == a.Column && other.Y < a.Y {
				return false
			}
		}
		return true
	}

	counts := make(map[int]int)
	for i := 0; i < 300; i++ {
		shooter := f.pickShooter()
		if !isFront(shooter) {
			t.Fatalf("selected alien c%d r%d is not the front of its column", shooter.Column, shooter.Row)
		}
		counts[shooter.Column]++
	}

	for col := 0; col < 3; col++ {
		if counts[col] == 0 {
			t.Errorf("column %d was never selected in 300 trials", col)
		}
	}
}

func TestHasBreached(t *testing.T) {
	cfg, layout := edgeConfig()
	layout.OriginY = 100
	layout.SpacingY = 80
	f := New(cfg, layout, firstRand{})

	// Bottom row centre at 20, bottom edge at 10.
	if f.HasBreached(0) {
		t.Fatal("fleet should not have breached yet")
	}
	if !f.HasBreached(10) {
		t.Error("bottom edge exactly at the floor counts as breached")
	}

	for _, a := range f.Aliens() {
		if a.Row == 1 {
			f.Remove(a)
		}
	}
	if f.HasBreached(10) {
		t.Error("removed aliens must not count toward a breach")
	}
}

func TestResetRestoresFormation(t *testing.T) {
	cfg, layout := edgeConfig()
	f := New(cfg, layout, firstRand{})

	f.Advance(0.1) // bounce
	removeN(f, 2)
	f.Advance(0.1)

	f.Reset()
	if f.LiveCount() != 6 || f.InitialCount() != 6 {
		t.Errorf("expected 6 aliens after reset, got %d", f.LiveCount())
	}
	if f.Direction() != 1 {
		t.Errorf("expected direction 1 after reset, got %d", f.Direction())
	}
	if f.Speed() != cfg.Fleet.BaseSpeed {
		t.Errorf("expected base speed after reset, got %v", f.Speed())
	}
	if f.ShootTimer() != cfg.Fleet.ShootCooldown {
		t.Errorf("expected shoot timer %v after reset, got %v", cfg.Fleet.ShootCooldown, f.ShootTimer())
	}
	if f.Aliens()[0].Y != layout.OriginY {
		t.Errorf("expected formation back at origin, got y=%v", f.Aliens()[0].Y)
	}
}

func TestRemoveKeepsSliceUntilCompact(t *testing.T) {
	f := newTestFleet(testConfig(), firstRand{})
	a := f.Aliens()[0]
	f.Remove(a)

	if len(f.Aliens()) != 55 {
		t.Errorf("Remove must not shrink the slice mid-scan, got %d", len(f.Aliens()))
	}
	if f.LiveCount() != 54 {
		t.Errorf("expected 54 live aliens, got %d", f.LiveCount())
	}
	f.Compact()
	if len(f.Aliens()) != 54 {
		t.Errorf("expected 54 aliens after Compact, got %d", len(f.Aliens()))
	}
}
