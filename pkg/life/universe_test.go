package life

import (
	"errors"
	"slices"
	"testing"
)

func mustUniverse(t *testing.T, cfg Config) *Universe {
	t.Helper()
	u, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig(%+v): %v", cfg, err)
	}
	return u
}

// expectCells builds a fresh w x h universe with exactly the given cells
// alive, for whole-buffer comparisons.
func expectCells(t *testing.T, w, h int, points [][2]int) []Cell {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	u := mustUniverse(t, cfg)
	if err := u.SetCells(points); err != nil {
		t.Fatalf("SetCells(%v): %v", points, err)
	}
	return u.Cells()
}

func TestNewDefaults(t *testing.T) {
	u := New()
	if u.Width() != 64 || u.Height() != 64 {
		t.Fatalf("New() dimensions = %dx%d, want 64x64", u.Width(), u.Height())
	}
	if len(u.Cells()) != 64*64 {
		t.Fatalf("buffer length = %d, want %d", len(u.Cells()), 64*64)
	}
	if p := u.Population(); p != 0 {
		t.Fatalf("fresh universe population = %d, want 0", p)
	}
}

func TestNewWithConfigRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 64}, {64, 0}, {-1, 5}, {5, -3}, {0, 0}} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height = dims[0], dims[1]
		u, err := NewWithConfig(cfg)
		if !errors.Is(err, ErrDimension) {
			t.Fatalf("dims %v: error = %v, want ErrDimension", dims, err)
		}
		if u != nil {
			t.Fatalf("dims %v: got a universe despite the error", dims)
		}
	}
}

func TestNeighborWrapAround(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	u := mustUniverse(t, cfg)
	if err := u.SetCells([][2]int{{0, 0}}); err != nil {
		t.Fatal(err)
	}

	// The live corner is a wrapped neighbor of the opposite corner and of
	// every cell adjacent across an edge.
	for _, p := range [][2]int{{4, 4}, {4, 0}, {4, 1}, {0, 4}, {0, 1}, {1, 4}, {1, 0}, {1, 1}} {
		if n := u.liveNeighborCount(p[0], p[1]); n != 1 {
			t.Fatalf("neighbors of (%d,%d) = %d, want 1", p[0], p[1], n)
		}
	}
	// A cell never counts itself.
	if n := u.liveNeighborCount(0, 0); n != 0 {
		t.Fatalf("neighbors of the live cell itself = %d, want 0", n)
	}
	// Far cells see nothing.
	if n := u.liveNeighborCount(2, 2); n != 0 {
		t.Fatalf("neighbors of (2,2) = %d, want 0", n)
	}
}

func TestBlinkerOscillates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	u := mustUniverse(t, cfg)
	if err := u.Apply(Blinker, 2, 1); err != nil {
		t.Fatal(err)
	}

	horizontal := slices.Clone(u.Cells())
	vertical := expectCells(t, 5, 5, [][2]int{{1, 2}, {2, 2}, {3, 2}})

	if res := u.Tick(); res.Reseeded {
		t.Fatal("blinker tick reported a reseed")
	}
	if !slices.Equal(u.Cells(), vertical) {
		t.Fatalf("after one tick:\n%swant vertical phase", u.Render())
	}

	if res := u.Tick(); res.Reseeded {
		t.Fatal("blinker tick reported a reseed")
	}
	if !slices.Equal(u.Cells(), horizontal) {
		t.Fatalf("after two ticks:\n%swant the original horizontal phase", u.Render())
	}
}

func TestGliderTravels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	u := mustUniverse(t, cfg)
	if err := u.Apply(Glider, 1, 1); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		if res := u.Tick(); res.Reseeded {
			t.Fatalf("tick %d reported a reseed", i+1)
		}
		if p := u.Population(); p != 5 {
			t.Fatalf("population after tick %d = %d, want 5", i+1, p)
		}
	}

	// Four generations translate the glider one cell down and one right.
	moved := mustUniverse(t, cfg)
	if err := moved.Apply(Glider, 2, 2); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(u.Cells(), moved.Cells()) {
		t.Fatalf("after four ticks:\n%swant:\n%s", u.Render(), moved.Render())
	}
}

func TestStillLifeTriggersReseed(t *testing.T) {
	type event struct {
		row, col  int
		was       Cell
		neighbors int
		next      Cell
	}
	var events []event

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Trace = func(row, col int, was Cell, neighbors int, next Cell) {
		events = append(events, event{row, col, was, neighbors, next})
	}
	u := mustUniverse(t, cfg)

	// A block: every member has exactly three live neighbors, so the rule
	// alone would keep the grid frozen forever.
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	if err := u.SetCells(block); err != nil {
		t.Fatal(err)
	}

	res := u.Tick()
	if !res.Reseeded {
		t.Fatal("a still life must trigger the stagnation reseed")
	}
	if u.Width() != 5 || u.Height() != 5 || len(u.Cells()) != 25 {
		t.Fatalf("reseed changed the geometry: %dx%d, %d cells", u.Width(), u.Height(), len(u.Cells()))
	}

	// The transition itself preserved the block; only the fixed-point
	// policy replaced the buffer afterwards.
	if len(events) != 25 {
		t.Fatalf("trace saw %d evaluations, want 25", len(events))
	}
	survivors := 0
	for _, e := range events {
		if e.next == Alive {
			survivors++
		}
		for _, b := range block {
			if e.row == b[0] && e.col == b[1] {
				if e.was != Alive || e.neighbors != 3 || e.next != Alive {
					t.Fatalf("block cell (%d,%d): was %v, %d neighbors, next %v", e.row, e.col, e.was, e.neighbors, e.next)
				}
			}
		}
	}
	if survivors != 4 {
		t.Fatalf("rule kept %d cells alive, want the 4 block cells", survivors)
	}
}

func TestEmptyUniverseReseeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	u := mustUniverse(t, cfg)

	// All dead is a fixed point too.
	if res := u.Tick(); !res.Reseeded {
		t.Fatal("an empty universe must reseed on the first tick")
	}
	if len(u.Cells()) != 16 {
		t.Fatalf("buffer length after reseed = %d, want 16", len(u.Cells()))
	}
}

func TestSetCellsPrecision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	u := mustUniverse(t, cfg)

	points := [][2]int{{0, 0}, {3, 4}, {5, 5}}
	if err := u.SetCells(points); err != nil {
		t.Fatal(err)
	}
	want := map[int]bool{
		u.Index(0, 0): true,
		u.Index(3, 4): true,
		u.Index(5, 5): true,
	}
	for i, c := range u.Cells() {
		if want[i] && c != Alive {
			t.Fatalf("cell %d should be alive", i)
		}
		if !want[i] && c != Dead {
			t.Fatalf("cell %d should be dead", i)
		}
	}
}

func TestSetCellsRejectsWholeBatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	u := mustUniverse(t, cfg)

	before := slices.Clone(u.Cells())
	err := u.SetCells([][2]int{{0, 0}, {1, 1}, {4, 0}})
	if !errors.Is(err, ErrCoordinate) {
		t.Fatalf("error = %v, want ErrCoordinate", err)
	}
	if !slices.Equal(u.Cells(), before) {
		t.Fatal("a rejected batch must leave the buffer untouched")
	}
}

func TestToggleCell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	u := mustUniverse(t, cfg)

	if err := u.ToggleCell(1, 2); err != nil {
		t.Fatal(err)
	}
	if u.Cells()[u.Index(1, 2)] != Alive {
		t.Fatal("toggle did not raise the cell")
	}
	if err := u.ToggleCell(1, 2); err != nil {
		t.Fatal(err)
	}
	if u.Cells()[u.Index(1, 2)] != Dead {
		t.Fatal("second toggle did not lower the cell")
	}
	if err := u.ToggleCell(3, 0); !errors.Is(err, ErrCoordinate) {
		t.Fatalf("error = %v, want ErrCoordinate", err)
	}
	if err := u.ToggleCell(0, -1); !errors.Is(err, ErrCoordinate) {
		t.Fatalf("error = %v, want ErrCoordinate", err)
	}
}

func TestRender(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 2
	u := mustUniverse(t, cfg)
	if err := u.SetCells([][2]int{{0, 0}, {1, 2}}); err != nil {
		t.Fatal(err)
	}

	want := "◼◻◻\n◻◻◼\n"
	if got := u.Render(); got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	// Rendering reads, never mutates.
	if again := u.Render(); again != want {
		t.Fatalf("second Render() = %q, want %q", again, want)
	}
}

func TestCellsIsALiveView(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 3, 3
	u := mustUniverse(t, cfg)

	view := u.Cells()
	if err := u.SetCells([][2]int{{0, 0}}); err != nil {
		t.Fatal(err)
	}
	if view[0] != Alive {
		t.Fatal("Cells must expose the backing buffer, not a copy")
	}
}

func TestResizeResetsCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Fill = FillRandom
	u := mustUniverse(t, cfg)
	if u.Population() == 0 {
		t.Fatal("random fill produced an empty grid")
	}

	if err := u.SetWidth(10); err != nil {
		t.Fatal(err)
	}
	if u.Width() != 10 || u.Height() != 8 {
		t.Fatalf("dimensions = %dx%d, want 10x8", u.Width(), u.Height())
	}
	if len(u.Cells()) != 80 {
		t.Fatalf("buffer length = %d, want 80", len(u.Cells()))
	}
	if p := u.Population(); p != 0 {
		t.Fatalf("population after resize = %d, want 0", p)
	}

	u.Randomize()
	if err := u.SetHeight(3); err != nil {
		t.Fatal(err)
	}
	if len(u.Cells()) != 30 {
		t.Fatalf("buffer length = %d, want 30", len(u.Cells()))
	}
	if p := u.Population(); p != 0 {
		t.Fatalf("population after resize = %d, want 0", p)
	}

	if err := u.SetWidth(0); !errors.Is(err, ErrDimension) {
		t.Fatalf("SetWidth(0) error = %v, want ErrDimension", err)
	}
	if err := u.SetHeight(-2); !errors.Is(err, ErrDimension) {
		t.Fatalf("SetHeight(-2) error = %v, want ErrDimension", err)
	}
}

func TestBufferLengthInvariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 7, 5
	cfg.Fill = FillPattern
	u := mustUniverse(t, cfg)

	checkLen := func(stage string) {
		t.Helper()
		if len(u.Cells()) != u.Width()*u.Height() {
			t.Fatalf("%s: buffer length %d != %d * %d", stage, len(u.Cells()), u.Width(), u.Height())
		}
	}

	checkLen("after construction")
	u.Tick()
	checkLen("after tick")
	u.Randomize()
	checkLen("after randomize")
	u.Clear()
	u.Tick() // fixed point, reseeds
	checkLen("after reseed")
	if err := u.SetWidth(11); err != nil {
		t.Fatal(err)
	}
	checkLen("after resize")
}

func TestSeedDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.Fill = FillRandom
	cfg.Seed = 7

	a := mustUniverse(t, cfg)
	b := mustUniverse(t, cfg)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed produced different initial grids")
	}
	for i := 0; i < 20; i++ {
		ra, rb := a.Tick(), b.Tick()
		if ra != rb {
			t.Fatalf("tick %d: results diverged (%+v vs %+v)", i+1, ra, rb)
		}
		if !slices.Equal(a.Cells(), b.Cells()) {
			t.Fatalf("tick %d: grids diverged", i+1)
		}
	}

	cfg.Seed = 8
	c := mustUniverse(t, cfg)
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds produced identical grids")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	base := DefaultConfig()
	base.Width, base.Height = 48, 36
	base.Fill = FillRandom
	base.Seed = 99

	parCfg := base
	parCfg.Threads = 4

	seq := mustUniverse(t, base)
	par := mustUniverse(t, parCfg)
	if !slices.Equal(seq.Cells(), par.Cells()) {
		t.Fatal("initial grids differ")
	}

	for turn := 1; turn <= 50; turn++ {
		rs, rp := seq.Tick(), par.Tick()
		if rs != rp {
			t.Fatalf("turn %d: results diverged (%+v vs %+v)", turn, rs, rp)
		}
		if !slices.Equal(seq.Cells(), par.Cells()) {
			t.Fatalf("turn %d: parallel grid diverged from sequential", turn)
		}
	}
}

func TestParallelMoreThreadsThanRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 5, 3
	cfg.Threads = 16
	u := mustUniverse(t, cfg)
	if err := u.Apply(Blinker, 1, 1); err != nil {
		t.Fatal(err)
	}

	want := expectCells(t, 5, 3, [][2]int{{0, 2}, {1, 2}, {2, 2}})
	if res := u.Tick(); res.Reseeded {
		t.Fatal("unexpected reseed")
	}
	if !slices.Equal(u.Cells(), want) {
		t.Fatalf("got:\n%s", u.Render())
	}
}

func TestFillPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 8, 4
	cfg.Fill = FillPattern
	u := mustUniverse(t, cfg)

	for i, c := range u.Cells() {
		want := Dead
		if i%2 == 0 || i%7 == 0 {
			want = Alive
		}
		if c != want {
			t.Fatalf("cell %d = %v, want %v", i, c, want)
		}
	}
}

func TestParseFill(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Fill
	}{
		{"dead", FillDead},
		{"", FillDead},
		{"random", FillRandom},
		{"pattern", FillPattern},
	} {
		got, err := ParseFill(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseFill(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseFill("plasma"); err == nil {
		t.Fatal("ParseFill accepted an unknown mode")
	}
}

func TestFillRoundTrip(t *testing.T) {
	for _, f := range []Fill{FillDead, FillRandom, FillPattern} {
		got, err := ParseFill(f.String())
		if err != nil || got != f {
			t.Fatalf("round trip of %v: got %v, %v", f, got, err)
		}
	}
}

func TestResetReproducesSeededFill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	cfg.Fill = FillRandom
	cfg.Seed = 7
	fresh := mustUniverse(t, cfg)

	other := DefaultConfig()
	other.Width, other.Height = 12, 12
	other.Seed = 1
	u := mustUniverse(t, other)
	u.Tick() // walk the state away from the initial one
	u.Reset(7)

	if !slices.Equal(u.Cells(), fresh.Cells()) {
		t.Fatal("Reset(seed) must reproduce a fresh seeded random fill")
	}
}

func TestClear(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.Fill = FillRandom
	u := mustUniverse(t, cfg)
	if u.Population() == 0 {
		t.Fatal("random fill produced an empty grid")
	}
	u.Clear()
	if p := u.Population(); p != 0 {
		t.Fatalf("population after Clear = %d, want 0", p)
	}
	if u.Width() != 6 || u.Height() != 6 {
		t.Fatalf("Clear changed dimensions to %dx%d", u.Width(), u.Height())
	}
}
