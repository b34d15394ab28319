package life

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lisp-ceo/gol/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors returned by constructors and mutators. Wrap sites add the
// offending values; match with errors.Is.
var (
	// ErrDimension reports a non-positive width or height.
	ErrDimension = errors.New("life: dimension must be positive")
	// ErrCoordinate reports a cell coordinate outside the grid.
	ErrCoordinate = errors.New("life: coordinate out of range")
)

// Fill selects how a freshly constructed cell buffer is populated.
type Fill int

// The available fill modes.
const (
	// FillDead leaves every cell dead.
	FillDead Fill = iota
	// FillRandom sets each cell alive with probability one half.
	FillRandom
	// FillPattern marks the cell at flat index i alive iff i%2 == 0 or
	// i%7 == 0. Deterministic, handy for reproducible demos.
	FillPattern
)

// String returns the fill mode's flag spelling.
func (f Fill) String() string {
	switch f {
	case FillRandom:
		return "random"
	case FillPattern:
		return "pattern"
	default:
		return "dead"
	}
}

// ParseFill maps a flag value to a Fill mode.
func ParseFill(s string) (Fill, error) {
	switch s {
	case "dead", "":
		return FillDead, nil
	case "random":
		return FillRandom, nil
	case "pattern":
		return FillPattern, nil
	}
	return FillDead, fmt.Errorf("life: unknown fill mode %q", s)
}

// TraceFunc observes one cell evaluation during Tick. was is the cell's
// pre-tick state, neighbors its live-neighbor count and next the state
// written for the following generation. With Threads > 1 the hook runs
// concurrently and must be safe for parallel use.
type TraceFunc func(row, col int, was Cell, neighbors int, next Cell)

// Config controls Universe construction.
type Config struct {
	Width  int
	Height int
	Fill   Fill
	// Seed initialises the universe's random source, used by random fills
	// and by the stagnation reseed.
	Seed int64
	// Threads sets how many row bands Tick evaluates concurrently. Values
	// below 2 select the sequential path.
	Threads int
	// Trace, when non-nil, observes every cell transition.
	Trace TraceFunc
}

// DefaultConfig returns the reference configuration: a 64x64 dead grid
// stepped sequentially.
func DefaultConfig() Config {
	return Config{
		Width:   64,
		Height:  64,
		Fill:    FillDead,
		Seed:    42,
		Threads: 1,
	}
}

// Universe is a toroidal Game of Life grid. All methods assume a single
// logical caller; the package does no locking.
type Universe struct {
	width  int
	height int
	cells  []Cell
	next   []Cell

	rng     *core.RNG
	threads int
	trace   TraceFunc
}

// New returns the reference universe: 64x64, every cell dead.
func New() *Universe {
	u, err := NewWithConfig(DefaultConfig())
	if err != nil {
		// DefaultConfig dimensions are valid, so this cannot happen.
		panic(err)
	}
	return u
}

// NewWithConfig builds a universe from cfg. Dimensions are validated before
// any allocation happens.
func NewWithConfig(cfg Config) (*Universe, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimension, cfg.Width, cfg.Height)
	}
	total := cfg.Width * cfg.Height
	u := &Universe{
		width:   cfg.Width,
		height:  cfg.Height,
		cells:   make([]Cell, total),
		next:    make([]Cell, total),
		rng:     core.NewRNG(cfg.Seed),
		threads: cfg.Threads,
		trace:   cfg.Trace,
	}
	switch cfg.Fill {
	case FillRandom:
		u.Randomize()
	case FillPattern:
		for i := range u.cells {
			if i%2 == 0 || i%7 == 0 {
				u.cells[i] = Alive
			}
		}
	}
	return u, nil
}

// Width returns the number of columns.
func (u *Universe) Width() int { return u.width }

// Height returns the number of rows.
func (u *Universe) Height() int { return u.height }

// Size returns both dimensions at once.
func (u *Universe) Size() core.Size {
	return core.Size{W: u.width, H: u.height}
}

// Cells exposes the live cell buffer in row-major order, without copying.
// The slice is only valid until the next mutating call; treat it as
// read-only.
func (u *Universe) Cells() []Cell { return u.cells }

// Index maps (row, col) to the flat buffer index.
func (u *Universe) Index(row, col int) int {
	return row*u.width + col
}

// Population counts the live cells.
func (u *Universe) Population() int {
	n := 0
	for _, c := range u.cells {
		n += int(c)
	}
	return n
}

// Render draws the grid as text, one glyph per cell and a newline after each
// row. The output is derived from the buffer alone, so rendering twice
// without a mutation in between yields identical strings.
func (u *Universe) Render() string {
	var b strings.Builder
	// Both glyphs are three bytes in UTF-8.
	b.Grow((u.width*3 + 1) * u.height)
	for row := 0; row < u.height; row++ {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			if c == Alive {
				b.WriteRune('◼')
			} else {
				b.WriteRune('◻')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (u *Universe) check(row, col int) error {
	if row < 0 || row >= u.height || col < 0 || col >= u.width {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrCoordinate, row, col, u.width, u.height)
	}
	return nil
}

// SetCells turns the given {row, col} cells alive. The whole batch is
// validated first; on any out-of-range pair no cell is modified.
func (u *Universe) SetCells(points [][2]int) error {
	for _, p := range points {
		if err := u.check(p[0], p[1]); err != nil {
			return err
		}
	}
	for _, p := range points {
		u.cells[u.Index(p[0], p[1])] = Alive
	}
	return nil
}

// ToggleCell flips the state of a single cell.
func (u *Universe) ToggleCell(row, col int) error {
	if err := u.check(row, col); err != nil {
		return err
	}
	u.cells[u.Index(row, col)] ^= 1
	return nil
}

// Clear kills every cell. Dimensions and the random source are untouched.
func (u *Universe) Clear() {
	for i := range u.cells {
		u.cells[i] = Dead
	}
}

// Randomize refills the grid from the universe's random source, each cell
// alive with probability one half. The stagnation reseed runs this same
// code.
func (u *Universe) Randomize() {
	for i := range u.cells {
		if u.rng.Bool() {
			u.cells[i] = Alive
		} else {
			u.cells[i] = Dead
		}
	}
}

// Reset replaces the random source with a fresh one for seed and randomizes
// the grid, giving a reproducible restart without rebuilding the universe.
func (u *Universe) Reset(seed int64) {
	u.rng = core.NewRNG(seed)
	u.Randomize()
}

// SetWidth changes the number of columns and resets every cell to dead.
// Prior contents are discarded, not clipped or preserved.
func (u *Universe) SetWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d", ErrDimension, width)
	}
	u.width = width
	u.resize()
	return nil
}

// SetHeight changes the number of rows and resets every cell to dead.
// Prior contents are discarded, not clipped or preserved.
func (u *Universe) SetHeight(height int) error {
	if height <= 0 {
		return fmt.Errorf("%w: height %d", ErrDimension, height)
	}
	u.height = height
	u.resize()
	return nil
}

func (u *Universe) resize() {
	total := u.width * u.height
	u.cells = make([]Cell, total)
	u.next = make([]Cell, total)
}

// liveNeighborCount sums the Moore neighborhood of (row, col) with toroidal
// wrap-around. The zero offset is skipped so a cell never counts itself.
func (u *Universe) liveNeighborCount(row, col int) int {
	w, h := u.width, u.height
	neighbors := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr + h) % h
			c := (col + dc + w) % w
			neighbors += int(u.cells[r*w+c])
		}
	}
	return neighbors
}

// TickResult reports what a Tick did beyond advancing the generation.
type TickResult struct {
	// Reseeded is true when the new generation reproduced the old one
	// exactly and the grid was refilled randomly to break the fixed point.
	Reseeded bool
}

// Tick advances the universe one generation. Every cell's fate is decided
// from the pre-tick buffer alone, so update order never shows. If the new
// generation is identical to the old one the universe has frozen; the buffer
// is then reseeded randomly at the current dimensions instead.
func (u *Universe) Tick() TickResult {
	if u.threads > 1 {
		u.stepParallel()
	} else {
		u.stepRows(0, u.height)
	}

	if slices.Equal(u.cells, u.next) {
		u.Randomize()
		return TickResult{Reseeded: true}
	}
	u.cells, u.next = u.next, u.cells
	return TickResult{}
}

// stepRows evaluates rows [from, to) into the scratch buffer.
func (u *Universe) stepRows(from, to int) {
	for row := from; row < to; row++ {
		for col := 0; col < u.width; col++ {
			idx := row*u.width + col
			cell := u.cells[idx]
			neighbors := u.liveNeighborCount(row, col)

			next := Dead
			if (cell == Alive && (neighbors == 2 || neighbors == 3)) ||
				(cell == Dead && neighbors == 3) {
				next = Alive
			}
			u.next[idx] = next

			if u.trace != nil {
				u.trace(row, col, cell, neighbors, next)
			}
		}
	}
}

// stepParallel splits the rows into bands, one errgroup goroutine each.
// Bands only read the current buffer and write disjoint rows of the scratch
// buffer, so the result matches the sequential path exactly.
func (u *Universe) stepParallel() {
	workers := u.threads
	if workers > u.height {
		workers = u.height
	}
	band := (u.height + workers - 1) / workers

	var eg errgroup.Group
	for from := 0; from < u.height; from += band {
		to := from + band
		if to > u.height {
			to = u.height
		}
		eg.Go(func() error {
			u.stepRows(from, to)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = eg.Wait()
}
