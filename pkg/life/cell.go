// Package life implements Conway's Game of Life on a toroidal grid.
//
// A Universe owns a flat row-major cell buffer and advances it one
// generation at a time. When a generation reproduces itself exactly the
// universe reseeds randomly instead of freezing, so long runs always keep
// moving. The package performs no locking; a Universe expects a single
// logical caller.
package life

// Cell is the state of one grid position. The numeric values are part of the
// contract: Dead is 0 and Alive is 1, so cells can be summed directly when
// counting neighbors.
type Cell uint8

// The two cell states.
const (
	Dead  Cell = 0
	Alive Cell = 1
)

// String returns the state name, for diagnostics and trace output.
func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}
