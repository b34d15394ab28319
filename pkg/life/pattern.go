package life

// Pattern is a named arrangement of live cells, expressed as {row, col}
// offsets from a placement origin at the pattern's top-left corner.
type Pattern struct {
	Name   string
	Coords [][2]int
}

// Canonical patterns used by the front ends and tests.
var (
	// Blinker is the period-two oscillator: three cells in a row.
	Blinker = Pattern{Name: "blinker", Coords: [][2]int{
		{0, 0}, {0, 1}, {0, 2},
	}}

	// Glider is the smallest diagonal spaceship.
	Glider = Pattern{Name: "glider", Coords: [][2]int{
		{0, 1},
		{1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}}

	// Demo is a small mixed arrangement, a block plus a tail, that evolves
	// for a while before settling. The terminal front end seeds it when no
	// fill is requested.
	Demo = Pattern{Name: "demo", Coords: [][2]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{2, 4},
		{3, 3}, {3, 4}, {3, 5},
	}}
)

// Apply stamps p onto the universe with its origin at (row, col). The whole
// pattern is validated first; on any out-of-range cell nothing is applied.
func (u *Universe) Apply(p Pattern, row, col int) error {
	pts := make([][2]int, len(p.Coords))
	for i, c := range p.Coords {
		pts[i] = [2]int{row + c[0], col + c[1]}
	}
	return u.SetCells(pts)
}
