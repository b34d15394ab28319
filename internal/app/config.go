package app

import "github.com/integrii/flaggy"

// Config represents the command-line parameters for the GUI front end.
type Config struct {
	Width   int
	Height  int
	Scale   int
	TPS     int
	Seed    int64
	Threads int
	Fill    string
}

// NewConfig returns a Config populated with sensible defaults: the reference
// 64x64 universe at 8x zoom, ten generations per second.
func NewConfig() *Config {
	return &Config{
		Width:   64,
		Height:  64,
		Scale:   8,
		TPS:     10,
		Seed:    42,
		Threads: 1,
		Fill:    "pattern",
	}
}

// Bind attaches the configuration to the global flaggy parser.
func (c *Config) Bind() {
	flaggy.Int(&c.Width, "x", "width", "Width of the universe in cells")
	flaggy.Int(&c.Height, "y", "height", "Height of the universe in cells")
	flaggy.Int(&c.Scale, "", "scale", "Pixel scale multiplier")
	flaggy.Int(&c.TPS, "", "tps", "Generations per second")
	flaggy.Int64(&c.Seed, "", "seed", "Seed for the universe's random source")
	flaggy.Int(&c.Threads, "t", "threads", "Row bands stepped in parallel")
	flaggy.String(&c.Fill, "f", "fill", "Initial fill [dead|random|pattern]")
}
