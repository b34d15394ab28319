package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lisp-ceo/gol/internal/runner"
	"github.com/lisp-ceo/gol/internal/view"
	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/integrii/flaggy"
)

type envOptions struct {
	interactive bool
	random      bool
	fill        string
	seed        int64
	threads     int
	width       int
	height      int
	interval    time.Duration
	maxSteps    int
}

func main() {
	eo := initOptions()

	fill, err := life.ParseFill(eo.fill)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	u, err := life.NewWithConfig(life.Config{
		Width:   eo.width,
		Height:  eo.height,
		Fill:    fill,
		Seed:    eo.seed,
		Threads: eo.threads,
	})
	if err != nil {
		log.Fatal(err)
	}

	if fill == life.FillDead {
		// An empty grid reseeds on the first tick, so a plain start gets
		// the demo arrangement to evolve instead.
		if err := u.Apply(life.Demo, 0, 0); err != nil {
			log.Fatal(err)
		}
	}

	engine := "sequential"
	if eo.threads > 1 {
		engine = fmt.Sprintf("parallel(%d)", eo.threads)
	}
	opts := runner.Options{
		Interval: eo.interval,
		MaxSteps: eo.maxSteps,
		Details: map[string]string{
			"engine": engine,
			"fill":   fill.String(),
			"seed":   fmt.Sprintf("%d", eo.seed),
		},
	}

	var stateCh chan runner.Status
	if !eo.interactive {
		stateCh = make(chan runner.Status, 10)
	}

	r := runner.New(u, opts, stateCh)

	if eo.interactive {
		ui, err := view.NewConsoleUI(r)
		if err != nil {
			log.Fatal(err)
		}
		r.AddViewer(ui)
		if err := ui.Start(); err != nil {
			log.Fatal(err)
		}
		r.Close()
		return
	}

	out := view.NewConsoleOut(r, os.Stdout)
	out.Start()
	r.Run()
	out.Follow(stateCh)
	r.Close()
	close(stateCh)
}

func initOptions() *envOptions {
	eo := &envOptions{
		width:    64,
		height:   64,
		interval: runner.DefInterval,
		maxSteps: runner.DefMaxSteps,
		fill:     "dead",
		seed:     42,
		threads:  1,
	}

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&eo.width, "x", "width", "Width of the universe in cells")
	flaggy.Int(&eo.height, "y", "height", "Height of the universe in cells")
	flaggy.Duration(&eo.interval, "i", "interval", "Pause between generations, for example 150ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Limit the run to this many generations, 0 for unlimited")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start the interactive terminal screen")
	flaggy.String(&eo.fill, "f", "fill", "Initial fill [dead|random|pattern]; dead starts from the demo arrangement")
	flaggy.Bool(&eo.random, "r", "random", "Shorthand for --fill random")
	flaggy.Int64(&eo.seed, "", "seed", "Seed for the universe's random source")
	flaggy.Int(&eo.threads, "t", "threads", "Row bands stepped in parallel")
	flaggy.Parse()

	if eo.random {
		eo.fill = "random"
	}
	return eo
}
