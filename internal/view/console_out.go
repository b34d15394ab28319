package view

import (
	"fmt"
	"io"
	"time"

	"github.com/lisp-ceo/gol/internal/runner"
)

// ConsoleOut is the headless reporter: it prints the run configuration, a
// progress line every few generations, every stagnation reseed and a final
// summary. It consumes the runner's status channel instead of registering as
// a viewer, so it works without a terminal screen.
type ConsoleOut struct {
	r         *runner.Runner
	w         io.Writer
	startTime time.Time
}

// NewConsoleOut builds a reporter writing to w.
func NewConsoleOut(r *runner.Runner, w io.Writer) *ConsoleOut {
	return &ConsoleOut{r: r, w: w}
}

// Start prints the configuration banner and marks the start time.
func (c *ConsoleOut) Start() {
	o := c.r.Options()
	_, size := c.r.Frame(nil)

	fmt.Fprintln(c.w, "Running configuration:")
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", size.W, size.H)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max steps: %v\n", o.MaxSteps)
	for _, k := range sortedKeys(o.Details) {
		fmt.Fprintf(c.w, "  %s: %v\n", k, o.Details[k])
	}

	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

// Follow drains ch until a finished status arrives, then prints the summary
// and returns that status.
func (c *ConsoleOut) Follow(ch <-chan runner.Status) runner.Status {
	reseeds := 0
	for st := range ch {
		if st.Reseeds > reseeds {
			reseeds = st.Reseeds
			fmt.Fprintf(c.w, "  Universe went stagnant, reseeded at generation %v\n", st.Generation)
		}
		if st.Mode == runner.RunStateFinished {
			totalTime := time.Since(c.startTime).Round(time.Millisecond)
			fmt.Fprintln(c.w, "\nFinished:")
			fmt.Fprintf(c.w, "  Generations: %v\n", st.Generation)
			fmt.Fprintf(c.w, "  Population: %v\n", st.Population)
			fmt.Fprintf(c.w, "  Reseeds: %v\n", st.Reseeds)
			fmt.Fprintf(c.w, "  Total time: %v\n", totalTime)
			return st
		}
		if st.Mode == runner.RunStateRun && st.Generation%10 == 0 && st.Generation > 0 {
			fmt.Fprintf(c.w, "  Generations done: %v\n", st.Generation)
		}
	}
	return runner.Status{}
}
