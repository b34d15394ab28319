// Package runner drives a life.Universe from a single control goroutine.
//
// The universe itself does no locking, so every access funnels through the
// runner's control loop. Observers never touch the universe directly; they
// read Status snapshots and cell frames copied out under a mutex.
package runner

import (
	"sync"
	"time"

	"github.com/lisp-ceo/gol/pkg/core"
	"github.com/lisp-ceo/gol/pkg/life"
)

// RunState is what the runner is doing at a concrete moment.
type RunState int

// The runner states.
const (
	RunStateManual RunState = iota
	RunStateStep
	RunStateRun
	RunStateFinished
)

// String returns a short label for status displays.
func (s RunState) String() string {
	switch s {
	case RunStateStep:
		return "stepping"
	case RunStateRun:
		return "running"
	case RunStateFinished:
		return "finished"
	default:
		return "manual"
	}
}

// Default pacing options.
const (
	DefInterval = 100 * time.Millisecond
	DefMaxSteps = 1000
)

// Options configures the run loop.
type Options struct {
	// Interval is the pause between generations in run mode. Zero means
	// step as fast as the universe allows.
	Interval time.Duration
	// MaxSteps finishes the run after this many generations. Zero means
	// run until stopped.
	MaxSteps int
	// Details carries free-form configuration labels for the front ends.
	Details map[string]string
}

// DefaultOptions returns the reference pacing: ten generations per second,
// stopping after a thousand.
func DefaultOptions() Options {
	return Options{Interval: DefInterval, MaxSteps: DefMaxSteps}
}

// Status is a snapshot of the simulation published to observers.
type Status struct {
	Generation int
	Population int
	// Reseeds counts stagnation reseeds since the last clear.
	Reseeds  int
	StepTime time.Duration
	Mode     RunState
}

// Viewer is anything that wants a callback whenever the universe changes.
// Refresh is called from the control goroutine and must not block for long.
type Viewer interface {
	Refresh()
}

// Runner owns a Universe and serialises every access to it through one
// control goroutine, so the universe only ever sees a single caller.
type Runner struct {
	u    *life.Universe
	opts Options

	mu        sync.Mutex
	state     Status
	frame     []life.Cell
	frameSize core.Size
	views     []Viewer

	stateCh   chan Status
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

// New wraps u and starts the control loop. stateCh may be nil; when it is
// not, every state transition is published to it and the receiver must keep
// draining until Close.
func New(u *life.Universe, opts Options, stateCh chan Status) *Runner {
	r := &Runner{
		u:         u,
		opts:      opts,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
	}
	r.state.Population = u.Population()
	r.snapshot()
	go r.loop()
	return r
}

// Options returns the pacing configuration the runner was built with.
func (r *Runner) Options() Options { return r.opts }

// Status returns the latest simulation snapshot.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Frame copies the latest cell snapshot into dst, growing it as needed, and
// returns it together with its dimensions. The returned slice belongs to the
// caller.
func (r *Runner) Frame(dst []life.Cell) ([]life.Cell, core.Size) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cap(dst) < len(r.frame) {
		dst = make([]life.Cell, len(r.frame))
	}
	dst = dst[:len(r.frame)]
	copy(dst, r.frame)
	return dst, r.frameSize
}

// AddViewer registers v and refreshes it immediately so it can draw the
// initial state.
func (r *Runner) AddViewer(v Viewer) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
	v.Refresh()
}

// Run starts free-running simulation. Returns immediately.
func (r *Runner) Run() { r.enqueue(r.startRun) }

// Stop leaves run mode. Returns immediately.
func (r *Runner) Stop() { r.enqueue(r.stop) }

// Step advances exactly one generation. Returns immediately.
func (r *Runner) Step() { r.enqueue(r.step) }

// Clear kills every cell and resets the counters. Returns immediately.
func (r *Runner) Clear() { r.enqueue(r.clear) }

// Randomize refills the grid randomly while the simulation is not running.
// Returns immediately.
func (r *Runner) Randomize() { r.enqueue(r.randomize) }

// Toggle flips one cell. Out-of-range coordinates are ignored, so views can
// forward clicks without their own bounds checks. Returns immediately.
func (r *Runner) Toggle(row, col int) {
	r.enqueue(func() { r.toggle(row, col) })
}

// Close stops the control loop. Commands issued after Close are dropped.
func (r *Runner) Close() {
	r.closeOnce.Do(func() { close(r.closeCh) })
}

func (r *Runner) enqueue(cmd func()) {
	select {
	case r.controlCh <- cmd:
	case <-r.closeCh:
	}
}

// loop executes queued commands until Close. Everything that touches the
// universe runs here.
func (r *Runner) loop() {
	for {
		select {
		case cmd := <-r.controlCh:
			cmd()
		case <-r.closeCh:
			return
		}
	}
}

func (r *Runner) mode() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Mode
}

func (r *Runner) setMode(to RunState) Status {
	r.mu.Lock()
	r.state.Mode = to
	st := r.state
	r.mu.Unlock()
	return st
}

// startRun flips to run mode and spawns the pacing goroutine. The steps
// themselves still execute on the control loop; the pacer only schedules
// them and waits for each to land.
func (r *Runner) startRun() {
	switch r.mode() {
	case RunStateRun, RunStateFinished:
		return
	}
	r.publish(r.setMode(RunStateRun))
	r.refreshViews()

	go func() {
		// Buffered so the control loop never blocks handing a step back
		// after the pacer has already exited via closeCh.
		done := make(chan struct{}, 1)
		step := func() {
			// A stop may have landed while this was queued.
			if r.mode() == RunStateRun {
				r.step()
			}
			done <- struct{}{}
		}
		for r.mode() == RunStateRun {
			select {
			case r.controlCh <- step:
				select {
				case <-done:
				case <-r.closeCh:
					return
				}
			case <-r.closeCh:
				return
			}
			if r.opts.Interval > 0 {
				time.Sleep(r.opts.Interval)
			}
		}
	}()
}

func (r *Runner) stop() {
	if r.mode() != RunStateRun {
		return
	}
	r.publish(r.setMode(RunStateManual))
	r.refreshViews()
}

// step advances one generation and records how long it took. The transient
// stepping mode is visible to views polling Status mid-step.
func (r *Runner) step() {
	r.mu.Lock()
	if r.state.Mode == RunStateFinished {
		r.mu.Unlock()
		return
	}
	prior := r.state.Mode
	r.state.Mode = RunStateStep
	r.mu.Unlock()

	start := time.Now()
	res := r.u.Tick()
	elapsed := time.Since(start)

	r.mu.Lock()
	r.state.Generation++
	r.state.Population = r.u.Population()
	r.state.StepTime = elapsed
	if res.Reseeded {
		r.state.Reseeds++
	}
	if r.opts.MaxSteps > 0 && r.state.Generation >= r.opts.MaxSteps {
		r.state.Mode = RunStateFinished
	} else {
		r.state.Mode = prior
	}
	st := r.state
	r.mu.Unlock()

	r.snapshot()
	r.publish(st)
	r.refreshViews()
}

func (r *Runner) clear() {
	r.u.Clear()
	r.mu.Lock()
	r.state = Status{Mode: RunStateManual}
	st := r.state
	r.mu.Unlock()

	r.snapshot()
	r.publish(st)
	r.refreshViews()
}

func (r *Runner) randomize() {
	switch r.mode() {
	case RunStateManual, RunStateFinished:
	default:
		return
	}
	r.u.Randomize()
	r.mu.Lock()
	r.state.Population = r.u.Population()
	r.mu.Unlock()

	r.snapshot()
	r.refreshViews()
}

func (r *Runner) toggle(row, col int) {
	if err := r.u.ToggleCell(row, col); err != nil {
		return
	}
	r.mu.Lock()
	r.state.Population = r.u.Population()
	r.mu.Unlock()

	r.snapshot()
	r.refreshViews()
}

// snapshot copies the cell buffer out of the universe so observers on other
// goroutines never read it live.
func (r *Runner) snapshot() {
	size := r.u.Size()
	r.mu.Lock()
	if cap(r.frame) < size.Area() {
		r.frame = make([]life.Cell, size.Area())
	}
	r.frame = r.frame[:size.Area()]
	copy(r.frame, r.u.Cells())
	r.frameSize = size
	r.mu.Unlock()
}

func (r *Runner) publish(st Status) {
	if r.stateCh == nil {
		return
	}
	select {
	case r.stateCh <- st:
	case <-r.closeCh:
	}
}

func (r *Runner) refreshViews() {
	r.mu.Lock()
	views := make([]Viewer, len(r.views))
	copy(views, r.views)
	r.mu.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
