package core

import "time"

// maxBacklog caps how many pending steps can accumulate. A long stall, such
// as a dragged window or a debugger pause, then costs at most this many
// catch-up steps instead of a burst proportional to the stall.
const maxBacklog = 4

// FixedStep converts wall-clock time into a steady stream of simulation
// steps, decoupling the generation rate from the caller's frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
// The first ShouldStep call fires immediately.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the step rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Reset discards accumulated time. Call it when resuming from a pause so the
// simulation does not sprint to catch up.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one step.
// Call it in a loop; each true consumes one step's worth of accumulated time.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if limit := maxBacklog * f.step; f.accumulator > limit {
		f.accumulator = limit
	}
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
