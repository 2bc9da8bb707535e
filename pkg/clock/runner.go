package clock

import "time"

// Machine is the part of the interpreter a Runner drives.
type Machine interface {
	Step() error
	TickTimers()
}

// Runner couples a Clock to a Machine.
type Runner struct {
	Machine Machine
	Clock   *Clock

	// Steps and Ticks count the work done since the runner was created.
	Steps uint64
	Ticks uint64
}

func NewRunner(m Machine, c *Clock) *Runner {
	return &Runner{Machine: m, Clock: c}
}

// Frame runs the instruction steps and timer ticks due after dt. Timer ticks
// are interleaved evenly with the steps. It stops at the first step error and
// returns it unchanged; the host decides whether to halt or reset.
func (r *Runner) Frame(dt time.Duration) error {
	steps, ticks := r.Clock.Advance(dt)
	return r.run(steps, ticks)
}

// RunCycles executes exactly n steps, ticking timers at the clock ratio. It
// is used by headless hosts that do not pace against wall time. The ratio
// is kept across calls, so running in chunks ticks as often as one call.
func (r *Runner) RunCycles(n int) error {
	per := int(r.Clock.TickPeriod() / r.Clock.StepPeriod())
	if per < 1 {
		per = 1
	}
	for i := 0; i < n; i++ {
		if err := r.Machine.Step(); err != nil {
			return err
		}
		r.Steps++
		if r.Steps%uint64(per) == 0 {
			r.Machine.TickTimers()
			r.Ticks++
		}
	}
	return nil
}

func (r *Runner) run(steps, ticks int) error {
	done := 0
	for i := 0; i < steps; i++ {
		if err := r.Machine.Step(); err != nil {
			return err
		}
		r.Steps++
		for done < ticks && (done+1)*steps <= (i+1)*ticks {
			r.Machine.TickTimers()
			r.Ticks++
			done++
		}
	}
	for ; done < ticks; done++ {
		r.Machine.TickTimers()
		r.Ticks++
	}
	return nil
}
