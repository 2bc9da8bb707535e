// Package clock paces the interpreter from a host frame loop: instructions
// at one fixed rate and timers at another, each with its own accumulator.
package clock

import (
	"time"
)

const (
	DefaultInstructionHz = 500
	DefaultTimerHz       = 60

	// DefaultMaxFrame bounds the time credited by one Advance call.
	DefaultMaxFrame = 250 * time.Millisecond
)

type Clock struct {
	stepPeriod time.Duration
	tickPeriod time.Duration

	stepAcc time.Duration
	tickAcc time.Duration

	// MaxFrame caps dt in Advance so a stalled host does not replay
	// seconds of instructions at once. Zero disables the cap.
	MaxFrame time.Duration
}

// New returns a clock for the given rates. Non-positive rates fall back to
// the defaults.
func New(instructionHz, timerHz int) *Clock {
	if instructionHz <= 0 {
		instructionHz = DefaultInstructionHz
	}
	if timerHz <= 0 {
		timerHz = DefaultTimerHz
	}
	return &Clock{
		stepPeriod: time.Second / time.Duration(instructionHz),
		tickPeriod: time.Second / time.Duration(timerHz),
		MaxFrame:   DefaultMaxFrame,
	}
}

// Advance credits dt of wall time and returns how many instruction steps
// and timer ticks are now due.
func (c *Clock) Advance(dt time.Duration) (steps, ticks int) {
	if dt <= 0 {
		return 0, 0
	}
	if c.MaxFrame > 0 && dt > c.MaxFrame {
		dt = c.MaxFrame
	}

	c.stepAcc += dt
	c.tickAcc += dt

	steps = int(c.stepAcc / c.stepPeriod)
	c.stepAcc -= time.Duration(steps) * c.stepPeriod

	ticks = int(c.tickAcc / c.tickPeriod)
	c.tickAcc -= time.Duration(ticks) * c.tickPeriod
	return steps, ticks
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.stepAcc = 0
	c.tickAcc = 0
}

func (c *Clock) StepPeriod() time.Duration { return c.stepPeriod }
func (c *Clock) TickPeriod() time.Duration { return c.tickPeriod }
