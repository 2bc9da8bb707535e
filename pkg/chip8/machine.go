// Package chip8 implements the CHIP-8 interpreter core: memory, registers,
// stack, framebuffer, timers and the keypad wait state.
package chip8

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/grid"
)

const (
	MemorySize   = 4096
	ProgramStart = 0x200
	MaxROMSize   = MemorySize - ProgramStart

	Width  = 64
	Height = 32

	NumRegisters = 16
	NumKeys      = 16

	// FlagRegister is VF, overwritten by carry, borrow, shift and collision results.
	FlagRegister = 0xF
)

// RunState reports whether the machine is executing or parked on FX0A.
type RunState int

const (
	Running RunState = iota
	WaitingForKey
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting-for-key"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

type Machine struct {
	Memory [MemorySize]byte

	V  [NumRegisters]byte
	I  uint16
	PC uint16

	Stack []uint16

	Display [Height][Width]byte

	DelayTimer byte
	SoundTimer byte

	// Keys is written by the host before each Step.
	Keys [NumKeys]bool

	// PendingOpcode holds the FX0A instruction while waiting for a key press.
	// Zero means the machine is running.
	PendingOpcode uint16

	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithRand sets the random source used by CXNN.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) {
		m.rng = r
	}
}

// WithLogger enables per-instruction debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		m.logger = l
	}
}

// New creates a machine in the full reset state with the font seeded at
// FontAddress and PC at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.Reset()
	return m
}

// Load fully resets the machine and copies image to ProgramStart. An image
// larger than MaxROMSize is rejected before any state is touched.
func (m *Machine) Load(image []byte) error {
	if len(image)+ProgramStart > MemorySize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrCapacity, len(image), MaxROMSize)
	}
	m.Reset()
	copy(m.Memory[ProgramStart:], image)
	return nil
}

// Reset zeroes all state including memory and reseeds the font.
func (m *Machine) Reset() {
	m.Memory = [MemorySize]byte{}
	m.Restart()
	copy(m.Memory[FontAddress:], fontSet[:])
}

// Restart clears everything except memory so the loaded program runs again
// from ProgramStart.
func (m *Machine) Restart() {
	m.V = [NumRegisters]byte{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack = m.Stack[:0]
	m.Display = [Height][Width]byte{}
	m.Keys = [NumKeys]bool{}
	m.DelayTimer = 0
	m.SoundTimer = 0
	m.PendingOpcode = 0
}

// TickTimers decrements the delay and sound timers, stopping at zero.
func (m *Machine) TickTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// SoundActive reports whether the host should be playing the tone.
func (m *Machine) SoundActive() bool {
	return m.SoundTimer > 0
}

func (m *Machine) State() RunState {
	if m.PendingOpcode != 0 {
		return WaitingForKey
	}
	return Running
}

// SetKey records the pressed state of key k. Indices outside 0x0-0xF are ignored.
func (m *Machine) SetKey(k int, pressed bool) {
	if k >= 0 && k < NumKeys {
		m.Keys[k] = pressed
	}
}

func (m *Machine) SetKeys(keys [NumKeys]bool) {
	m.Keys = keys
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (m *Machine) Pixel(x, y int) bool {
	return m.Display[grid.Wrap(y, Height)][grid.Wrap(x, Width)]&1 != 0
}

// Framebuffer returns a copy of the display so a host can render it while
// the machine keeps stepping.
func (m *Machine) Framebuffer() [Height][Width]byte {
	return m.Display
}

// NextOpcode returns the instruction the next Step will execute without
// changing any state.
func (m *Machine) NextOpcode() (uint16, error) {
	if m.PendingOpcode != 0 {
		return m.PendingOpcode, nil
	}
	if int(m.PC)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetch at 0x%04X", ErrOutOfBounds, m.PC)
	}
	return uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1]), nil
}

func (m *Machine) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC=%04X I=%04X DT=%02X ST=%02X SP=%d %s\n",
		m.PC, m.I, m.DelayTimer, m.SoundTimer, len(m.Stack), m.State())
	for i := 0; i < NumRegisters/2; i++ {
		fmt.Fprintf(&b, "V%X=%02X V%X=%02X\n", i, m.V[i], i+8, m.V[i+8])
	}
	return b.String()
}
