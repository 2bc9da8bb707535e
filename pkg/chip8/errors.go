package chip8

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrCapacity       = errors.New("program image too large")
	ErrOutOfBounds    = errors.New("memory access out of bounds")
	ErrStackUnderflow = errors.New("return with empty call stack")
	ErrUnknownOpcode  = errors.New("unknown opcode")

	// ErrUnknownSubOpcode is returned for an unrecognised pattern inside a
	// known family. errors.Is matches it against ErrUnknownOpcode too.
	ErrUnknownSubOpcode = fmt.Errorf("%w: unrecognised sub-opcode", ErrUnknownOpcode)
)

// ExecError reports a fatal engine failure together with the instruction
// that caused it.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("pc 0x%04X opcode 0x%04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// LogValue groups the fault location so hosts can log the error as one attribute.
func (e *ExecError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("pc", fmt.Sprintf("0x%04X", e.PC)),
		slog.String("opcode", fmt.Sprintf("0x%04X", e.Opcode)),
		slog.String("cause", e.Err.Error()))
}
