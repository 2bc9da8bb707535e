package chip8

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Step executes one instruction. While waiting for a key the pending FX0A is
// executed again and PC does not move. Every returned error is fatal for the
// current run.
func (m *Machine) Step() error {
	pc := m.PC
	opcode, err := m.fetch()
	if err != nil {
		return &ExecError{PC: pc, Opcode: opcode, Err: err}
	}

	in, err := Decode(opcode)
	if err != nil {
		return &ExecError{PC: pc, Opcode: opcode, Err: err}
	}

	if m.logger.Enabled(context.Background(), log.DebugLevel) {
		m.logger.Debug("exec",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.Stringer("instr", in.Op))
	}

	if err := m.execute(in); err != nil {
		return &ExecError{PC: pc, Opcode: opcode, Err: err}
	}
	return nil
}

func (m *Machine) fetch() (uint16, error) {
	if m.PendingOpcode != 0 {
		return m.PendingOpcode, nil
	}
	if int(m.PC)+1 >= MemorySize {
		return 0, fmt.Errorf("%w: fetch at 0x%04X", ErrOutOfBounds, m.PC)
	}
	opcode := uint16(m.Memory[m.PC])<<8 | uint16(m.Memory[m.PC+1])
	m.PC += 2
	return opcode, nil
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 2
	}
}

func (m *Machine) execute(in Instruction) error {
	vx := m.V[in.X]
	vy := m.V[in.Y]

	switch in.Op {
	case OpCLS:
		m.Display = [Height][Width]byte{}

	case OpRET:
		if len(m.Stack) == 0 {
			return ErrStackUnderflow
		}
		m.PC = m.Stack[len(m.Stack)-1]
		m.Stack = m.Stack[:len(m.Stack)-1]

	case OpJP:
		m.PC = in.NNN

	case OpCALL:
		m.Stack = append(m.Stack, m.PC)
		m.PC = in.NNN

	case OpSEImm:
		m.skipIf(vx == in.NN)

	case OpSNEImm:
		m.skipIf(vx != in.NN)

	case OpSEReg:
		m.skipIf(vx == vy)

	case OpSNEReg:
		m.skipIf(vx != vy)

	case OpLDImm:
		m.V[in.X] = in.NN

	case OpADDImm:
		m.V[in.X] = vx + in.NN

	case OpLDReg:
		m.V[in.X] = vy

	case OpOR:
		m.V[in.X] = vx | vy

	case OpAND:
		m.V[in.X] = vx & vy

	case OpXOR:
		m.V[in.X] = vx ^ vy

	// The flag is written after the result so VF ends up holding the flag
	// when X is F.
	case OpADDReg:
		sum := uint16(vx) + uint16(vy)
		m.V[in.X] = byte(sum)
		m.V[FlagRegister] = byte(sum >> 8)

	case OpSUB:
		m.V[in.X] = vx - vy
		m.V[FlagRegister] = boolToByte(vx > vy)

	case OpSHR:
		m.V[in.X] = vx >> 1
		m.V[FlagRegister] = vx & 0x01

	case OpSUBN:
		m.V[in.X] = vy - vx
		m.V[FlagRegister] = boolToByte(vy >= vx)

	case OpSHL:
		m.V[in.X] = vx << 1
		m.V[FlagRegister] = (vx >> 7) & 0x01

	case OpLDI:
		m.I = in.NNN

	case OpJPV0:
		m.PC = uint16(m.V[0]) + in.NNN

	case OpRND:
		m.V[in.X] = byte(m.rng.UintN(256)) & in.NN

	case OpDRW:
		return m.draw(vx, vy, in.N)

	case OpSKP:
		m.skipIf(m.Keys[vx&0x0F])

	case OpSKNP:
		m.skipIf(!m.Keys[vx&0x0F])

	case OpLDVxDT:
		m.V[in.X] = m.DelayTimer

	case OpLDVxK:
		m.waitForKey(in)

	case OpLDDTVx:
		m.DelayTimer = vx

	case OpLDSTVx:
		m.SoundTimer = vx

	case OpADDI:
		m.I += uint16(vx)

	case OpLDF:
		m.I = GlyphAddress(vx)

	case OpLDB:
		if err := m.checkRange(m.I, 3); err != nil {
			return err
		}
		m.Memory[m.I] = vx / 100
		m.Memory[m.I+1] = (vx / 10) % 10
		m.Memory[m.I+2] = vx % 10

	case OpLDIVx:
		if err := m.checkRange(m.I, int(in.X)+1); err != nil {
			return err
		}
		for r := 0; r <= int(in.X); r++ {
			m.Memory[int(m.I)+r] = m.V[r]
		}

	case OpLDVxI:
		if err := m.checkRange(m.I, int(in.X)+1); err != nil {
			return err
		}
		for r := 0; r <= int(in.X); r++ {
			m.V[r] = m.Memory[int(m.I)+r]
		}

	default:
		return fmt.Errorf("%w: %v", ErrUnknownOpcode, in.Op)
	}
	return nil
}

// waitForKey parks the machine on FX0A until a key is down. The lowest
// pressed index wins.
func (m *Machine) waitForKey(in Instruction) {
	for k, pressed := range m.Keys {
		if pressed {
			m.V[in.X] = byte(k)
			m.PendingOpcode = 0
			return
		}
	}
	m.PendingOpcode = in.Opcode
}

// draw XORs an 8xN sprite from memory at I onto the display. The start
// position wraps and so does every pixel.
func (m *Machine) draw(vx, vy byte, rows uint8) error {
	if err := m.checkRange(m.I, int(rows)); err != nil {
		return err
	}

	x0 := int(vx) % Width
	y0 := int(vy) % Height
	m.V[FlagRegister] = 0

	for row := 0; row < int(rows); row++ {
		sprite := m.Memory[int(m.I)+row]
		y := (y0 + row) % Height
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			x := (x0 + col) % Width
			if m.Display[y][x]&1 != 0 {
				m.V[FlagRegister] = 1
			}
			m.Display[y][x] ^= 1
		}
	}
	return nil
}

func (m *Machine) checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%w: %d bytes at 0x%04X", ErrOutOfBounds, n, addr)
	}
	return nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
