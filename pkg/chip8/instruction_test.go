package chip8

import (
	"errors"
	"testing"

	rc8 "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

func TestDecodeIsTotal(t *testing.T) {
	valid := 0
	for op := 0; op <= 0xFFFF; op++ {
		in, err := Decode(uint16(op))
		if err != nil {
			if !errors.Is(err, ErrUnknownSubOpcode) || !errors.Is(err, ErrUnknownOpcode) {
				t.Fatalf("Decode(0x%04X): unexpected error %v", op, err)
			}
			if in.Op != OpInvalid {
				t.Fatalf("Decode(0x%04X): error with op %v", op, in.Op)
			}
			continue
		}
		if in.Op == OpInvalid {
			t.Fatalf("Decode(0x%04X): no error but invalid op", op)
		}
		valid++
	}

	// 00E0, 00EE; ten unconditional families; 5XY0 and 9XY0; nine 8XYn;
	// two EXnn; nine FXnn.
	want := 2 + 10*0x1000 + 2*0x100 + 9*0x100 + 2*0x10 + 9*0x10
	if valid != want {
		t.Errorf("valid opcodes: expected %d, got %d", want, valid)
	}
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
		x, y   uint8
		n, nn  uint8
		nnn    uint16
	}{
		{0x00E0, OpCLS, 0, 0xE, 0x0, 0xE0, 0x0E0},
		{0x00EE, OpRET, 0, 0xE, 0xE, 0xEE, 0x0EE},
		{0x1ABC, OpJP, 0xA, 0xB, 0xC, 0xBC, 0xABC},
		{0x2ABC, OpCALL, 0xA, 0xB, 0xC, 0xBC, 0xABC},
		{0x3A12, OpSEImm, 0xA, 0x1, 0x2, 0x12, 0xA12},
		{0x4A12, OpSNEImm, 0xA, 0x1, 0x2, 0x12, 0xA12},
		{0x5AB0, OpSEReg, 0xA, 0xB, 0x0, 0xB0, 0xAB0},
		{0x6A12, OpLDImm, 0xA, 0x1, 0x2, 0x12, 0xA12},
		{0x7A12, OpADDImm, 0xA, 0x1, 0x2, 0x12, 0xA12},
		{0x8AB0, OpLDReg, 0xA, 0xB, 0x0, 0xB0, 0xAB0},
		{0x8AB1, OpOR, 0xA, 0xB, 0x1, 0xB1, 0xAB1},
		{0x8AB2, OpAND, 0xA, 0xB, 0x2, 0xB2, 0xAB2},
		{0x8AB3, OpXOR, 0xA, 0xB, 0x3, 0xB3, 0xAB3},
		{0x8AB4, OpADDReg, 0xA, 0xB, 0x4, 0xB4, 0xAB4},
		{0x8AB5, OpSUB, 0xA, 0xB, 0x5, 0xB5, 0xAB5},
		{0x8AB6, OpSHR, 0xA, 0xB, 0x6, 0xB6, 0xAB6},
		{0x8AB7, OpSUBN, 0xA, 0xB, 0x7, 0xB7, 0xAB7},
		{0x8ABE, OpSHL, 0xA, 0xB, 0xE, 0xBE, 0xABE},
		{0x9AB0, OpSNEReg, 0xA, 0xB, 0x0, 0xB0, 0xAB0},
		{0xA123, OpLDI, 0x1, 0x2, 0x3, 0x23, 0x123},
		{0xB123, OpJPV0, 0x1, 0x2, 0x3, 0x23, 0x123},
		{0xC1F0, OpRND, 0x1, 0xF, 0x0, 0xF0, 0x1F0},
		{0xD125, OpDRW, 0x1, 0x2, 0x5, 0x25, 0x125},
		{0xE39E, OpSKP, 0x3, 0x9, 0xE, 0x9E, 0x39E},
		{0xE3A1, OpSKNP, 0x3, 0xA, 0x1, 0xA1, 0x3A1},
		{0xF307, OpLDVxDT, 0x3, 0x0, 0x7, 0x07, 0x307},
		{0xF30A, OpLDVxK, 0x3, 0x0, 0xA, 0x0A, 0x30A},
		{0xF315, OpLDDTVx, 0x3, 0x1, 0x5, 0x15, 0x315},
		{0xF318, OpLDSTVx, 0x3, 0x1, 0x8, 0x18, 0x318},
		{0xF31E, OpADDI, 0x3, 0x1, 0xE, 0x1E, 0x31E},
		{0xF329, OpLDF, 0x3, 0x2, 0x9, 0x29, 0x329},
		{0xF333, OpLDB, 0x3, 0x3, 0x3, 0x33, 0x333},
		{0xF355, OpLDIVx, 0x3, 0x5, 0x5, 0x55, 0x355},
		{0xF365, OpLDVxI, 0x3, 0x6, 0x5, 0x65, 0x365},
	}

	for _, tc := range tests {
		in, err := Decode(tc.opcode)
		if err != nil {
			t.Errorf("Decode(0x%04X): unexpected error %v", tc.opcode, err)
			continue
		}
		if in.Op != tc.op {
			t.Errorf("Decode(0x%04X): expected %v, got %v", tc.opcode, tc.op, in.Op)
		}
		if in.X != tc.x || in.Y != tc.y || in.N != tc.n || in.NN != tc.nn || in.NNN != tc.nnn {
			t.Errorf("Decode(0x%04X): fields %+v", tc.opcode, in)
		}
	}
}

func TestDecodeRejectsSubOpcodes(t *testing.T) {
	for _, opcode := range []uint16{0x0000, 0x0123, 0x00E1, 0x00FF, 0x5AB1, 0x8AB8, 0x8ABF, 0x9AB3, 0xE39F, 0xE3A2, 0xF300, 0xF375} {
		if _, err := Decode(opcode); !errors.Is(err, ErrUnknownSubOpcode) {
			t.Errorf("Decode(0x%04X): expected ErrUnknownSubOpcode, got %v", opcode, err)
		}
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCLS, "CLS"},
		{OpDRW, "DRW Vx, Vy, n"},
		{OpLDIVx, "LD [I], Vx"},
		{OpJPV0, "JP V0, addr"},
		{Op(200), "Op(200)"},
	}
	for _, tc := range tests {
		if got := tc.op.String(); got != tc.want {
			t.Errorf("Op(%d).String(): expected %q, got %q", uint8(tc.op), tc.want, got)
		}
	}

	in, _ := Decode(0xD125)
	if got := in.String(); got != "D125 DRW Vx, Vy, n" {
		t.Errorf("Instruction.String(): expected \"D125 DRW Vx, Vy, n\", got %q", got)
	}
}

// lookupReference finds opcode in the retrogolib CHIP-8 opcode table.
func lookupReference(opcode uint16) (string, bool) {
	for _, entry := range rc8.Opcodes[opcode>>12] {
		if opcode&entry.Info.Mask == entry.Info.Value {
			return entry.Instruction.Name, true
		}
	}
	return "", false
}

func TestDecodeAgreesWithReferenceTable(t *testing.T) {
	for op := 0; op <= 0xFFFF; op++ {
		opcode := uint16(op)
		in, err := Decode(opcode)
		name, known := lookupReference(opcode)

		if (err == nil) != known {
			t.Fatalf("Decode(0x%04X): err=%v, reference table known=%v", opcode, err, known)
		}
		if known && in.Op.Mnemonic() != name {
			t.Fatalf("Decode(0x%04X): mnemonic %q, reference table %q", opcode, in.Op.Mnemonic(), name)
		}
	}
}
