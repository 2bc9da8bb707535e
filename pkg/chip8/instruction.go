package chip8

import (
	"fmt"
	"strings"

	rc8 "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one decoded CHIP-8 instruction.
type Op uint8

const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSEImm      // 3XNN
	OpSNEImm     // 4XNN
	OpSEReg      // 5XY0
	OpLDImm      // 6XNN
	OpADDImm     // 7XNN
	OpLDReg      // 8XY0
	OpOR         // 8XY1
	OpAND        // 8XY2
	OpXOR        // 8XY3
	OpADDReg     // 8XY4
	OpSUB        // 8XY5
	OpSHR        // 8XY6
	OpSUBN       // 8XY7
	OpSHL        // 8XYE
	OpSNEReg     // 9XY0
	OpLDI        // ANNN
	OpJPV0       // BNNN
	OpRND        // CXNN
	OpDRW        // DXYN
	OpSKP        // EX9E
	OpSKNP       // EXA1
	OpLDVxDT     // FX07
	OpLDVxK      // FX0A
	OpLDDTVx     // FX15
	OpLDSTVx     // FX18
	OpADDI       // FX1E
	OpLDF        // FX29
	OpLDB        // FX33
	OpLDIVx      // FX55
	OpLDVxI      // FX65
)

type opName struct {
	mnemonic string
	operands string
}

var opNames = [...]opName{
	OpInvalid: {"invalid", ""},
	OpCLS:     {rc8.ClsName, ""},
	OpRET:     {rc8.RetName, ""},
	OpJP:      {rc8.JpName, "addr"},
	OpCALL:    {rc8.CallName, "addr"},
	OpSEImm:   {rc8.SeName, "Vx, byte"},
	OpSNEImm:  {rc8.SneName, "Vx, byte"},
	OpSEReg:   {rc8.SeName, "Vx, Vy"},
	OpLDImm:   {rc8.LdName, "Vx, byte"},
	OpADDImm:  {rc8.AddName, "Vx, byte"},
	OpLDReg:   {rc8.LdName, "Vx, Vy"},
	OpOR:      {rc8.OrName, "Vx, Vy"},
	OpAND:     {rc8.AndName, "Vx, Vy"},
	OpXOR:     {rc8.XorName, "Vx, Vy"},
	OpADDReg:  {rc8.AddName, "Vx, Vy"},
	OpSUB:     {rc8.SubName, "Vx, Vy"},
	OpSHR:     {rc8.ShrName, "Vx"},
	OpSUBN:    {rc8.SubnName, "Vx, Vy"},
	OpSHL:     {rc8.ShlName, "Vx"},
	OpSNEReg:  {rc8.SneName, "Vx, Vy"},
	OpLDI:     {rc8.LdName, "I, addr"},
	OpJPV0:    {rc8.JpName, "V0, addr"},
	OpRND:     {rc8.RndName, "Vx, byte"},
	OpDRW:     {rc8.DrwName, "Vx, Vy, n"},
	OpSKP:     {rc8.SkpName, "Vx"},
	OpSKNP:    {rc8.SknpName, "Vx"},
	OpLDVxDT:  {rc8.LdName, "Vx, DT"},
	OpLDVxK:   {rc8.LdName, "Vx, K"},
	OpLDDTVx:  {rc8.LdName, "DT, Vx"},
	OpLDSTVx:  {rc8.LdName, "ST, Vx"},
	OpADDI:    {rc8.AddName, "I, Vx"},
	OpLDF:     {rc8.LdName, "F, Vx"},
	OpLDB:     {rc8.LdName, "B, Vx"},
	OpLDIVx:   {rc8.LdName, "[I], Vx"},
	OpLDVxI:   {rc8.LdName, "Vx, [I]"},
}

// Mnemonic returns the lowercase assembler mnemonic shared by all operand
// forms of the instruction, e.g. "ld" for every LD variant.
func (o Op) Mnemonic() string {
	if int(o) < len(opNames) {
		return opNames[o].mnemonic
	}
	return ""
}

func (o Op) String() string {
	if int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	n := opNames[o]
	if n.operands == "" {
		return strings.ToUpper(n.mnemonic)
	}
	return strings.ToUpper(n.mnemonic) + " " + n.operands
}

// Instruction is a decoded opcode with its operand fields extracted.
type Instruction struct {
	Op     Op
	Opcode uint16
	X      uint8
	Y      uint8
	N      uint8
	NN     uint8
	NNN    uint16
}

// Decode maps a 16-bit opcode onto exactly one Op. Patterns that do not match
// any instruction of their family return ErrUnknownSubOpcode.
func Decode(opcode uint16) (Instruction, error) {
	in := Instruction{
		Opcode: opcode,
		X:      uint8((opcode & 0x0F00) >> 8),
		Y:      uint8((opcode & 0x00F0) >> 4),
		N:      uint8(opcode & 0x000F),
		NN:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			in.Op = OpCLS
		case 0x00EE:
			in.Op = OpRET
		}
	case 0x1000:
		in.Op = OpJP
	case 0x2000:
		in.Op = OpCALL
	case 0x3000:
		in.Op = OpSEImm
	case 0x4000:
		in.Op = OpSNEImm
	case 0x5000:
		if in.N == 0 {
			in.Op = OpSEReg
		}
	case 0x6000:
		in.Op = OpLDImm
	case 0x7000:
		in.Op = OpADDImm
	case 0x8000:
		switch in.N {
		case 0x0:
			in.Op = OpLDReg
		case 0x1:
			in.Op = OpOR
		case 0x2:
			in.Op = OpAND
		case 0x3:
			in.Op = OpXOR
		case 0x4:
			in.Op = OpADDReg
		case 0x5:
			in.Op = OpSUB
		case 0x6:
			in.Op = OpSHR
		case 0x7:
			in.Op = OpSUBN
		case 0xE:
			in.Op = OpSHL
		}
	case 0x9000:
		if in.N == 0 {
			in.Op = OpSNEReg
		}
	case 0xA000:
		in.Op = OpLDI
	case 0xB000:
		in.Op = OpJPV0
	case 0xC000:
		in.Op = OpRND
	case 0xD000:
		in.Op = OpDRW
	case 0xE000:
		switch in.NN {
		case 0x9E:
			in.Op = OpSKP
		case 0xA1:
			in.Op = OpSKNP
		}
	case 0xF000:
		switch in.NN {
		case 0x07:
			in.Op = OpLDVxDT
		case 0x0A:
			in.Op = OpLDVxK
		case 0x15:
			in.Op = OpLDDTVx
		case 0x18:
			in.Op = OpLDSTVx
		case 0x1E:
			in.Op = OpADDI
		case 0x29:
			in.Op = OpLDF
		case 0x33:
			in.Op = OpLDB
		case 0x55:
			in.Op = OpLDIVx
		case 0x65:
			in.Op = OpLDVxI
		}
	}

	if in.Op == OpInvalid {
		return in, fmt.Errorf("%w 0x%04X", ErrUnknownSubOpcode, opcode)
	}
	return in, nil
}

func (in Instruction) String() string {
	return fmt.Sprintf("%04X %v", in.Opcode, in.Op)
}
