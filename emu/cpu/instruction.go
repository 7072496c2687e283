package cpu

import "fmt"

// Op identifies one of the CHIP-8 instructions.
type Op int

const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1NNN
	OpCALL       // 2NNN
	OpSEByte     // 3XNN
	OpSNEByte    // 4XNN
	OpSEReg      // 5XY0
	OpLDByte     // 6XNN
	OpADDByte    // 7XNN
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
	OpStore      // FX55
	OpLoad       // FX65
)

var mnemonics = map[Op]string{
	OpInvalid: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpStore:   "LD",
	OpLoad:    "LD",
}

func (op Op) String() string {
	if s, ok := mnemonics[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Instruction is a decoded instruction word. Only the fields relevant to Op
// carry meaning; the rest are still filled in from the word.
type Instruction struct {
	Op   Op
	Word uint16
	X    uint8
	Y    uint8
	N    uint8
	NN   uint8
	NNN  uint16
}

// Decode splits an instruction word into its fields and identifies the
// instruction. Words matching no instruction decode to OpInvalid.
func Decode(word uint16) Instruction {
	in := Instruction{
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
	in.Op = decodeOp(in)
	return in
}

func decodeOp(in Instruction) Op {
	switch in.Word & 0xF000 {
	case 0x0000:
		switch in.Word {
		case 0x00E0:
			return OpCLS
		case 0x00EE:
			return OpRET
		}
	case 0x1000:
		return OpJP
	case 0x2000:
		return OpCALL
	case 0x3000:
		return OpSEByte
	case 0x4000:
		return OpSNEByte
	case 0x5000:
		if in.N == 0 {
			return OpSEReg
		}
	case 0x6000:
		return OpLDByte
	case 0x7000:
		return OpADDByte
	case 0x8000:
		switch in.N {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xE:
			return OpSHL
		}
	case 0x9000:
		if in.N == 0 {
			return OpSNEReg
		}
	case 0xA000:
		return OpLDI
	case 0xB000:
		return OpJPV0
	case 0xC000:
		return OpRND
	case 0xD000:
		return OpDRW
	case 0xE000:
		switch in.NN {
		case 0x9E:
			return OpSKP
		case 0xA1:
			return OpSKNP
		}
	case 0xF000:
		switch in.NN {
		case 0x07:
			return OpLDVxDT
		case 0x0A:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1E:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpStore
		case 0x65:
			return OpLoad
		}
	}
	return OpInvalid
}

// String disassembles the instruction in the usual Cowgod notation.
func (in Instruction) String() string {
	m := in.Op.String()
	switch in.Op {
	case OpCLS, OpRET:
		return m
	case OpJP, OpCALL:
		return fmt.Sprintf("%s 0x%03X", m, in.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte:
		return fmt.Sprintf("%s V%X, 0x%02X", m, in.X, in.NN)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSHR, OpSUBN, OpSHL:
		return fmt.Sprintf("%s V%X, V%X", m, in.X, in.Y)
	case OpLDI:
		return fmt.Sprintf("%s I, 0x%03X", m, in.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, 0x%03X", m, in.NNN)
	case OpRND:
		return fmt.Sprintf("%s V%X, 0x%02X", m, in.X, in.NN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, %d", m, in.X, in.Y, in.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", m, in.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", m, in.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", m, in.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", m, in.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", m, in.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", m, in.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", m, in.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", m, in.X)
	case OpStore:
		return fmt.Sprintf("%s [I], V%X", m, in.X)
	case OpLoad:
		return fmt.Sprintf("%s V%X, [I]", m, in.X)
	}
	return fmt.Sprintf("%s 0x%04X", m, in.Word)
}
