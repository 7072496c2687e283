package cpu

import "fmt"

const flag = 0xF

// addr masks an address onto the 4K memory space.
func addr(a uint16) uint16 {
	return a & (MemorySize - 1)
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += InstructionSize
	}
}

// execute applies a decoded instruction. PC already points at the next
// instruction.
func (emu *EMU) execute(in Instruction) error {
	x, y := in.X, in.Y

	switch in.Op {
	case OpCLS:
		emu.frame.Clear()

	case OpRET:
		if emu.sp == 0 {
			return fmt.Errorf("%w: %04x at %03x", ErrStackUnderflow, in.Word, emu.pc-InstructionSize)
		}
		emu.sp--
		emu.pc = emu.stack[emu.sp]

	case OpJP:
		emu.pc = in.NNN

	case OpCALL:
		if emu.sp == StackSize {
			return fmt.Errorf("%w: %04x at %03x", ErrStackOverflow, in.Word, emu.pc-InstructionSize)
		}
		emu.stack[emu.sp] = emu.pc
		emu.sp++
		emu.pc = in.NNN

	case OpSEByte:
		emu.skipIf(emu.V[x] == in.NN)

	case OpSNEByte:
		emu.skipIf(emu.V[x] != in.NN)

	case OpSEReg:
		emu.skipIf(emu.V[x] == emu.V[y])

	case OpLDByte:
		emu.V[x] = in.NN

	case OpADDByte:
		emu.V[x] += in.NN

	case OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSHR, OpSUBN, OpSHL:
		r := alu(in.Op, emu.V[x], emu.V[y])
		emu.V[x] = r.value
		if r.setsFlag {
			emu.V[flag] = r.flag
		}

	case OpSNEReg:
		emu.skipIf(emu.V[x] != emu.V[y])

	case OpLDI:
		emu.I = in.NNN

	case OpJPV0:
		emu.pc = in.NNN + uint16(emu.V[0])

	case OpRND:
		emu.V[x] = uint8(emu.rnd.UintN(256)) & in.NN

	case OpDRW:
		rows := make([]byte, in.N)
		for i := range rows {
			rows[i] = emu.memory[addr(emu.I+uint16(i))]
		}
		if emu.frame.DrawSprite(int(emu.V[x]), int(emu.V[y]), rows) {
			emu.V[flag] = 1
		} else {
			emu.V[flag] = 0
		}

	case OpSKP:
		emu.skipIf(emu.keypad.Pressed(emu.V[x]))

	case OpSKNP:
		emu.skipIf(!emu.keypad.Pressed(emu.V[x]))

	case OpLDVxDT:
		emu.V[x] = emu.delayTimer

	case OpLDVxK:
		if key, ok := emu.keypad.takeRelease(); ok {
			emu.V[x] = key
			break
		}
		// suspend with PC left on this instruction until a key is released
		emu.pc -= InstructionSize
		emu.waitReg = x
		emu.mode = AwaitingKey

	case OpLDDTVx:
		emu.delayTimer = emu.V[x]

	case OpLDSTVx:
		emu.soundTimer = emu.V[x]
		emu.syncTone()

	case OpADDI:
		emu.I += uint16(emu.V[x])

	case OpLDF:
		emu.I = glyphAddress(emu.V[x])

	case OpLDB:
		v := emu.V[x]
		emu.memory[addr(emu.I)] = v / 100
		emu.memory[addr(emu.I+1)] = (v / 10) % 10
		emu.memory[addr(emu.I+2)] = v % 10

	case OpStore:
		for i := uint16(0); i <= uint16(x); i++ {
			emu.memory[addr(emu.I+i)] = emu.V[i]
		}

	case OpLoad:
		for i := uint16(0); i <= uint16(x); i++ {
			emu.V[i] = emu.memory[addr(emu.I+i)]
		}

	default:
		return fmt.Errorf("%w: %04x at %03x", ErrInvalidOpcode, in.Word, emu.pc-InstructionSize)
	}

	return nil
}

// aluResult is the outcome of an 8XY_ instruction: the new value of VX and,
// for the arithmetic and shift forms, the new value of VF.
type aluResult struct {
	value    uint8
	flag     uint8
	setsFlag bool
}

// alu computes an 8XY_ instruction from the operands as they were before
// anything is written back.
func alu(op Op, vx, vy uint8) aluResult {
	switch op {
	case OpLDReg:
		return aluResult{value: vy}
	case OpOR:
		return aluResult{value: vx | vy}
	case OpAND:
		return aluResult{value: vx & vy}
	case OpXOR:
		return aluResult{value: vx ^ vy}
	case OpADDReg:
		sum := uint16(vx) + uint16(vy)
		return aluResult{value: uint8(sum), flag: boolFlag(sum > 0xFF), setsFlag: true}
	case OpSUB:
		return aluResult{value: vx - vy, flag: boolFlag(vx >= vy), setsFlag: true}
	case OpSHR:
		return aluResult{value: vy >> 1, flag: vy & 0x01, setsFlag: true}
	case OpSUBN:
		return aluResult{value: vy - vx, flag: boolFlag(vy >= vx), setsFlag: true}
	case OpSHL:
		return aluResult{value: vy << 1, flag: vy >> 7, setsFlag: true}
	}
	return aluResult{value: vx}
}

func boolFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
