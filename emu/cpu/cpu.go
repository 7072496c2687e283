package cpu

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/beanboi7/chyp8/emu/screen"
)

const (
	MemorySize    = 4096
	RegisterCount = 16
	StackSize     = 16

	ProgramStart    = 0x200
	InstructionSize = 2
)

// Mode is the execution state of the machine between cycles.
type Mode int

const (
	// Running fetches a new instruction every cycle.
	Running Mode = iota

	// AwaitingKey is entered by FX0A. Cycles only poll the keypad until a
	// key is released.
	AwaitingKey

	// Halted is entered when the program counter leaves memory. Cycles do
	// nothing until Reset.
	Halted
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// EMU is the complete CHIP-8 machine state. It is not safe for concurrent
// use; callers apply input between calls to EmulateCycle.
type EMU struct {
	memory     [MemorySize]uint8
	V          [RegisterCount]uint8
	I          uint16 //address register
	pc         uint16
	stack      [StackSize]uint16
	sp         uint8
	delayTimer uint8 //counts down at 60Hz
	soundTimer uint8 //same as above

	keypad   Keypad
	mode     Mode
	waitReg  uint8 // register FX0A stores into
	timerAcc time.Duration
	toneOn   bool

	frame *screen.Frame
	audio AudioSink
	rnd   *rand.Rand
	log   *slog.Logger
	trace bool
}

// NewEMU returns a machine in its reset state drawing into frame. A nil
// audio sink discards tone changes and a nil logger uses slog.Default().
func NewEMU(frame *screen.Frame, audio AudioSink, logger *slog.Logger) *EMU {
	if frame == nil {
		frame = screen.NewFrame()
	}
	if audio == nil {
		audio = silence{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	emu := &EMU{
		frame: frame,
		audio: audio,
		rnd:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   logger,
	}
	emu.Reset()
	return emu
}

// Reset reinitialises memory, registers, stack, timers and keypad, reloads the
// font and points the program counter at ProgramStart. The frame is cleared.
func (emu *EMU) Reset() {
	emu.memory = [MemorySize]uint8{}
	emu.V = [RegisterCount]uint8{}
	emu.stack = [StackSize]uint16{}
	emu.I = 0
	emu.pc = ProgramStart
	emu.sp = 0
	emu.delayTimer = 0
	emu.soundTimer = 0
	emu.keypad.reset()
	emu.mode = Running
	emu.waitReg = 0
	emu.timerAcc = 0
	emu.syncTone()
	emu.frame.Clear()
	emu.loadFont()
}

// SetTrace turns per-instruction debug logging on or off.
func (emu *EMU) SetTrace(on bool) {
	emu.trace = on
}

// EmulateCycle runs a single instruction. PC is advanced past the instruction
// before it executes so jumps overwrite it cleanly. Any error returned is a
// report only: the machine remains usable and the next cycle continues with
// the following instruction.
func (emu *EMU) EmulateCycle() error {
	switch emu.mode {
	case Halted:
		return nil
	case AwaitingKey:
		emu.pollKey()
		return nil
	}

	if int(emu.pc) > MemorySize-InstructionSize {
		emu.mode = Halted
		return fmt.Errorf("%w: %04x", ErrAddressOutOfRange, emu.pc)
	}

	word := uint16(emu.memory[emu.pc])<<8 | uint16(emu.memory[emu.pc+1])
	in := Decode(word)

	if emu.trace && emu.log.Enabled(context.Background(), slog.LevelDebug) {
		emu.log.Debug("exec",
			"pc", fmt.Sprintf("0x%03x", emu.pc),
			"opcode", fmt.Sprintf("0x%04x", word),
			"instr", in.String(),
		)
	}

	emu.pc += InstructionSize
	return emu.execute(in)
}

// pollKey completes a suspended FX0A once a key release has been observed.
func (emu *EMU) pollKey() {
	key, ok := emu.keypad.takeRelease()
	if !ok {
		return
	}
	emu.V[emu.waitReg] = key
	emu.pc += InstructionSize
	emu.mode = Running
}

func (emu *EMU) KeyDown(key uint8) {
	emu.keypad.KeyDown(key)
}

func (emu *EMU) KeyUp(key uint8) {
	emu.keypad.KeyUp(key)
}

// Keypad returns the raw key mask, bit k set while key k is held.
func (emu *EMU) Keypad() uint16 {
	return emu.keypad.Mask()
}

func (emu *EMU) PC() uint16 {
	return emu.pc
}

func (emu *EMU) Mode() Mode {
	return emu.mode
}

func (emu *EMU) Frame() *screen.Frame {
	return emu.frame
}

// Memory returns a copy of length bytes of memory from start. The range is
// clipped to the end of memory.
func (emu *EMU) Memory(start uint16, length int) []uint8 {
	if int(start) >= MemorySize || length <= 0 {
		return nil
	}
	end := int(start) + length
	if end > MemorySize {
		end = MemorySize
	}
	out := make([]uint8, end-int(start))
	copy(out, emu.memory[start:end])
	return out
}

// Snapshot is a read-only copy of the register file.
type Snapshot struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	SP         uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	Keypad     uint16
	Mode       Mode
}

func (emu *EMU) Snapshot() Snapshot {
	s := Snapshot{
		V:          emu.V,
		I:          emu.I,
		PC:         emu.pc,
		SP:         emu.sp,
		Stack:      make([]uint16, emu.sp),
		DelayTimer: emu.delayTimer,
		SoundTimer: emu.soundTimer,
		Keypad:     emu.keypad.Mask(),
		Mode:       emu.mode,
	}
	copy(s.Stack, emu.stack[:emu.sp])
	return s
}

func (s Snapshot) String() string {
	return fmt.Sprintf("pc=%03x i=%03x sp=%d dt=%d st=%d v=% x (%s)",
		s.PC, s.I, s.SP, s.DelayTimer, s.SoundTimer, s.V[:], s.Mode)
}
