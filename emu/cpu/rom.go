package cpu

import (
	"fmt"
	"os"
)

// MaxImageSize is the room between ProgramStart and the end of memory.
const MaxImageSize = MemorySize - ProgramStart

// LoadROM reads the image at filename into memory at ProgramStart and returns
// the number of bytes loaded. Registers and PC are left alone, so Reset should
// run first.
func (emu *EMU) LoadROM(filename string) (int, error) {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("loading rom: %w", err)
	}
	n, err := emu.LoadImage(rom)
	if err != nil {
		return 0, fmt.Errorf("loading rom %s: %w", filename, err)
	}
	return n, nil
}

// LoadImage copies image verbatim into memory at ProgramStart.
func (emu *EMU) LoadImage(image []byte) (int, error) {
	if len(image) == 0 {
		return 0, ErrEmptyImage
	}
	if len(image) > MaxImageSize {
		return 0, fmt.Errorf("%w: %d bytes, limit is %d", ErrImageTooLarge, len(image), MaxImageSize)
	}
	return copy(emu.memory[ProgramStart:], image), nil
}
