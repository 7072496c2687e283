package cpu

const KeyCount = 16

// Keypad tracks the 16 hex keys. Bit k of the mask is the pressed state of
// key k. It is only ever touched between cycles, never from another
// goroutine while EmulateCycle runs.
type Keypad struct {
	mask     uint16
	last     uint8
	released bool
}

// KeyDown marks key as pressed and remembers it as the most recent press.
// Keys outside 0-F are ignored.
func (k *Keypad) KeyDown(key uint8) {
	if key >= KeyCount {
		return
	}
	k.mask |= 1 << key
	k.last = key
}

// KeyUp marks key as released. The release is what satisfies a pending
// wait-for-key instruction.
func (k *Keypad) KeyUp(key uint8) {
	if key >= KeyCount {
		return
	}
	k.mask &^= 1 << key
	k.released = true
}

func (k *Keypad) Pressed(key uint8) bool {
	return k.mask&(1<<(key&0x0F)) != 0
}

func (k *Keypad) Mask() uint16 {
	return k.mask
}

// takeRelease consumes the release flag, returning the last pressed key if a
// release had been observed.
func (k *Keypad) takeRelease() (uint8, bool) {
	if !k.released {
		return 0, false
	}
	k.released = false
	return k.last, true
}

func (k *Keypad) reset() {
	*k = Keypad{}
}
