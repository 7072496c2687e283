package screen

const (
	Width  = 64
	Height = 32

	spriteWidth = 8
)

// Frame is the 64x32 monochrome display buffer. The cpu draws into it and a
// Frontend presents it.
type Frame struct {
	pixels [Height][Width]bool
	dirty  bool
}

func NewFrame() *Frame {
	return &Frame{}
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	f.pixels = [Height][Width]bool{}
	f.dirty = true
}

// DrawSprite XORs rows onto the frame, one byte per row with the most
// significant bit leftmost. The origin wraps onto the screen but the sprite
// itself is clipped at the right and bottom edges. It reports whether any lit
// pixel was turned off.
func (f *Frame) DrawSprite(x, y int, rows []byte) bool {
	x %= Width
	y %= Height
	if x < 0 {
		x += Width
	}
	if y < 0 {
		y += Height
	}

	collided := false
	for r, row := range rows {
		py := y + r
		if py >= Height {
			break
		}
		for c := 0; c < spriteWidth; c++ {
			px := x + c
			if px >= Width {
				break
			}
			if row&(0x80>>c) == 0 {
				continue
			}
			if f.pixels[py][px] {
				collided = true
			}
			f.pixels[py][px] = !f.pixels[py][px]
		}
	}
	f.dirty = true
	return collided
}

// Pixel reports whether the pixel at x, y is lit. Out of range coordinates
// are never lit.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pixels[y][x]
}

// Dirty reports whether the frame changed since the last ClearDirty.
func (f *Frame) Dirty() bool {
	return f.dirty
}

func (f *Frame) ClearDirty() {
	f.dirty = false
}
