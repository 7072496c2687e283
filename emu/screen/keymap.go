package screen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// DefaultKeymap lays the hex keypad over the left of a QWERTY keyboard:
//
//	1 2 3 C        1 2 3 4
//	4 5 6 D   ->   q w e r
//	7 8 9 E        a s d f
//	A 0 B F        z x c v
//
// Character k of the string is the physical key for hex key k.
const DefaultKeymap = "x123qweasdzc4rfv"

// Keymap maps physical keys, by lower case character, to hex keys.
type Keymap struct {
	chars [16]rune
	index map[rune]uint8
}

// ParseKeymap builds a Keymap from 16 distinct characters.
func ParseKeymap(s string) (Keymap, error) {
	km := Keymap{index: make(map[rune]uint8, 16)}

	if n := utf8.RuneCountInString(s); n != 16 {
		return Keymap{}, fmt.Errorf("keymap: want 16 characters, got %d", n)
	}

	k := 0
	for _, r := range s {
		r = unicode.ToLower(r)
		if _, ok := km.index[r]; ok {
			return Keymap{}, fmt.Errorf("keymap: %q mapped twice", r)
		}
		km.chars[k] = r
		km.index[r] = uint8(k)
		k++
	}
	return km, nil
}

// Lookup returns the hex key for the physical key r.
func (km Keymap) Lookup(r rune) (uint8, bool) {
	k, ok := km.index[unicode.ToLower(r)]
	return k, ok
}

// Char returns the physical key for hex key k.
func (km Keymap) Char(k uint8) rune {
	return km.chars[k&0x0F]
}
