package screen

import "testing"

func TestDefaultKeymap(t *testing.T) {
	km, err := ParseKeymap(DefaultKeymap)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[rune]uint8{
		'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
		'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
		'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
		'Q': 0x4,
	}
	for r, want := range tests {
		got, ok := km.Lookup(r)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %X, %v; want %X", r, got, ok, want)
		}
	}
	if _, ok := km.Lookup('p'); ok {
		t.Errorf("Lookup('p') found a key")
	}
	if km.Char(0xC) != '4' {
		t.Errorf("Char(C) = %q, want '4'", km.Char(0xC))
	}
}

func TestParseKeymapErrors(t *testing.T) {
	for _, s := range []string{"", "0123456789abcde", "0123456789abcdef0", "0123456789abcdeE"} {
		if _, err := ParseKeymap(s); err == nil {
			t.Errorf("ParseKeymap(%q) succeeded", s)
		}
	}
}
