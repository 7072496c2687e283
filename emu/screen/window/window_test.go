package window

import (
	"testing"

	"github.com/faiface/pixel/pixelgl"

	"github.com/beanboi7/chyp8/emu/screen"
)

func TestButtons(t *testing.T) {
	km, err := screen.ParseKeymap(screen.DefaultKeymap)
	if err != nil {
		t.Fatal(err)
	}
	keys, err := buttons(km)
	if err != nil {
		t.Fatal(err)
	}

	want := map[uint8]pixelgl.Button{
		0x0: pixelgl.KeyX,
		0x1: pixelgl.Key1,
		0xC: pixelgl.Key4,
		0xF: pixelgl.KeyV,
	}
	for k, b := range want {
		if keys[k] != b {
			t.Errorf("hex key %X = %v, want %v", k, keys[k], b)
		}
	}
}

func TestButtonsRejectPunctuation(t *testing.T) {
	km, err := screen.ParseKeymap("x123qweasdzc4rf;")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buttons(km); err == nil {
		t.Errorf("expected an error for ';'")
	}
}
