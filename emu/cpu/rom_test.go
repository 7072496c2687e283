package cpu

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeROM(t *testing.T, size int) string {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i + 1)
	}
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadROM(t *testing.T) {
	emu := newTestEMU(t)
	n, err := emu.LoadROM(writeROM(t, 10))
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Errorf("bytes loaded = %d, want 10", n)
	}

	got := emu.Memory(ProgramStart, 11)
	for i := 0; i < 10; i++ {
		if got[i] != byte(i+1) {
			t.Fatalf("memory[%03x] = %02x, want %02x", ProgramStart+i, got[i], i+1)
		}
	}
	for _, b := range emu.Memory(ProgramStart+10, MaxImageSize-10) {
		if b != 0 {
			t.Fatalf("memory past image not zero")
		}
	}
	if emu.PC() != ProgramStart {
		t.Errorf("pc = %03x, loading must not move pc", emu.PC())
	}
}

func TestLoadROMLimits(t *testing.T) {
	emu := newTestEMU(t)

	if _, err := emu.LoadROM(writeROM(t, 0)); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty image: err = %v, want ErrEmptyImage", err)
	}
	if _, err := emu.LoadROM(writeROM(t, MaxImageSize+1)); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("3585 byte image: err = %v, want ErrImageTooLarge", err)
	}
	if n, err := emu.LoadROM(writeROM(t, MaxImageSize)); err != nil || n != MaxImageSize {
		t.Errorf("3584 byte image: n = %d err = %v", n, err)
	}
}

func TestLoadROMMissing(t *testing.T) {
	emu := newTestEMU(t)
	_, err := emu.LoadROM(filepath.Join(t.TempDir(), "missing.ch8"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("err = %v, want a *fs.PathError in the chain", err)
	}
}
