package charlcd

import (
	"bytes"
	"testing"
)

// fakeI2C records every write frame.
type fakeI2C struct {
	frames [][]byte
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	cp := make([]byte, len(w))
	copy(cp, w)
	f.frames = append(f.frames, cp)
	return nil
}

func TestClearFrame(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, 0)
	if err := d.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(bus.frames) != 1 || !bytes.Equal(bus.frames[0], []byte{0x00, 0x01}) {
		t.Fatalf("frames = %v, want [[00 01]]", bus.frames)
	}
}

func TestGotoXYSecondRow(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, 0)
	if err := d.GotoXY(4, 1); err != nil {
		t.Fatalf("GotoXY: %v", err)
	}
	want := []byte{0x00, 0x80 | (0x40 + 4)}
	if !bytes.Equal(bus.frames[0], want) {
		t.Fatalf("frame = %v, want %v", bus.frames[0], want)
	}
}

func TestPrintSplitsLongWrites(t *testing.T) {
	bus := &fakeI2C{}
	d := New(bus, 0)
	if err := d.Print("T:20C L:50 M:0 plus overflow"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if len(bus.frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(bus.frames))
	}
	for i, fr := range bus.frames {
		if fr[0] != 0x40 {
			t.Errorf("frame %d control = %#02x, want 0x40", i, fr[0])
		}
	}
	if string(bus.frames[0][1:]) != "T:20C L:50 M:0 p" {
		t.Errorf("first chunk = %q", bus.frames[0][1:])
	}
}
