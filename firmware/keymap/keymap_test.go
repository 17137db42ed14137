package keymap

import (
	"testing"

	"splitkb/firmware/event"
	"splitkb/firmware/keycode"
	"splitkb/firmware/layout"
)

func TestDefaultIsValid(t *testing.T) {
	layers := Default()
	if err := layout.Validate(layers); err != nil {
		t.Fatalf("Validate(Default()) = %v", err)
	}
	if len(layers) != 3 || len(layers[0]) != Rows || len(layers[0][0]) != Cols {
		t.Fatalf("Default() shape = %dx%dx%d, want 3x%dx%d", len(layers), len(layers[0]), len(layers[0][0]), Rows, Cols)
	}
}

func TestDefaultThumbLayer(t *testing.T) {
	l, err := layout.New(Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Hold the space thumb key (hold = layer 1), then press Q's position.
	l.Event(event.NewPress(3, 6))
	l.Event(event.NewPress(0, 1))
	l.Tick()
	if !l.Keys().Contains(keycode.F1) {
		t.Fatalf("Keys() = %v, want F1", l.Keys().Codes())
	}
}

func TestDefaultBootloaderKey(t *testing.T) {
	l, err := layout.New(Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Event(event.NewPress(3, 5)) // hold = layer 2
	l.Event(event.NewPress(3, 0))
	l.Tick()
	l.Event(event.NewRelease(3, 0))
	ce := l.Tick()
	if ce.Kind != layout.CustomRelease || ce.Payload != Bootloader {
		t.Fatalf("Tick() = %+v, want bootloader release", ce)
	}
}
