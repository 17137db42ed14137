package app

import (
	"errors"
	"io"
	"testing"
	"time"

	"splitkb/firmware/kernel"
	"splitkb/firmware/keycode"
	"splitkb/firmware/layout"
	"splitkb/firmware/link"
	"splitkb/firmware/matrix"
	"splitkb/firmware/role"
	"splitkb/hal"
)

type half struct {
	h   *hal.Host
	sys *System
}

type pair struct {
	wire        *hal.Wire
	left, right half
}

func newHalf(t *testing.T, side Side, port hal.LinkPort, mutate func(*Config)) half {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Side = side
	cfg.LinkWriteTimeout = time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}
	h := hal.NewHost(hal.HostConfig{Name: side.String(), Rows: cfg.Rows, Cols: cfg.Cols, Link: port, Log: io.Discard})
	sys, err := New(h, cfg)
	if err != nil {
		t.Fatalf("New(%s): %v", side, err)
	}
	return half{h: h, sys: sys}
}

func newPair(t *testing.T, mutate func(*Config)) *pair {
	t.Helper()
	w := hal.NewWire()
	return &pair{
		wire:  w,
		left:  newHalf(t, Left, w.End(0), mutate),
		right: newHalf(t, Right, w.End(1), mutate),
	}
}

func (p *pair) tick(n int) {
	for i := 0; i < n; i++ {
		p.right.sys.Tick()
		p.left.sys.Tick()
	}
}

// settle ticks long enough for a switch change to pass the debouncer and
// reach the report.
func (p *pair) settle() { p.tick(matrix.DefaultThreshold + 3) }

func lastReport(t *testing.T, h *hal.Host) []byte {
	t.Helper()
	reports := h.USBDevice().Reports()
	if len(reports) == 0 {
		t.Fatalf("%s: no reports", h.Name())
	}
	return reports[len(reports)-1]
}

func wantKey(t *testing.T, h *hal.Host, code keycode.Code) {
	t.Helper()
	r := lastReport(t, h)
	if r[2] != byte(code) {
		t.Fatalf("%s: last report % x, want %v in first slot", h.Name(), r, code)
	}
}

func TestRolesFollowUSB(t *testing.T) {
	p := newPair(t, nil)
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)
	if p.left.sys.Role() != role.Primary || p.right.sys.Role() != role.Secondary {
		t.Fatalf("roles = %v/%v, want primary/secondary", p.left.sys.Role(), p.right.sys.Role())
	}
	if !p.left.h.LEDOn() {
		t.Fatalf("primary LED off")
	}

	p.left.h.USBDevice().SetAttached(false)
	p.right.h.USBDevice().SetAttached(true)
	p.tick(2)
	if p.left.sys.Role() != role.Secondary || p.right.sys.Role() != role.Primary {
		t.Fatalf("roles = %v/%v, want secondary/primary", p.left.sys.Role(), p.right.sys.Role())
	}
}

func TestSecondaryKeyReachesPrimaryReport(t *testing.T) {
	p := newPair(t, nil)
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	// Local (0,0) of the right half is unified column 11.
	p.right.h.Switches().Set(0, 0, true)
	p.settle()
	wantKey(t, p.left.h, keycode.LBracket)

	p.right.h.Switches().Set(0, 0, false)
	p.settle()
	if r := lastReport(t, p.left.h); r[2] != 0 {
		t.Fatalf("last report % x, want empty", r)
	}
	if n := len(p.right.h.USBDevice().Reports()); n != 0 {
		t.Fatalf("secondary sent %d reports", n)
	}
}

func TestMirroredHalvesAgree(t *testing.T) {
	// The right half's local (r, c) must produce the same key whether it is
	// relayed to the left primary or scanned by the right half as primary.
	for col := 0; col < 6; col++ {
		relayed := newPair(t, nil)
		relayed.left.h.USBDevice().SetAttached(true)
		relayed.tick(2)
		relayed.right.h.Switches().Set(1, col, true)
		relayed.settle()

		direct := newPair(t, nil)
		direct.right.h.USBDevice().SetAttached(true)
		direct.tick(2)
		direct.right.h.Switches().Set(1, col, true)
		direct.settle()

		a := lastReport(t, relayed.left.h)
		b := lastReport(t, direct.right.h)
		if a[2] == 0 || a[2] != b[2] {
			t.Fatalf("col %d: relayed % x, direct % x", col, a, b)
		}
	}
}

func TestLayerAcrossHalves(t *testing.T) {
	p := newPair(t, nil)
	p.right.h.USBDevice().SetAttached(true)
	p.tick(2)

	// Left thumb (3,5) holds layer 2; right local (1,4) is unified (1,7).
	p.left.h.Switches().Set(3, 5, true)
	p.settle()
	p.right.h.Switches().Set(1, 4, true)
	p.settle()
	wantKey(t, p.right.h, keycode.Left)
}

func TestHoldTapTapOnPrimary(t *testing.T) {
	p := newPair(t, nil)
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	p.left.h.Switches().Set(3, 4, true) // LAlt / Delete
	p.settle()
	p.left.h.Switches().Set(3, 4, false)
	p.settle()

	var sawDelete bool
	for _, r := range p.left.h.USBDevice().Reports() {
		if r[0]&keycode.LAlt.ModifierBit() != 0 {
			t.Fatalf("hold emitted on tap: % x", r)
		}
		if r[2] == byte(keycode.Delete) {
			sawDelete = true
		}
	}
	if !sawDelete {
		t.Fatalf("tap never reported Delete")
	}
}

func moveUSB(p *pair, toLeft bool) {
	p.left.h.USBDevice().SetAttached(toLeft)
	p.right.h.USBDevice().SetAttached(!toLeft)
	p.tick(2)
}

func TestKeyReleasedWhileSecondaryDoesNotStick(t *testing.T) {
	p := newPair(t, nil)
	moveUSB(p, true)

	p.left.h.Switches().Set(1, 1, true)
	p.settle()
	wantKey(t, p.left.h, keycode.A)

	moveUSB(p, false)
	p.left.h.Switches().Set(1, 1, false)
	p.settle()
	moveUSB(p, true)
	p.settle()

	if r := lastReport(t, p.left.h); r[2] != 0 {
		t.Fatalf("last report after re-attach % x, want empty", r)
	}
	p.left.sys.layout.Lock(func(l *layout.Layout) {
		if n := l.Keys().Len(); n != 0 {
			t.Fatalf("left layout keys = %v with no switch held", l.Keys().Codes())
		}
	})
}

func TestHeldKeyCarriesOverToNewPrimary(t *testing.T) {
	p := newPair(t, nil)
	moveUSB(p, false)

	p.left.h.Switches().Set(1, 1, true)
	p.settle()
	wantKey(t, p.right.h, keycode.A)

	moveUSB(p, true)
	p.settle()
	wantKey(t, p.left.h, keycode.A)

	p.left.h.Switches().Set(1, 1, false)
	p.settle()
	if r := lastReport(t, p.left.h); r[2] != 0 {
		t.Fatalf("last report after release % x, want empty", r)
	}
}

func TestBootloaderKey(t *testing.T) {
	p := newPair(t, nil)
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	sw := p.left.h.Switches()
	sw.Set(3, 5, true)
	p.settle()
	sw.Set(3, 0, true)
	p.settle()
	if n := p.left.h.BootloaderRequests(); n != 0 {
		t.Fatalf("bootloader requested on press")
	}
	sw.Set(3, 0, false)
	p.settle()
	if n := p.left.h.BootloaderRequests(); n != 1 {
		t.Fatalf("BootloaderRequests() = %d, want 1", n)
	}
}

func pressAll(h *hal.Host, cfg Config) {
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			h.Switches().Set(r, c, true)
		}
	}
}

func TestQueueFullHalts(t *testing.T) {
	p := newPair(t, func(c *Config) { c.DebounceThreshold = 1 })
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	pressAll(p.left.h, p.left.sys.Config())
	p.tick(2)
	err := p.left.sys.Err()
	if !errors.Is(err, ErrQueueFull) || !errors.Is(err, kernel.ErrHalted) {
		t.Fatalf("Err() = %v, want %v", err, ErrQueueFull)
	}
	if !p.left.sys.Snapshot().Halted {
		t.Fatalf("Snapshot().Halted = false")
	}
}

func TestQueueFullDrop(t *testing.T) {
	p := newPair(t, func(c *Config) {
		c.DebounceThreshold = 1
		c.QueueFull = QueueFullDropNewest
	})
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	pressAll(p.left.h, p.left.sys.Config())
	p.tick(2)
	if err := p.left.sys.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
	if p.left.sys.Dropped() == 0 {
		t.Fatalf("Dropped() = 0, want > 0")
	}
}

func TestStuckLinkHaltsSecondary(t *testing.T) {
	p := newPair(t, nil)
	p.left.h.USBDevice().SetAttached(true)
	p.tick(2)

	p.wire.End(1).SetStuck(true)
	p.right.h.Switches().Set(0, 0, true)
	p.settle()
	if err := p.right.sys.Err(); !errors.Is(err, link.ErrStuck) {
		t.Fatalf("Err() = %v, want %v", err, link.ErrStuck)
	}
	if err := p.left.sys.Err(); err != nil {
		t.Fatalf("primary Err() = %v, want nil", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Rows: 4, Cols: 6, Log: io.Discard})
	cfg := DefaultConfig()
	cfg.UnifiedCols = 10
	if _, err := New(h, cfg); err == nil {
		t.Fatalf("New() with mismatched keymap: want error")
	}

	cfg = DefaultConfig()
	cfg.Cols = 5
	if _, err := New(h, cfg); err == nil {
		t.Fatalf("New() with wrong matrix size: want error")
	}
}

func TestParsers(t *testing.T) {
	if s, err := ParseSide("Right"); err != nil || s != Right {
		t.Fatalf("ParseSide(Right) = %v, %v", s, err)
	}
	if _, err := ParseSide("middle"); err == nil {
		t.Fatalf("ParseSide(middle): want error")
	}
	if p, err := ParseQueueFull("drop"); err != nil || p != QueueFullDropNewest {
		t.Fatalf("ParseQueueFull(drop) = %v, %v", p, err)
	}
}
