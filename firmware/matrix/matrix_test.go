package matrix

import (
	"testing"

	"splitkb/firmware/event"
	"splitkb/hal"
)

func gridWith(rows, cols int, closed ...event.Coordinate) Grid {
	g := NewGrid(rows, cols)
	for _, c := range closed {
		g.Set(int(c.Row), int(c.Col), true)
	}
	return g
}

func TestDebounceIgnoresShortGlitch(t *testing.T) {
	d := NewDebouncer(2, 2, DefaultThreshold)
	x := event.Coordinate{Row: 1, Col: 0}
	var got []event.Event
	for i := 0; i < DefaultThreshold-1; i++ {
		got = d.Events(gridWith(2, 2, x), got)
	}
	for i := 0; i < 3*DefaultThreshold; i++ {
		got = d.Events(gridWith(2, 2), got)
	}
	if len(got) != 0 {
		t.Fatalf("Events() = %v, want none", got)
	}
	if d.Pressed(x) {
		t.Fatalf("Pressed(%v) = true after glitch", x)
	}
}

func TestDebounceConfirmsStableTransition(t *testing.T) {
	d := NewDebouncer(2, 3, DefaultThreshold)
	x := event.Coordinate{Row: 0, Col: 2}
	var got []event.Event
	for i := 0; i < DefaultThreshold; i++ {
		got = d.Events(gridWith(2, 3, x), got)
		if i < DefaultThreshold-1 && len(got) != 0 {
			t.Fatalf("scan %d: Events() = %v, want none yet", i, got)
		}
	}
	for i := 0; i < 4*DefaultThreshold; i++ {
		got = d.Events(gridWith(2, 3, x), got)
	}
	if len(got) != 1 || got[0] != event.NewPress(0, 2) {
		t.Fatalf("Events() = %v, want [press(0,2)]", got)
	}

	got = got[:0]
	for i := 0; i < 2*DefaultThreshold; i++ {
		got = d.Events(gridWith(2, 3), got)
	}
	if len(got) != 1 || got[0] != event.NewRelease(0, 2) {
		t.Fatalf("Events() = %v, want [release(0,2)]", got)
	}
}

func TestDebounceDisagreementRestartsCount(t *testing.T) {
	d := NewDebouncer(1, 1, 3)
	x := event.Coordinate{}
	pattern := []bool{true, true, false, true, true, true}
	var got []event.Event
	for i, closed := range pattern {
		g := NewGrid(1, 1)
		g.Set(0, 0, closed)
		got = d.Events(g, got)
		if i < len(pattern)-1 && len(got) != 0 {
			t.Fatalf("scan %d: Events() = %v, want none", i, got)
		}
	}
	if len(got) != 1 || !got[0].IsPress() || got[0].Coord != x {
		t.Fatalf("Events() = %v, want one press", got)
	}
}

func TestDebounceRowMajorOrder(t *testing.T) {
	d := NewDebouncer(2, 2, 1)
	got := d.Events(gridWith(2, 2,
		event.Coordinate{Row: 1, Col: 1},
		event.Coordinate{Row: 0, Col: 1},
		event.Coordinate{Row: 1, Col: 0},
	), nil)
	want := []event.Event{event.NewPress(0, 1), event.NewPress(1, 0), event.NewPress(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("Events() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Events()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDebounceZeroThreshold(t *testing.T) {
	d := NewDebouncer(1, 1, 0)
	if d.Threshold() != 1 {
		t.Fatalf("Threshold() = %d, want 1", d.Threshold())
	}
	if got := d.Events(gridWith(1, 1, event.Coordinate{}), nil); len(got) != 1 {
		t.Fatalf("Events() = %v, want one press", got)
	}
}

func TestScannerReadsSwitches(t *testing.T) {
	m := hal.NewSwitchMatrix("t", 4, 6)
	s, err := NewScanner(m.Rows(), m.Cols())
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	m.Set(2, 5, true)
	m.Set(0, 1, true)

	g := s.Scan()
	for r := 0; r < 4; r++ {
		for c := 0; c < 6; c++ {
			want := (r == 2 && c == 5) || (r == 0 && c == 1)
			if g.At(r, c) != want {
				t.Fatalf("Scan().At(%d,%d) = %v, want %v", r, c, g.At(r, c), want)
			}
		}
	}
}

func TestScannerRejectsBadWiring(t *testing.T) {
	m := hal.NewSwitchMatrix("t", 2, 2)
	if _, err := NewScanner(nil, m.Cols()); err == nil {
		t.Fatalf("NewScanner(no rows): want error")
	}
	// Column pins cannot drive; using them as rows must fail.
	if _, err := NewScanner(m.Cols(), m.Cols()); err == nil {
		t.Fatalf("NewScanner(cols as rows): want error")
	}
}

func TestScannerWithChatterYieldsSinglePress(t *testing.T) {
	m := hal.NewSwitchMatrix("t", 1, 1)
	m.SetChatter(4)
	s, err := NewScanner(m.Rows(), m.Cols())
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	d := NewDebouncer(1, 1, DefaultThreshold)
	m.Set(0, 0, true)

	var got []event.Event
	for i := 0; i < 20; i++ {
		got = d.Events(s.Scan(), got)
	}
	if len(got) != 1 || got[0] != event.NewPress(0, 0) {
		t.Fatalf("Events() = %v, want [press(0,0)]", got)
	}
}
