package layout

import (
	"errors"
	"testing"

	"splitkb/firmware/event"
	kc "splitkb/firmware/keycode"
)

const (
	testRows = 4
	testCols = 5
)

// grid returns a testRows×testCols layer filled with fill, with cells
// overridden by set.
func grid(fill Action, set map[event.Coordinate]Action) [][]Action {
	rows := make([][]Action, testRows)
	for r := range rows {
		rows[r] = make([]Action, testCols)
		for c := range rows[r] {
			rows[r][c] = fill
			if a, ok := set[event.Coordinate{Row: uint8(r), Col: uint8(c)}]; ok {
				rows[r][c] = a
			}
		}
	}
	return rows
}

func at(r, c uint8) event.Coordinate { return event.Coordinate{Row: r, Col: c} }

func mustNew(t *testing.T, layers Layers) *Layout {
	t.Helper()
	l, err := New(layers)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func press(l *Layout, r, c uint8)   { l.Event(event.NewPress(r, c)) }
func release(l *Layout, r, c uint8) { l.Event(event.NewRelease(r, c)) }

func ticks(l *Layout, n int) {
	for i := 0; i < n; i++ {
		l.Tick()
	}
}

func wantKeys(t *testing.T, l *Layout, want ...kc.Code) {
	t.Helper()
	got := l.Keys().Codes()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestEndToEndLayerScenario(t *testing.T) {
	l := mustNew(t, Layers{
		grid(NoOp, map[event.Coordinate]Action{at(3, 4): L(1), at(0, 0): K(kc.A)}),
		grid(Trans, map[event.Coordinate]Action{at(0, 0): K(kc.Kb1)}),
	})

	press(l, 3, 4)
	l.Tick()
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.Kb1)

	release(l, 0, 0)
	release(l, 3, 4)
	l.Tick()
	wantKeys(t, l)

	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.A)
}

func TestLayerPriorityMostRecentWins(t *testing.T) {
	x := at(0, 0)
	l := mustNew(t, Layers{
		grid(NoOp, map[event.Coordinate]Action{x: K(kc.A), at(3, 0): L(1), at(3, 1): L(2)}),
		grid(Trans, map[event.Coordinate]Action{x: K(kc.B)}),
		grid(Trans, map[event.Coordinate]Action{x: K(kc.C)}),
	})

	press(l, 3, 1)
	press(l, 3, 0)
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.B)
	if got := l.ActiveLayers(nil); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Fatalf("ActiveLayers() = %v, want [2 1]", got)
	}

	release(l, 0, 0)
	release(l, 3, 0)
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.C)
}

func TestTransFallsThroughToLowerLayer(t *testing.T) {
	x := at(1, 1)
	l := mustNew(t, Layers{
		grid(NoOp, map[event.Coordinate]Action{x: K(kc.A), at(3, 0): L(1), at(3, 1): L(2)}),
		grid(Trans, map[event.Coordinate]Action{x: K(kc.B)}),
		grid(Trans, nil),
	})
	press(l, 3, 0)
	press(l, 3, 1)
	press(l, 1, 1)
	l.Tick()
	wantKeys(t, l, kc.B)
}

func TestHeldKeyKeepsPressTimeBinding(t *testing.T) {
	x := at(0, 0)
	l := mustNew(t, Layers{
		grid(NoOp, map[event.Coordinate]Action{x: K(kc.A), at(3, 0): L(1)}),
		grid(Trans, map[event.Coordinate]Action{x: K(kc.B)}),
	})
	press(l, 0, 0)
	press(l, 3, 0)
	l.Tick()
	wantKeys(t, l, kc.A)
	release(l, 3, 0)
	l.Tick()
	wantKeys(t, l, kc.A)
	release(l, 0, 0)
	l.Tick()
	wantKeys(t, l)
}

func holdTapLayers(cfg HoldTapConfig, timeout uint16) Layers {
	return Layers{
		grid(NoOp, map[event.Coordinate]Action{
			at(3, 2): HT(K(kc.LAlt), K(kc.Delete), timeout, cfg),
			at(0, 0): K(kc.A),
			at(0, 1): K(kc.B),
		}),
	}
}

func TestHoldTapTapBeforeTimeout(t *testing.T) {
	const timeout = 10
	l := mustNew(t, holdTapLayers(HoldTapDefault, timeout))
	press(l, 3, 2)
	ticks(l, timeout-1)
	wantKeys(t, l)
	release(l, 3, 2)

	l.Tick()
	wantKeys(t, l, kc.Delete)
	l.Tick()
	wantKeys(t, l)
	if l.Waiting() {
		t.Fatalf("Waiting() = true after tap")
	}
}

func TestHoldTapHoldAtTimeout(t *testing.T) {
	const timeout = 10
	l := mustNew(t, holdTapLayers(HoldTapDefault, timeout))
	press(l, 3, 2)
	ticks(l, timeout-1)
	wantKeys(t, l)
	l.Tick()
	wantKeys(t, l, kc.LAlt)
	ticks(l, 50)
	wantKeys(t, l, kc.LAlt)

	release(l, 3, 2)
	l.Tick()
	wantKeys(t, l)
	ticks(l, 3)
	wantKeys(t, l)
}

func TestInterruptResolvesAsHold(t *testing.T) {
	l := mustNew(t, holdTapLayers(HoldOnOtherKeyPress, 200))
	press(l, 3, 2)
	l.Tick()
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.LAlt, kc.A)

	release(l, 3, 2)
	release(l, 0, 0)
	l.Tick()
	wantKeys(t, l)
	for i := 0; i < 5; i++ {
		l.Tick()
		if l.Keys().Contains(kc.Delete) {
			t.Fatalf("tap action emitted after interrupted hold-tap")
		}
	}
}

func TestDefaultPolicyIgnoresInterrupt(t *testing.T) {
	l := mustNew(t, holdTapLayers(HoldTapDefault, 200))
	press(l, 3, 2)
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l)
	release(l, 3, 2)
	l.Tick()
	wantKeys(t, l, kc.Delete, kc.A)
}

func TestPermissiveHold(t *testing.T) {
	l := mustNew(t, holdTapLayers(PermissiveHold, 200))
	press(l, 3, 2)
	press(l, 0, 0)
	l.Tick()
	if !l.Waiting() {
		t.Fatalf("Waiting() = false after press only")
	}
	release(l, 0, 0)
	if l.Waiting() {
		t.Fatalf("Waiting() = true after nested tap")
	}
	l.Tick()
	wantKeys(t, l, kc.LAlt)

	l2 := mustNew(t, holdTapLayers(PermissiveHold, 200))
	press(l2, 3, 2)
	press(l2, 0, 0)
	release(l2, 3, 2)
	l2.Tick()
	wantKeys(t, l2, kc.Delete, kc.A)
}

func TestHoldTapLayerAppliesToInterruptingKey(t *testing.T) {
	l := mustNew(t, Layers{
		grid(NoOp, map[event.Coordinate]Action{
			at(3, 3): HT(L(1), K(kc.Space), 200, HoldOnOtherKeyPress),
			at(0, 0): K(kc.A),
		}),
		grid(Trans, map[event.Coordinate]Action{at(0, 0): K(kc.F1)}),
	})
	press(l, 3, 3)
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.F1)
}

func TestCustomEvents(t *testing.T) {
	l := mustNew(t, Layers{grid(C(7), nil)})
	if ce := l.Tick(); ce.Kind != NoCustom {
		t.Fatalf("Tick() = %+v, want none", ce)
	}
	press(l, 0, 0)
	if ce := l.Tick(); ce != (CustomEvent{Kind: CustomPress, Payload: 7}) {
		t.Fatalf("Tick() = %+v, want press 7", ce)
	}
	if ce := l.Tick(); ce.Kind != NoCustom {
		t.Fatalf("Tick() = %+v, want none", ce)
	}
	press(l, 1, 1)
	release(l, 0, 0)
	if ce := l.Tick(); ce != (CustomEvent{Kind: CustomRelease, Payload: 7}) {
		t.Fatalf("Tick() = %+v, want release 7 (last wins)", ce)
	}
}

func TestStackOverflowForcesHold(t *testing.T) {
	l := mustNew(t, holdTapLayers(HoldTapDefault, 200))
	press(l, 3, 2)
	for i := 0; i < maxStacked; i++ {
		if i%2 == 0 {
			press(l, 0, 0)
		} else {
			release(l, 0, 0)
		}
	}
	if !l.Waiting() {
		t.Fatalf("Waiting() = false before overflow")
	}
	press(l, 0, 1)
	if l.Waiting() {
		t.Fatalf("Waiting() = true after overflow")
	}
	l.Tick()
	wantKeys(t, l, kc.LAlt, kc.B)
}

func TestEventOutOfRangeIgnored(t *testing.T) {
	l := mustNew(t, Layers{grid(K(kc.A), nil)})
	press(l, testRows, 0)
	press(l, 0, testCols)
	l.Tick()
	wantKeys(t, l)
}

func TestKeysDeduplicated(t *testing.T) {
	l := mustNew(t, Layers{grid(K(kc.A), nil)})
	press(l, 0, 0)
	press(l, 1, 1)
	l.Tick()
	wantKeys(t, l, kc.A)
	release(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.A)
}

func TestValidate(t *testing.T) {
	base := func() [][]Action { return grid(K(kc.A), nil) }
	tests := []struct {
		name   string
		layers Layers
	}{
		{"empty", Layers{}},
		{"no rows", Layers{{}}},
		{"ragged", Layers{base(), grid(Trans, nil)[:2]}},
		{"transparent base", Layers{grid(K(kc.A), map[event.Coordinate]Action{at(1, 1): Trans})}},
		{"layer out of range", Layers{grid(K(kc.A), map[event.Coordinate]Action{at(0, 0): L(3)})}},
		{"zero timeout", Layers{grid(K(kc.A), map[event.Coordinate]Action{at(0, 0): HT(K(kc.LAlt), K(kc.A), 0, HoldTapDefault)})}},
		{"nested hold-tap", Layers{grid(K(kc.A), map[event.Coordinate]Action{
			at(0, 0): HT(HT(K(kc.A), K(kc.B), 5, HoldTapDefault), K(kc.A), 5, HoldTapDefault),
		})}},
		{"nil hold-tap", Layers{grid(K(kc.A), map[event.Coordinate]Action{at(0, 0): {Kind: KindHoldTap}})}},
	}
	for _, tt := range tests {
		if err := Validate(tt.layers); !errors.Is(err, ErrInvalidLayers) {
			t.Fatalf("%s: Validate() = %v, want %v", tt.name, err, ErrInvalidLayers)
		}
	}
	if err := Validate(Layers{base(), grid(Trans, nil)}); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
}

func TestResetReleasesEverything(t *testing.T) {
	l := mustNew(t, holdTapLayers(HoldOnOtherKeyPress, 10))
	press(l, 0, 0)
	l.Tick()
	wantKeys(t, l, kc.A)

	press(l, 3, 2)
	if !l.Waiting() {
		t.Fatalf("Waiting() = false after hold-tap press")
	}
	l.Reset()
	if l.Waiting() {
		t.Fatalf("Waiting() = true after Reset")
	}
	wantKeys(t, l)
	l.Tick()
	wantKeys(t, l)

	// A release for a state dropped by Reset is harmless, and later presses
	// bind normally.
	release(l, 0, 0)
	press(l, 0, 1)
	l.Tick()
	wantKeys(t, l, kc.B)
}
