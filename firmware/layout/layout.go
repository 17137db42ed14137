package layout

import (
	"errors"
	"fmt"

	"splitkb/firmware/event"
	"splitkb/firmware/keycode"
)

const (
	maxStates  = 64
	maxStacked = 16

	// MaxKeys bounds the active key set.
	MaxKeys = 32
)

// ErrInvalidLayers is wrapped by every keymap validation error.
var ErrInvalidLayers = errors.New("layout: invalid layers")

// CustomKind tells whether a custom action went down or up.
type CustomKind uint8

const (
	NoCustom CustomKind = iota
	CustomPress
	CustomRelease
)

// CustomEvent is returned by Tick when a custom action changed state.
type CustomEvent struct {
	Kind    CustomKind
	Payload uint8
}

// Keys is an ordered set of key codes: press order, no duplicates.
type Keys struct {
	codes [MaxKeys]keycode.Code
	n     uint8
}

func (k Keys) Len() int { return int(k.n) }

// Codes returns the codes in press order.
func (k Keys) Codes() []keycode.Code { return k.codes[:k.n] }

// Contains reports whether c is active.
func (k Keys) Contains(c keycode.Code) bool {
	for _, x := range k.codes[:k.n] {
		if x == c {
			return true
		}
	}
	return false
}

func (k *Keys) add(c keycode.Code) {
	if c == keycode.No || k.n == MaxKeys || k.Contains(c) {
		return
	}
	k.codes[k.n] = c
	k.n++
}

type stateKind uint8

const (
	stateKey stateKind = iota
	stateLayer
	stateCustom
)

// state is what a pressed coordinate contributes. It is bound when the key
// goes down and dropped when it comes up, so a layer change in between never
// changes what a held key does.
type state struct {
	kind  stateKind
	coord event.Coordinate
	code  keycode.Code
	value uint8 // layer index or custom payload

	// oneShot states come from taps; they live for exactly one tick and
	// ignore the release of their coordinate.
	oneShot bool
}

type waiting struct {
	coord   event.Coordinate
	ht      *HoldTapAction
	elapsed uint16
}

// Layout is the keymap engine. It is not safe for concurrent use.
type Layout struct {
	layers Layers
	rows   int
	cols   int

	states  [maxStates]state
	nstates int

	waiting *waiting
	wait    waiting

	stacked  [maxStacked]event.Event
	sHead    int
	sCount   int
	custom   CustomEvent
	keys     Keys
	ticks    uint32
	overflow uint32
}

// New validates layers and returns an engine with nothing pressed.
func New(layers Layers) (*Layout, error) {
	if err := Validate(layers); err != nil {
		return nil, err
	}
	return &Layout{
		layers: layers,
		rows:   len(layers[0]),
		cols:   len(layers[0][0]),
	}, nil
}

// Validate checks that layers form a usable keymap.
func Validate(layers Layers) error {
	if len(layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidLayers)
	}
	if len(layers) > 256 {
		return fmt.Errorf("%w: %d layers", ErrInvalidLayers, len(layers))
	}
	rows := len(layers[0])
	if rows == 0 || rows > event.MaxCoordinate {
		return fmt.Errorf("%w: %d rows", ErrInvalidLayers, rows)
	}
	cols := len(layers[0][0])
	if cols == 0 || cols > event.MaxCoordinate {
		return fmt.Errorf("%w: %d cols", ErrInvalidLayers, cols)
	}
	for n, layer := range layers {
		if len(layer) != rows {
			return fmt.Errorf("%w: layer %d has %d rows, want %d", ErrInvalidLayers, n, len(layer), rows)
		}
		for r, row := range layer {
			if len(row) != cols {
				return fmt.Errorf("%w: layer %d row %d has %d cols, want %d", ErrInvalidLayers, n, r, len(row), cols)
			}
			for c, a := range row {
				if n == 0 && a.Kind == KindTrans {
					return fmt.Errorf("%w: base layer (%d,%d) is transparent", ErrInvalidLayers, r, c)
				}
				if err := validateAction(a, len(layers), false); err != nil {
					return fmt.Errorf("%w: layer %d (%d,%d): %v", ErrInvalidLayers, n, r, c, err)
				}
			}
		}
	}
	return nil
}

func validateAction(a Action, nlayers int, nested bool) error {
	switch a.Kind {
	case KindTrans:
		if nested {
			return errors.New("hold-tap branch is transparent")
		}
	case KindNoOp, KindKey, KindCustom:
	case KindLayer:
		if int(a.Layer) >= nlayers {
			return fmt.Errorf("layer %d out of range", a.Layer)
		}
		if a.Layer == 0 {
			return errors.New("layer 0 is always active")
		}
	case KindHoldTap:
		if nested {
			return errors.New("nested hold-tap")
		}
		ht := a.HoldTap
		if ht == nil {
			return errors.New("hold-tap without payload")
		}
		if ht.Timeout == 0 {
			return errors.New("hold-tap timeout is zero")
		}
		if ht.Config > PermissiveHold {
			return fmt.Errorf("unknown hold-tap config %d", ht.Config)
		}
		if err := validateAction(ht.Hold, nlayers, true); err != nil {
			return fmt.Errorf("hold: %v", err)
		}
		if err := validateAction(ht.Tap, nlayers, true); err != nil {
			return fmt.Errorf("tap: %v", err)
		}
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
	return nil
}

func (l *Layout) Rows() int { return l.rows }
func (l *Layout) Cols() int { return l.cols }

// Layers returns the keymap.
func (l *Layout) Layers() Layers { return l.layers }

// Reset releases everything: bound states, the undecided hold-tap, held-back
// events and the pending custom event. The next Tick reports no keys.
func (l *Layout) Reset() {
	l.nstates = 0
	l.waiting = nil
	l.sHead, l.sCount = 0, 0
	l.custom = CustomEvent{}
	l.keys = Keys{}
}

// Event feeds one confirmed key event. Events that arrive while a hold-tap is
// undecided are held back and replayed once it resolves.
func (l *Layout) Event(e event.Event) {
	if int(e.Coord.Row) >= l.rows || int(e.Coord.Col) >= l.cols {
		return
	}
	if l.sCount == maxStacked {
		// Out of room: decide the pending hold-tap now.
		l.resolve(true)
		l.process()
	}
	l.push(e)
	l.process()
}

// Tick advances time by one period and recomputes the active keys. It
// returns the latest custom action change since the previous tick.
func (l *Layout) Tick() CustomEvent {
	l.ticks++
	if w := l.waiting; w != nil {
		w.elapsed++
		if w.elapsed >= w.ht.Timeout {
			l.resolve(true)
			l.process()
		}
	}

	l.keys = Keys{}
	for i := 0; i < l.nstates; i++ {
		if s := &l.states[i]; s.kind == stateKey {
			l.keys.add(s.code)
		}
	}

	ce := l.custom
	l.custom = CustomEvent{}
	l.expireOneShots()
	return ce
}

// Keys returns the active keys computed by the last Tick.
func (l *Layout) Keys() Keys { return l.keys }

// ActiveLayers appends the active layers above the base, oldest first.
func (l *Layout) ActiveLayers(dst []uint8) []uint8 {
	for i := 0; i < l.nstates; i++ {
		if s := &l.states[i]; s.kind == stateLayer {
			dst = append(dst, s.value)
		}
	}
	return dst
}

// Waiting reports whether a hold-tap is undecided.
func (l *Layout) Waiting() bool { return l.waiting != nil }

// Dropped returns how many states could not be recorded because too many
// keys were held.
func (l *Layout) Dropped() uint32 { return l.overflow }

// ActionAt returns the action a press at c would bind right now.
func (l *Layout) ActionAt(c event.Coordinate) Action {
	if int(c.Row) >= l.rows || int(c.Col) >= l.cols {
		return NoOp
	}
	for i := l.nstates - 1; i >= 0; i-- {
		s := &l.states[i]
		if s.kind != stateLayer {
			continue
		}
		if a := l.layers[s.value][c.Row][c.Col]; a.Kind != KindTrans {
			return a
		}
	}
	return l.layers[0][c.Row][c.Col]
}

func (l *Layout) push(e event.Event) {
	l.stacked[(l.sHead+l.sCount)%maxStacked] = e
	l.sCount++
}

func (l *Layout) pop() event.Event {
	e := l.stacked[l.sHead]
	l.sHead = (l.sHead + 1) % maxStacked
	l.sCount--
	return e
}

func (l *Layout) stackedAt(i int) event.Event {
	return l.stacked[(l.sHead+i)%maxStacked]
}

// process applies queued events until the queue is empty or a hold-tap is
// waiting for more input.
func (l *Layout) process() {
	for l.sCount > 0 {
		if l.waiting != nil {
			hold, decided := l.decide()
			if !decided {
				return
			}
			l.resolve(hold)
			continue
		}
		l.apply(l.pop())
	}
}

// decide looks at the events queued behind the waiting hold-tap.
func (l *Layout) decide() (hold, decided bool) {
	w := l.waiting
	for i := 0; i < l.sCount; i++ {
		e := l.stackedAt(i)
		if e.Coord == w.coord {
			if e.IsRelease() {
				return false, true
			}
			continue
		}
		switch w.ht.Config {
		case HoldOnOtherKeyPress:
			if e.IsPress() {
				return true, true
			}
		case PermissiveHold:
			if e.IsRelease() && l.pressedSince(i, e.Coord) {
				return true, true
			}
		}
	}
	return false, false
}

func (l *Layout) pressedSince(end int, c event.Coordinate) bool {
	for i := 0; i < end; i++ {
		if e := l.stackedAt(i); e.IsPress() && e.Coord == c {
			return true
		}
	}
	return false
}

func (l *Layout) resolve(hold bool) {
	w := l.waiting
	if w == nil {
		return
	}
	l.waiting = nil
	if hold {
		l.bind(w.coord, w.ht.Hold, false)
		return
	}
	l.bind(w.coord, w.ht.Tap, true)
}

func (l *Layout) apply(e event.Event) {
	if e.IsRelease() {
		l.release(e.Coord)
		return
	}
	for i := 0; i < l.nstates; i++ {
		if s := &l.states[i]; s.coord == e.Coord && !s.oneShot {
			return
		}
	}
	a := l.ActionAt(e.Coord)
	if a.Kind == KindHoldTap {
		l.wait = waiting{coord: e.Coord, ht: a.HoldTap}
		l.waiting = &l.wait
		return
	}
	l.bind(e.Coord, a, false)
}

func (l *Layout) bind(c event.Coordinate, a Action, oneShot bool) {
	var s state
	switch a.Kind {
	case KindKey:
		s = state{kind: stateKey, code: a.Key}
	case KindLayer:
		s = state{kind: stateLayer, value: a.Layer}
	case KindCustom:
		s = state{kind: stateCustom, value: a.Custom}
		l.custom = CustomEvent{Kind: CustomPress, Payload: a.Custom}
	default:
		return
	}
	if l.nstates == maxStates {
		l.overflow++
		return
	}
	s.coord = c
	s.oneShot = oneShot
	l.states[l.nstates] = s
	l.nstates++
}

func (l *Layout) release(c event.Coordinate) {
	l.removeWhere(func(s *state) bool { return s.coord == c && !s.oneShot })
}

func (l *Layout) expireOneShots() {
	l.removeWhere(func(s *state) bool { return s.oneShot })
}

func (l *Layout) removeWhere(match func(*state) bool) {
	j := 0
	for i := 0; i < l.nstates; i++ {
		s := l.states[i]
		if match(&s) {
			if s.kind == stateCustom {
				l.custom = CustomEvent{Kind: CustomRelease, Payload: s.value}
			}
			continue
		}
		l.states[j] = s
		j++
	}
	l.nstates = j
}
