// Package link carries key events between the two halves as 4-byte frames
// over a half-duplex serial line.
package link

import "splitkb/firmware/event"

// Frame layout: tag, row, col, terminator.
const (
	FrameSize = 4

	TagPress   = 'P'
	TagRelease = 'R'
	Terminator = '\n'
)

// Frame is one encoded event.
type Frame [FrameSize]byte

// Encode returns the frame for e.
func Encode(e event.Event) Frame {
	tag := byte(TagPress)
	if e.Kind == event.Release {
		tag = TagRelease
	}
	return Frame{tag, e.Coord.Row, e.Coord.Col, Terminator}
}

// Decode parses an exact 4-byte window.
func Decode(w []byte) (event.Event, bool) {
	if len(w) != FrameSize || w[3] != Terminator {
		return event.Event{}, false
	}
	c := event.Coordinate{Row: w[1], Col: w[2]}
	if !c.Valid() {
		return event.Event{}, false
	}
	switch w[0] {
	case TagPress:
		return event.Event{Kind: event.Press, Coord: c}, true
	case TagRelease:
		return event.Event{Kind: event.Release, Coord: c}, true
	default:
		return event.Event{}, false
	}
}

// Decoder matches frames on a sliding window, one byte at a time. Garbage is
// skipped silently; the window resynchronizes within three bytes.
type Decoder struct {
	win Frame
}

// Feed rotates b into the window and reports a decoded event when the window
// holds a complete frame.
func (d *Decoder) Feed(b byte) (event.Event, bool) {
	d.win[0], d.win[1], d.win[2], d.win[3] = d.win[1], d.win[2], d.win[3], b
	e, ok := Decode(d.win[:])
	if ok {
		d.Reset()
	}
	return e, ok
}

// Reset discards any partial frame.
func (d *Decoder) Reset() { d.win = Frame{} }
