// Package event defines the key event that every component of the firmware
// exchanges: a press or release of one switch in the unified matrix.
package event

import "fmt"

// MaxCoordinate bounds row and column values. Coordinates stay below the link
// tag bytes so that a coordinate byte never looks like the start of a frame.
const MaxCoordinate = 0x40

// Coordinate identifies one physical switch.
type Coordinate struct {
	Row uint8
	Col uint8
}

// Valid reports whether both components are below MaxCoordinate.
func (c Coordinate) Valid() bool {
	return c.Row < MaxCoordinate && c.Col < MaxCoordinate
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Kind is the polarity of an event.
type Kind uint8

const (
	Press Kind = iota + 1
	Release
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Event is a confirmed transition of one switch.
type Event struct {
	Kind  Kind
	Coord Coordinate
}

// NewPress returns a press event at (row, col).
func NewPress(row, col uint8) Event {
	return Event{Kind: Press, Coord: Coordinate{Row: row, Col: col}}
}

// NewRelease returns a release event at (row, col).
func NewRelease(row, col uint8) Event {
	return Event{Kind: Release, Coord: Coordinate{Row: row, Col: col}}
}

func (e Event) IsPress() bool   { return e.Kind == Press }
func (e Event) IsRelease() bool { return e.Kind == Release }

func (e Event) String() string {
	return e.Kind.String() + e.Coord.String()
}

// Transform maps a local coordinate into the unified matrix.
type Transform func(Coordinate) Coordinate

// Identity leaves coordinates untouched.
func Identity(c Coordinate) Coordinate { return c }

// MirrorCols returns a transform that mirrors the column index around maxCol.
// The right-hand half is wired as a mirror image of the left one, so this
// places its keys after the left half's columns.
func MirrorCols(maxCol uint8) Transform {
	return func(c Coordinate) Coordinate {
		if c.Col > maxCol {
			return c
		}
		return Coordinate{Row: c.Row, Col: maxCol - c.Col}
	}
}

// Apply returns e with its coordinate passed through t.
func (e Event) Apply(t Transform) Event {
	if t == nil {
		return e
	}
	return Event{Kind: e.Kind, Coord: t(e.Coord)}
}
