package matrix

import "splitkb/firmware/event"

// DefaultThreshold is the number of consecutive disagreeing scans needed to
// confirm a transition.
const DefaultThreshold = 5

// Debouncer turns raw grids into confirmed press/release events. A change
// must be seen on threshold consecutive scans; any scan that agrees with the
// confirmed state restarts the count.
type Debouncer struct {
	rows      int
	cols      int
	threshold uint8
	counters  [MaxRows][MaxCols]uint8
	confirmed Grid
}

// NewDebouncer returns a debouncer with every switch released. A threshold of
// zero is treated as one.
func NewDebouncer(rows, cols int, threshold uint8) *Debouncer {
	if threshold == 0 {
		threshold = 1
	}
	g := NewGrid(rows, cols)
	return &Debouncer{
		rows:      g.Rows(),
		cols:      g.Cols(),
		threshold: threshold,
		confirmed: g,
	}
}

// Threshold returns the number of agreeing scans needed for a transition.
func (d *Debouncer) Threshold() uint8 { return d.threshold }

// Events feeds one scan and appends the confirmed transitions to dst in
// row-major order, at most one per switch.
func (d *Debouncer) Events(raw Grid, dst []event.Event) []event.Event {
	for r := 0; r < d.rows; r++ {
		for c := 0; c < d.cols; c++ {
			sample := raw.At(r, c)
			if sample == d.confirmed.cells[r][c] {
				d.counters[r][c] = 0
				continue
			}
			d.counters[r][c]++
			if d.counters[r][c] < d.threshold {
				continue
			}
			d.counters[r][c] = 0
			d.confirmed.cells[r][c] = sample
			if sample {
				dst = append(dst, event.NewPress(uint8(r), uint8(c)))
			} else {
				dst = append(dst, event.NewRelease(uint8(r), uint8(c)))
			}
		}
	}
	return dst
}

// Pressed reports the confirmed state of c.
func (d *Debouncer) Pressed(c event.Coordinate) bool {
	return d.confirmed.At(int(c.Row), int(c.Col))
}

// Confirmed returns a copy of the confirmed grid.
func (d *Debouncer) Confirmed() Grid { return d.confirmed }
