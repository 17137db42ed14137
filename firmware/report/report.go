// Package report builds 8-byte HID boot keyboard reports.
package report

import "splitkb/firmware/keycode"

const (
	Size = 8

	// MaxKeys is the number of non-modifier keys a boot report carries.
	MaxKeys = 6
)

// Report is modifier bits, a reserved byte, then up to six key codes.
type Report [Size]byte

// Build packs codes into a report. Modifiers go to byte 0; other codes fill
// bytes 2..7 in order and any beyond the sixth are dropped.
func Build(codes []keycode.Code) Report {
	var r Report
	n := 0
	for _, c := range codes {
		if c == keycode.No {
			continue
		}
		if c.IsModifier() {
			r[0] |= c.ModifierBit()
			continue
		}
		if n == MaxKeys {
			continue
		}
		r[2+n] = byte(c)
		n++
	}
	return r
}

// Device accepts reports.
type Device interface {
	Configured() bool
	SetReport(report []byte) bool
}

// Emitter sends a report only when it differs from the last one the device
// accepted. A rejected report is offered again on the next call.
type Emitter struct {
	dev  Device
	last Report
	sent uint32
	// valid is false until the first report is accepted.
	valid bool
}

// NewEmitter returns an emitter for dev.
func NewEmitter(dev Device) *Emitter {
	return &Emitter{dev: dev}
}

// Emit builds the report for codes and hands it to the device if it changed.
// It reports whether the device accepted a new report.
func (e *Emitter) Emit(codes []keycode.Code) bool {
	if !e.dev.Configured() {
		e.valid = false
		return false
	}
	r := Build(codes)
	if e.valid && r == e.last {
		return false
	}
	if !e.dev.SetReport(r[:]) {
		return false
	}
	e.last = r
	e.valid = true
	e.sent++
	return true
}

// Reset forgets the last accepted report, so the next Emit always sends.
func (e *Emitter) Reset() { e.valid = false }

// Last returns the last accepted report.
func (e *Emitter) Last() Report { return e.last }

// Sent returns the number of accepted reports.
func (e *Emitter) Sent() uint32 { return e.sent }
