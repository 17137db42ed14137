package hal

import (
	"errors"
	"image/color"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrBusy is returned by LinkTx.WriteByte while the transmit register is full.
	ErrBusy = errors.New("busy")

	// ErrClosed is returned by link handles after Close.
	ErrClosed = errors.New("closed")
)

// MatrixPins exposes the key matrix scan lines.
//
// Rows are driven (outputs), columns are sampled (pull-up inputs).
type MatrixPins interface {
	Rows() []GPIOPin
	Cols() []GPIOPin
}

// LinkPort is the physical half-duplex link to the other half.
//
// At most one handle is open at a time; the caller closes the old handle
// before opening the other direction.
type LinkPort interface {
	OpenRx(baud uint32) (LinkRx, error)
	OpenTx(baud uint32) (LinkTx, error)
}

// LinkRx is a receive-configured link. Opening it discards stale bytes.
type LinkRx interface {
	// TryReadByte drains one byte from the receive buffer, if any.
	TryReadByte() (byte, bool)
	Buffered() int
	// Notify registers fn to be called when a byte arrives.
	// fn may run in interrupt context and must not block.
	Notify(fn func())
	Close() error
}

// LinkTx is a transmit-configured link.
type LinkTx interface {
	// WriteByte queues one byte, returning ErrBusy if the hardware cannot
	// accept it right now.
	WriteByte(b byte) error
	Close() error
}

// USBDevice is the host-facing USB HID black box.
type USBDevice interface {
	// Poll services the protocol and reports whether a class-level event
	// needs servicing.
	Poll() bool
	// Configured reports whether a host enumerated the device.
	Configured() bool
	// SetReport hands an 8-byte keyboard report to the device.
	SetReport(report []byte) bool
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; the firmware assumes 1ms.
type Time interface {
	Ticks() <-chan uint64
}

// Bootloader restarts the MCU into its bootloader.
type Bootloader interface {
	EnterBootloader()
}

// Displayer is a small pixel display with rectangle fills.
type Displayer interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// HAL provides the only contact point between the firmware and the board.
type HAL interface {
	Logger() Logger
	LED() LED
	Matrix() MatrixPins
	Link() LinkPort
	USB() USBDevice
	Time() Time
	Bootloader() Bootloader
	// StatusDisplay returns nil on boards without a display.
	StatusDisplay() Displayer
}
