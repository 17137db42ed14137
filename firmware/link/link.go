package link

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"splitkb/firmware/event"
	"splitkb/hal"
)

// DefaultBaud is the line rate of the inter-half link (8-N-1).
const DefaultBaud = 9600

// DefaultWriteTimeout bounds how long Send waits for the transmitter to take
// one byte. At 9600 baud a byte takes about 1ms on the wire.
const DefaultWriteTimeout = 20 * time.Millisecond

// ErrStuck is returned when a frame could not be written before the timeout.
// The halves can no longer agree on key state; the caller must halt.
var ErrStuck = errors.New("link: transmitter stuck")

// Receiver decodes frames from a receive-configured link.
type Receiver struct {
	rx  hal.LinkRx
	dec Decoder
}

// NewReceiver wraps rx with an empty decoder window.
func NewReceiver(rx hal.LinkRx) *Receiver {
	return &Receiver{rx: rx}
}

// Poll drains every buffered byte and appends decoded events to dst.
func (r *Receiver) Poll(dst []event.Event) []event.Event {
	for {
		b, ok := r.rx.TryReadByte()
		if !ok {
			return dst
		}
		if e, ok := r.dec.Feed(b); ok {
			dst = append(dst, e)
		}
	}
}

// Notify forwards byte-arrival notifications from the port.
func (r *Receiver) Notify(fn func()) { r.rx.Notify(fn) }

// Close releases the port. Any partial frame is discarded.
func (r *Receiver) Close() error {
	r.dec.Reset()
	return r.rx.Close()
}

// Transmitter writes frames to a transmit-configured link.
type Transmitter struct {
	tx      hal.LinkTx
	timeout time.Duration
	now     func() time.Time
	frames  uint32
}

// NewTransmitter wraps tx. A non-positive timeout selects DefaultWriteTimeout.
func NewTransmitter(tx hal.LinkTx, timeout time.Duration) *Transmitter {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Transmitter{tx: tx, timeout: timeout, now: time.Now}
}

// Send writes the frame for e. Each byte is retried while the hardware
// reports busy; a byte that is not accepted within the timeout makes Send
// return ErrStuck.
func (t *Transmitter) Send(e event.Event) error {
	f := Encode(e)
	for i := 0; i < FrameSize; i++ {
		deadline := t.now().Add(t.timeout)
		for {
			err := t.tx.WriteByte(f[i])
			if err == nil {
				break
			}
			if !errors.Is(err, hal.ErrBusy) {
				return fmt.Errorf("link: send %v: %w", e, err)
			}
			if !t.now().Before(deadline) {
				return fmt.Errorf("link: send %v: byte %d: %w", e, i, ErrStuck)
			}
			runtime.Gosched()
		}
	}
	t.frames++
	return nil
}

// Frames returns the number of frames sent.
func (t *Transmitter) Frames() uint32 { return t.frames }

// Close releases the port.
func (t *Transmitter) Close() error { return t.tx.Close() }
