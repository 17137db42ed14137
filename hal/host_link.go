//go:build !tinygo

package hal

import "sync"

const wireRxBuffer = 64

// Wire simulates the single-conductor serial link between the two halves.
//
// A byte written by a transmit-configured end is delivered to the other end
// only if that end is currently receive-configured; otherwise it is lost,
// as on the real line.
type Wire struct {
	mu   sync.Mutex
	ends [2]*WireEnd
}

// NewWire returns a wire with two unconnected ends.
func NewWire() *Wire {
	w := &Wire{}
	w.ends[0] = &WireEnd{w: w, id: 0}
	w.ends[1] = &WireEnd{w: w, id: 1}
	return w
}

// End returns one of the two ends (0 or 1).
func (w *Wire) End(i int) *WireEnd { return w.ends[i&1] }

type wireMode uint8

const (
	wireIdle wireMode = iota
	wireRx
	wireTx
)

// WireEnd is one side of a Wire and implements LinkPort.
type WireEnd struct {
	w  *Wire
	id int

	mode   wireMode
	gen    uint32
	buf    [wireRxBuffer]byte
	head   int
	count  int
	notify func()

	stuck   bool
	dropped uint32
	sent    uint32
}

func (e *WireEnd) peer() *WireEnd { return e.w.ends[e.id^1] }

// SetStuck makes writes on this end report ErrBusy forever.
func (e *WireEnd) SetStuck(stuck bool) {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	e.stuck = stuck
}

// Stats returns the number of bytes sent and the number of bytes lost
// because the other end was not listening or its buffer overran.
func (e *WireEnd) Stats() (sent, dropped uint32) {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	return e.sent, e.dropped
}

// Inject places raw bytes into this end's receive buffer as if the peer had
// sent them. It is a test hook for corrupted streams.
func (e *WireEnd) Inject(p []byte) {
	e.w.mu.Lock()
	var fn func()
	for _, b := range p {
		if e.deliverLocked(b) {
			fn = e.notify
		}
	}
	e.w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (e *WireEnd) deliverLocked(b byte) bool {
	if e.mode != wireRx {
		return false
	}
	if e.count == len(e.buf) {
		return false
	}
	e.buf[(e.head+e.count)%len(e.buf)] = b
	e.count++
	return true
}

func (e *WireEnd) OpenRx(baud uint32) (LinkRx, error) {
	_ = baud
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	e.gen++
	e.mode = wireRx
	e.head, e.count = 0, 0
	e.notify = nil
	return &wireRxHandle{e: e, gen: e.gen}, nil
}

func (e *WireEnd) OpenTx(baud uint32) (LinkTx, error) {
	_ = baud
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	e.gen++
	e.mode = wireTx
	e.head, e.count = 0, 0
	e.notify = nil
	return &wireTxHandle{e: e, gen: e.gen}, nil
}

type wireRxHandle struct {
	e   *WireEnd
	gen uint32
}

func (r *wireRxHandle) live() bool { return r.e.gen == r.gen && r.e.mode == wireRx }

func (r *wireRxHandle) TryReadByte() (byte, bool) {
	r.e.w.mu.Lock()
	defer r.e.w.mu.Unlock()
	if !r.live() || r.e.count == 0 {
		return 0, false
	}
	b := r.e.buf[r.e.head]
	r.e.head = (r.e.head + 1) % len(r.e.buf)
	r.e.count--
	return b, true
}

func (r *wireRxHandle) Buffered() int {
	r.e.w.mu.Lock()
	defer r.e.w.mu.Unlock()
	if !r.live() {
		return 0
	}
	return r.e.count
}

func (r *wireRxHandle) Notify(fn func()) {
	r.e.w.mu.Lock()
	defer r.e.w.mu.Unlock()
	if r.live() {
		r.e.notify = fn
	}
}

func (r *wireRxHandle) Close() error {
	r.e.w.mu.Lock()
	defer r.e.w.mu.Unlock()
	if !r.live() {
		return ErrClosed
	}
	r.e.mode = wireIdle
	r.e.notify = nil
	r.e.head, r.e.count = 0, 0
	return nil
}

type wireTxHandle struct {
	e   *WireEnd
	gen uint32
}

func (t *wireTxHandle) live() bool { return t.e.gen == t.gen && t.e.mode == wireTx }

func (t *wireTxHandle) WriteByte(b byte) error {
	t.e.w.mu.Lock()
	if !t.live() {
		t.e.w.mu.Unlock()
		return ErrClosed
	}
	if t.e.stuck {
		t.e.w.mu.Unlock()
		return ErrBusy
	}
	t.e.sent++
	p := t.e.peer()
	var fn func()
	if p.deliverLocked(b) {
		fn = p.notify
	} else {
		t.e.dropped++
	}
	t.e.w.mu.Unlock()
	if fn != nil {
		fn()
	}
	return nil
}

func (t *wireTxHandle) Close() error {
	t.e.w.mu.Lock()
	defer t.e.w.mu.Unlock()
	if !t.live() {
		return ErrClosed
	}
	t.e.mode = wireIdle
	return nil
}
