//go:build tinygo && baremetal

package hal

import (
	"device/rp"
	"machine"
	"time"
)

// uartPort drives the half-duplex link. Both UART pins sit on the same data
// line, so the unused one is released (high impedance) in each direction.
type uartPort struct {
	uart *machine.UART
	tx   machine.Pin
	rx   machine.Pin

	gen    uint32
	notify func()
}

func newUARTPort(uart *machine.UART, tx, rx machine.Pin) *uartPort {
	p := &uartPort{uart: uart, tx: tx, rx: rx}
	go p.watch()
	return p
}

// watch stands in for the receive interrupt: the TinyGo UART driver buffers
// bytes in its own handler, so pending data is signalled from here.
func (p *uartPort) watch() {
	for {
		if fn := p.notify; fn != nil && p.uart.Buffered() > 0 {
			fn()
		}
		time.Sleep(100 * time.Microsecond)
	}
}

func (p *uartPort) OpenRx(baud uint32) (LinkRx, error) {
	p.gen++
	p.notify = nil
	if err := p.uart.Configure(machine.UARTConfig{BaudRate: baud, TX: p.tx, RX: p.rx}); err != nil {
		return nil, err
	}
	p.tx.Configure(machine.PinConfig{Mode: machine.PinInput})
	for p.uart.Buffered() > 0 {
		_, _ = p.uart.ReadByte()
	}
	return &uartRx{p: p, gen: p.gen}, nil
}

func (p *uartPort) OpenTx(baud uint32) (LinkTx, error) {
	p.gen++
	p.notify = nil
	if err := p.uart.Configure(machine.UARTConfig{BaudRate: baud, TX: p.tx, RX: p.rx}); err != nil {
		return nil, err
	}
	p.rx.Configure(machine.PinConfig{Mode: machine.PinInput})
	return &uartTx{p: p, gen: p.gen}, nil
}

type uartRx struct {
	p   *uartPort
	gen uint32
}

func (r *uartRx) TryReadByte() (byte, bool) {
	if r.p.gen != r.gen || r.p.uart.Buffered() == 0 {
		return 0, false
	}
	b, err := r.p.uart.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

func (r *uartRx) Buffered() int {
	if r.p.gen != r.gen {
		return 0
	}
	return r.p.uart.Buffered()
}

func (r *uartRx) Notify(fn func()) {
	if r.p.gen == r.gen {
		r.p.notify = fn
	}
}

func (r *uartRx) Close() error {
	if r.p.gen != r.gen {
		return ErrClosed
	}
	r.p.gen++
	r.p.notify = nil
	r.p.rx.Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}

type uartTx struct {
	p   *uartPort
	gen uint32
}

// WriteByte never waits: with the TX FIFO full it returns ErrBusy and the
// caller's write timeout decides when the link is stuck.
func (t *uartTx) WriteByte(b byte) error {
	if t.p.gen != t.gen {
		return ErrClosed
	}
	return writeFIFO(t, b)
}

func (t *uartTx) txFull() bool {
	return t.p.uart.Bus.UARTFR.HasBits(rp.UART0_UARTFR_TXFF)
}

// put only runs with room in the FIFO, so the driver does not spin.
func (t *uartTx) put(b byte) error { return t.p.uart.WriteByte(b) }

func (t *uartTx) Close() error {
	if t.p.gen != t.gen {
		return ErrClosed
	}
	t.p.gen++
	t.p.tx.Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}
