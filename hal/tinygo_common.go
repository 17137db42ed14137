//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

// serialLogger writes to the USB CDC port; the hardware UART is the link.
type serialLogger struct{}

func (l *serialLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		machine.Serial.WriteByte(s[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

func (l *serialLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		machine.Serial.WriteByte(b[i])
	}
	machine.Serial.WriteByte('\r')
	machine.Serial.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type gpioPin struct {
	pin  machine.Pin
	name string
}

func (p *gpioPin) Name() string { return p.name }
func (p *gpioPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *gpioPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinOutput}
	if mode == GPIOModeInput {
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	}
	p.pin.Configure(cfg)
	return nil
}

func (p *gpioPin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *gpioPin) Write(level bool) error {
	p.pin.Set(level)
	return nil
}

type pinMatrix struct {
	rows []GPIOPin
	cols []GPIOPin
}

func newPinMatrix(rows, cols []machine.Pin) *pinMatrix {
	m := &pinMatrix{}
	for i, p := range rows {
		m.rows = append(m.rows, &gpioPin{pin: p, name: fmt.Sprintf("ROW%d", i)})
	}
	for i, p := range cols {
		m.cols = append(m.cols, &gpioPin{pin: p, name: fmt.Sprintf("COL%d", i)})
	}
	return m
}

func (m *pinMatrix) Rows() []GPIOPin { return m.rows }
func (m *pinMatrix) Cols() []GPIOPin { return m.cols }
