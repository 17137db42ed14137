// Package role decides whether this half is the USB-attached primary or the
// link-attached secondary, and owns the link handle for the active role.
package role

import (
	"errors"
	"fmt"
	"time"

	"splitkb/firmware/link"
	"splitkb/hal"
)

// Role is the part this half plays.
type Role uint8

const (
	Secondary Role = iota
	Primary
)

func (r Role) String() string {
	if r == Primary {
		return "primary"
	}
	return "secondary"
}

// Attachment reports whether a USB host configured the device.
type Attachment interface {
	Configured() bool
}

// Config holds the link parameters.
type Config struct {
	Baud         uint32
	WriteTimeout time.Duration
	// OnReceive is registered on every receiver the manager opens.
	OnReceive func()
}

// Manager is the role state machine. The primary listens on the link; the
// secondary transmits. Exactly one of Receiver and Transmitter is non-nil.
type Manager struct {
	port hal.LinkPort
	usb  Attachment
	cfg  Config

	role        Role
	rx          *link.Receiver
	tx          *link.Transmitter
	transitions uint32
}

// New returns a manager in the secondary role with the link transmitting.
func New(port hal.LinkPort, usb Attachment, cfg Config) (*Manager, error) {
	if port == nil {
		return nil, errors.New("role: nil link port")
	}
	if usb == nil {
		return nil, errors.New("role: nil usb attachment")
	}
	if cfg.Baud == 0 {
		cfg.Baud = link.DefaultBaud
	}
	m := &Manager{port: port, usb: usb, cfg: cfg}
	tx, err := port.OpenTx(cfg.Baud)
	if err != nil {
		return nil, fmt.Errorf("role: open tx: %w", err)
	}
	m.tx = link.NewTransmitter(tx, cfg.WriteTimeout)
	return m, nil
}

// Update re-evaluates the role from the USB state and flips the link
// direction on a change. It reports whether the role changed. An error means
// the link is unusable.
func (m *Manager) Update() (bool, error) {
	want := Secondary
	if m.usb.Configured() {
		want = Primary
	}
	if want == m.role {
		return false, nil
	}
	if err := m.closeActive(); err != nil {
		return false, err
	}

	switch want {
	case Primary:
		rx, err := m.port.OpenRx(m.cfg.Baud)
		if err != nil {
			return false, fmt.Errorf("role: open rx: %w", err)
		}
		r := link.NewReceiver(rx)
		if m.cfg.OnReceive != nil {
			r.Notify(m.cfg.OnReceive)
		}
		m.rx = r
	default:
		tx, err := m.port.OpenTx(m.cfg.Baud)
		if err != nil {
			return false, fmt.Errorf("role: open tx: %w", err)
		}
		m.tx = link.NewTransmitter(tx, m.cfg.WriteTimeout)
	}
	m.role = want
	m.transitions++
	return true, nil
}

func (m *Manager) closeActive() error {
	var err error
	if m.rx != nil {
		err = m.rx.Close()
		m.rx = nil
	}
	if m.tx != nil {
		err = m.tx.Close()
		m.tx = nil
	}
	if err != nil && !errors.Is(err, hal.ErrClosed) {
		return fmt.Errorf("role: close %s link: %w", m.role, err)
	}
	return nil
}

// Role returns the current role.
func (m *Manager) Role() Role { return m.role }

// Receiver returns the link receiver while primary, else nil.
func (m *Manager) Receiver() *link.Receiver { return m.rx }

// Transmitter returns the link transmitter while secondary, else nil.
func (m *Manager) Transmitter() *link.Transmitter { return m.tx }

// Transitions returns how many role changes happened.
func (m *Manager) Transitions() uint32 { return m.transitions }
