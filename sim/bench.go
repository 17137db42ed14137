//go:build !tinygo

// Package sim runs both keyboard halves on the host: two systems joined by a
// simulated serial wire, with a USB cable that can be moved between them.
package sim

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"splitkb/app"
	"splitkb/firmware/event"
	"splitkb/firmware/role"
	"splitkb/hal"
)

// Attach names where the USB cable is plugged in.
type Attach uint8

const (
	AttachNone Attach = iota
	AttachLeft
	AttachRight
)

func (a Attach) String() string {
	switch a {
	case AttachLeft:
		return "left"
	case AttachRight:
		return "right"
	default:
		return "none"
	}
}

// ParseAttach accepts "left", "right" or "none".
func ParseAttach(s string) (Attach, error) {
	switch s {
	case "none", "":
		return AttachNone, nil
	case "left":
		return AttachLeft, nil
	case "right":
		return AttachRight, nil
	default:
		return AttachNone, fmt.Errorf("sim: unknown usb attachment %q", s)
	}
}

// Report is one HID report accepted by a half's USB device.
type Report struct {
	Tick uint64
	Side app.Side
	Data [8]byte
}

// Half is one simulated keyboard half.
type Half struct {
	Host   *hal.Host
	System *app.System
}

// Config describes a bench.
type Config struct {
	// Base is the configuration applied to both halves; Side is set per half.
	Base app.Config
	// Log receives firmware log lines; nil means stderr.
	Log io.Writer
	// PanelW and PanelH size each half's status display inside the bench
	// framebuffer; zero disables the framebuffer. ConsoleH is the height of
	// the report console below the panels.
	PanelW, PanelH int
	ConsoleH       int
}

// Bench holds two halves on one wire.
type Bench struct {
	wire   *hal.Wire
	halves [2]Half
	attach Attach
	tick   uint64

	fb       *Framebuffer
	panels   [2]*Region
	console  *Region
	mu       sync.Mutex
	reports  []Report
	onReport func(Report)
}

// New builds both halves. The USB cable starts unplugged.
func New(cfg Config) (*Bench, error) {
	w := cfg.Log
	if w == nil {
		w = os.Stderr
	}
	b := &Bench{wire: hal.NewWire()}
	if cfg.PanelW > 0 && cfg.PanelH > 0 {
		b.fb = NewFramebuffer(2*cfg.PanelW+panelGap, cfg.PanelH+panelGap+cfg.ConsoleH)
		b.panels[0] = b.fb.Region(0, 0, cfg.PanelW, cfg.PanelH)
		b.panels[1] = b.fb.Region(cfg.PanelW+panelGap, 0, cfg.PanelW, cfg.PanelH)
		if cfg.ConsoleH > 0 {
			b.console = b.fb.Region(0, cfg.PanelH+panelGap, b.fb.Width(), cfg.ConsoleH)
		}
	}

	for i, side := range []app.Side{app.Left, app.Right} {
		side := side // per-iteration copy for the OnReport closure (go < 1.22 loopvar semantics)
		c := cfg.Base
		c.Side = side
		h := hal.NewHost(hal.HostConfig{
			Name: side.String(),
			Rows: c.Rows,
			Cols: c.Cols,
			Link: b.wire.End(i),
			Log:  w,
		})
		if p := b.panels[i]; p != nil {
			h.SetStatusDisplay(p)
		}
		h.USBDevice().OnReport(func(data []byte) { b.record(side, data) })
		sys, err := app.New(h, c)
		if err != nil {
			return nil, fmt.Errorf("sim: %s half: %w", side, err)
		}
		b.halves[i] = Half{Host: h, System: sys}
	}
	return b, nil
}

const panelGap = 8

func (b *Bench) record(side app.Side, data []byte) {
	r := Report{Tick: b.tick, Side: side}
	copy(r.Data[:], data)
	b.mu.Lock()
	b.reports = append(b.reports, r)
	fn := b.onReport
	b.mu.Unlock()
	if fn != nil {
		fn(r)
	}
}

// OnReport registers fn to observe every report as it is accepted.
func (b *Bench) OnReport(fn func(Report)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onReport = fn
}

// Reports returns every report accepted so far.
func (b *Bench) Reports() []Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Report(nil), b.reports...)
}

// Half returns one half.
func (b *Bench) Half(side app.Side) Half { return b.halves[side&1] }

// Framebuffer returns the panel framebuffer, or nil without panels.
func (b *Bench) Framebuffer() *Framebuffer { return b.fb }

// Console returns the console region, or nil.
func (b *Bench) Console() *Region { return b.console }

// Tick returns the number of steps run.
func (b *Bench) Tick() uint64 { return b.tick }

// Attach moves the USB cable.
func (b *Bench) Attach(a Attach) {
	b.attach = a
	b.halves[0].Host.USBDevice().SetAttached(a == AttachLeft)
	b.halves[1].Host.USBDevice().SetAttached(a == AttachRight)
}

// Attached returns where the USB cable is.
func (b *Bench) Attached() Attach { return b.attach }

// Set closes or opens a switch in a half's local matrix.
func (b *Bench) Set(side app.Side, row, col int, pressed bool) {
	b.halves[side&1].Host.Switches().Set(row, col, pressed)
}

// SetUnified closes or opens the switch at a unified coordinate, picking the
// half and local column it belongs to.
func (b *Bench) SetUnified(c event.Coordinate, pressed bool) {
	side, row, col, ok := b.Locate(c)
	if !ok {
		return
	}
	b.Set(side, row, col, pressed)
}

// Locate maps a unified coordinate back to a half and local position.
func (b *Bench) Locate(c event.Coordinate) (side app.Side, row, col int, ok bool) {
	cfg := b.halves[0].System.Config()
	if int(c.Row) >= cfg.Rows || int(c.Col) >= cfg.UnifiedCols {
		return app.Left, 0, 0, false
	}
	if int(c.Col) < cfg.Cols {
		return app.Left, int(c.Row), int(c.Col), true
	}
	local := cfg.UnifiedCols - 1 - int(c.Col)
	if local < 0 || local >= cfg.Cols {
		return app.Left, 0, 0, false
	}
	return app.Right, int(c.Row), local, true
}

// Step advances both halves by one period. The secondary-capable right half
// runs first so frames it sends are seen by the left half in the same step.
func (b *Bench) Step() error {
	b.tick++
	for i := len(b.halves) - 1; i >= 0; i-- {
		h := b.halves[i]
		h.Host.Clock().Advance(1)
		h.System.Tick()
	}
	return b.Err()
}

// Err returns the first halt error of either half.
func (b *Bench) Err() error {
	var errs []error
	for _, h := range b.halves {
		if err := h.System.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.System.Config().Side, err))
		}
	}
	return errors.Join(errs...)
}

// Primary returns the half currently acting as primary, if any.
func (b *Bench) Primary() (app.Side, bool) {
	for i, h := range b.halves {
		if h.System.Role() == role.Primary {
			return app.Side(i), true
		}
	}
	return app.Left, false
}
