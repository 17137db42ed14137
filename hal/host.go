//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig describes one simulated keyboard half.
type HostConfig struct {
	Name string
	Rows int
	Cols int
	// Link is the port wired to the other half. Nil gives a port whose
	// writes are lost.
	Link LinkPort
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

// Host is the HAL of one simulated half. Besides the HAL interface it
// exposes the simulation controls (switches, USB cable, clock).
type Host struct {
	name    string
	logger  *hostLogger
	led     *hostLED
	matrix  *SwitchMatrix
	link    LinkPort
	usb     *HostUSB
	t       *HostTime
	boot    *hostBootloader
	display Displayer
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	if cfg.Name == "" {
		cfg.Name = "host"
	}
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	logger := &hostLogger{w: w, prefix: cfg.Name + ": "}
	link := cfg.Link
	if link == nil {
		link = NewWire().End(0)
	}
	return &Host{
		name:   cfg.Name,
		logger: logger,
		led:    &hostLED{},
		matrix: NewSwitchMatrix(cfg.Name, cfg.Rows, cfg.Cols),
		link:   link,
		usb:    NewHostUSB(),
		t:      newHostTime(),
		boot:   &hostBootloader{logger: logger},
	}
}

func (h *Host) Logger() Logger           { return h.logger }
func (h *Host) LED() LED                 { return h.led }
func (h *Host) Matrix() MatrixPins       { return h.matrix }
func (h *Host) Link() LinkPort           { return h.link }
func (h *Host) USB() USBDevice           { return h.usb }
func (h *Host) Time() Time               { return h.t }
func (h *Host) Bootloader() Bootloader   { return h.boot }
func (h *Host) StatusDisplay() Displayer { return h.display }

// Name returns the half's name.
func (h *Host) Name() string { return h.name }

// Switches returns the simulated key matrix.
func (h *Host) Switches() *SwitchMatrix { return h.matrix }

// USBDevice returns the simulated USB device.
func (h *Host) USBDevice() *HostUSB { return h.usb }

// Clock returns the tick source.
func (h *Host) Clock() *HostTime { return h.t }

// LEDOn reports the status LED level.
func (h *Host) LEDOn() bool {
	h.led.mu.Lock()
	defer h.led.mu.Unlock()
	return h.led.on
}

// BootloaderRequests returns how many times the firmware asked to reboot
// into the bootloader.
func (h *Host) BootloaderRequests() int {
	h.boot.mu.Lock()
	defer h.boot.mu.Unlock()
	return h.boot.count
}

// SetStatusDisplay attaches a display for the status panel.
func (h *Host) SetStatusDisplay(d Displayer) { h.display = d }

type hostLogger struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, l.prefix+s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, l.prefix)
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

type hostBootloader struct {
	mu     sync.Mutex
	count  int
	logger *hostLogger
}

func (b *hostBootloader) EnterBootloader() {
	b.mu.Lock()
	b.count++
	b.mu.Unlock()
	b.logger.WriteLineString("bootloader: reset requested")
}
