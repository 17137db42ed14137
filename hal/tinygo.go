//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *serialLogger
	led     *pinLED
	matrix  *pinMatrix
	link    *uartPort
	usb     *hidKeyboard
	t       *tinyGoTime
	boot    romBootloader
	display Displayer
}

// New returns the HAL of one keyboard half on an RP2040 board.
//
// Matrix: rows GP2..GP5 (outputs), columns GP6..GP11 (pull-up inputs).
// Link: UART0, GP0 (TX) and GP1 (RX) bridged onto the single TRRS data line.
// Log: USB CDC serial.
func New() HAL {
	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	rows := []machine.Pin{machine.GP2, machine.GP3, machine.GP4, machine.GP5}
	cols := []machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9, machine.GP10, machine.GP11}

	return &tinyGoHAL{
		logger:  &serialLogger{},
		led:     &pinLED{pin: ledPin},
		matrix:  newPinMatrix(rows, cols),
		link:    newUARTPort(machine.UART0, machine.GP0, machine.GP1),
		usb:     newHIDKeyboard(),
		t:       newTinyGoTime(),
		display: newStatusDisplay(),
	}
}

func (h *tinyGoHAL) Logger() Logger           { return h.logger }
func (h *tinyGoHAL) LED() LED                 { return h.led }
func (h *tinyGoHAL) Matrix() MatrixPins       { return h.matrix }
func (h *tinyGoHAL) Link() LinkPort           { return h.link }
func (h *tinyGoHAL) USB() USBDevice           { return h.usb }
func (h *tinyGoHAL) Time() Time               { return h.t }
func (h *tinyGoHAL) Bootloader() Bootloader   { return h.boot }
func (h *tinyGoHAL) StatusDisplay() Displayer { return h.display }

type romBootloader struct{}

func (romBootloader) EnterBootloader() { machine.EnterBootloader() }
