//go:build tinygo && baremetal

package hal

import (
	"machine"
	"machine/usb/hid"
)

const keyboardReportID = 0x01

// hidKeyboard feeds boot-protocol keyboard reports to the TinyGo HID class.
type hidKeyboard struct {
	buf     *hid.RingBuffer
	waitTxc bool
}

func newHIDKeyboard() *hidKeyboard {
	k := &hidKeyboard{buf: hid.NewRingBuffer()}
	hid.SetHandler(k)
	return k
}

// TxHandler is called by the USB interrupt when the endpoint can transmit.
func (k *hidKeyboard) TxHandler() bool {
	k.waitTxc = false
	if b, ok := k.buf.Get(); ok {
		k.waitTxc = true
		hid.SendUSBPacket(b)
		return true
	}
	return false
}

// RxHandler ignores LED output reports from the host.
func (k *hidKeyboard) RxHandler(b []byte) bool {
	_ = b
	return false
}

// Poll reports nothing to service: the TinyGo USB stack handles endpoint
// traffic in its own interrupt handler.
func (k *hidKeyboard) Poll() bool { return false }

func (k *hidKeyboard) Configured() bool {
	return machine.USBDev.InitEndpointComplete
}

func (k *hidKeyboard) SetReport(report []byte) bool {
	if !k.Configured() || len(report) != 8 {
		return false
	}
	var pkt [9]byte
	pkt[0] = keyboardReportID
	copy(pkt[1:], report)
	if k.waitTxc {
		return k.buf.Put(pkt[:])
	}
	k.waitTxc = true
	hid.SendUSBPacket(pkt[:])
	return true
}
