//go:build tinygo

package app

import (
	"time"

	"splitkb/hal"
)

// Fatal reports err on the board log and blinks the LED forever.
func Fatal(h hal.HAL, err error) {
	if l := h.Logger(); l != nil && err != nil {
		l.WriteLineString("fatal: " + err.Error())
	}
	led := h.LED()
	for {
		if led != nil {
			led.High()
		}
		time.Sleep(100 * time.Millisecond)
		if led != nil {
			led.Low()
		}
		time.Sleep(400 * time.Millisecond)
	}
}
