//go:build !tinygo

package app

import "splitkb/hal"

// Fatal reports err on the board log. On the host the caller decides how to
// exit.
func Fatal(h hal.HAL, err error) {
	if l := h.Logger(); l != nil && err != nil {
		l.WriteLineString("fatal: " + err.Error())
	}
	if led := h.LED(); led != nil {
		led.High()
	}
}
