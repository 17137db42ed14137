//go:build tinygo && baremetal && !oled

package hal

func newStatusDisplay() Displayer { return nil }
