//go:build tinygo

package kernel

import "runtime/interrupt"

// criticalSection masks interrupts, which on a single core is the ceiling
// of every priority level.
type criticalSection struct {
	state interrupt.State
}

func (c *criticalSection) enter() { c.state = interrupt.Disable() }
func (c *criticalSection) exit()  { interrupt.Restore(c.state) }
