//go:build !tinygo

package kernel

import "sync"

type criticalSection struct {
	mu sync.Mutex
}

func (c *criticalSection) enter() { c.mu.Lock() }
func (c *criticalSection) exit()  { c.mu.Unlock() }
