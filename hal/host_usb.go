//go:build !tinygo

package hal

import "sync"

// HostUSB simulates the USB HID device of one half.
//
// Plugging the cable in makes the device enumerate on the next Poll.
type HostUSB struct {
	mu         sync.Mutex
	attached   bool
	configured bool
	pending    bool
	reject     bool
	reports    [][]byte
	onReport   func([]byte)
}

// NewHostUSB returns a device with the cable unplugged.
func NewHostUSB() *HostUSB {
	return &HostUSB{}
}

// SetAttached plugs (true) or unplugs the USB cable.
func (u *HostUSB) SetAttached(attached bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.attached == attached {
		return
	}
	u.attached = attached
	u.pending = true
	if !attached {
		u.configured = false
	}
}

// Attached reports the cable state.
func (u *HostUSB) Attached() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.attached
}

// SetReject makes SetReport refuse reports, as a busy endpoint would.
func (u *HostUSB) SetReject(reject bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.reject = reject
}

// OnReport registers fn to observe every accepted report.
func (u *HostUSB) OnReport(fn func([]byte)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.onReport = fn
}

// Reports returns a copy of every accepted report.
func (u *HostUSB) Reports() [][]byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([][]byte, len(u.reports))
	copy(out, u.reports)
	return out
}

func (u *HostUSB) Poll() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.pending {
		return false
	}
	u.pending = false
	u.configured = u.attached
	return true
}

func (u *HostUSB) Configured() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.configured
}

func (u *HostUSB) SetReport(report []byte) bool {
	u.mu.Lock()
	if !u.configured || u.reject {
		u.mu.Unlock()
		return false
	}
	r := append([]byte(nil), report...)
	u.reports = append(u.reports, r)
	fn := u.onReport
	u.mu.Unlock()
	if fn != nil {
		fn(r)
	}
	return true
}
