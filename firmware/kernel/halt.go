package kernel

// HaltInfo describes why the kernel stopped.
type HaltInfo struct {
	TaskID TaskID
	Task   string
	Reason error
	Stack  []byte
}

// SetHaltHandler installs the handler invoked once when the kernel halts.
// It must not panic.
func (k *Kernel) SetHaltHandler(fn func(HaltInfo)) {
	k.haltFn.Store(fn)
}

// Halted reports whether the kernel stopped after a fatal error.
func (k *Kernel) Halted() bool {
	return k.halted.Load()
}

// HaltReason returns the info recorded by the first halt.
func (k *Kernel) HaltReason() (HaltInfo, bool) {
	v := k.haltRes.Load()
	if v == nil {
		return HaltInfo{}, false
	}
	info, ok := v.(HaltInfo)
	return info, ok
}

func (k *Kernel) halt(info HaltInfo) {
	if !k.halted.CompareAndSwap(false, true) {
		return
	}
	k.pending.Store(0)
	k.haltRes.Store(info)
	if v := k.haltFn.Load(); v != nil {
		if fn, ok := v.(func(HaltInfo)); ok && fn != nil {
			fn(info)
		}
	}
	select {
	case k.wake <- struct{}{}:
	default:
	}
}

// Halt stops the kernel from outside a task, e.g. from an interrupt source
// that hit a fatal condition.
func (k *Kernel) Halt(reason error) {
	k.halt(HaltInfo{TaskID: noTask, Reason: reason})
}
