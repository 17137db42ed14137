package app

import (
	"fmt"

	"splitkb/firmware/event"
	"splitkb/firmware/kernel"
	"splitkb/firmware/keymap"
	"splitkb/firmware/layout"
	"splitkb/firmware/role"
)

// linkRxStep drains the link receiver. Frames from the secondary are already
// in unified coordinates.
func (s *System) linkRxStep(ctx *kernel.Context) {
	rx := s.role.Receiver()
	if rx == nil {
		return
	}
	s.rxBuf = rx.Poll(s.rxBuf[:0])
	for _, e := range s.rxBuf {
		s.received.Add(1)
		s.dispatch(ctx, e)
	}
}

func (s *System) usbStep(ctx *kernel.Context) {
	_ = ctx
	usb := s.h.USB()
	if usb.Poll() {
		s.log.Logf("usb: configured=%t", usb.Configured())
	}
}

// scanStep runs once per period: scan, debounce, re-evaluate the role, then
// relay or dispatch each confirmed event.
func (s *System) scanStep(ctx *kernel.Context) {
	changed, err := s.role.Update()
	if err != nil {
		ctx.Halt(err)
		return
	}
	if changed {
		s.onRoleChange()
	}

	s.scanBuf = s.debouncer.Events(s.scanner.Scan(), s.scanBuf[:0])

	for _, local := range s.scanBuf {
		e := local.Apply(s.transform)
		if s.role.Role() == role.Secondary {
			if err := s.role.Transmitter().Send(e); err != nil {
				ctx.Halt(err)
				return
			}
			s.relayed.Add(1)
			continue
		}
		s.dispatch(ctx, e)
	}
	ctx.Spawn(s.tasks.layout)
}

// onRoleChange starts the layout engine over from the switches this half
// holds right now. Queued events and state bound while relaying, or while the
// other half was primary, no longer describe the matrix.
func (s *System) onRoleChange() {
	r := s.role.Role()
	s.log.Logf("role: %s", r)
	s.queue.Reset()
	s.emitter.Reset()
	held := s.debouncer.Confirmed()
	s.layout.Lock(func(l *layout.Layout) {
		l.Reset()
		if r != role.Primary {
			return
		}
		for row := 0; row < s.cfg.Rows; row++ {
			for col := 0; col < s.cfg.Cols; col++ {
				if held.At(row, col) {
					l.Event(event.NewPress(uint8(row), uint8(col)).Apply(s.transform))
				}
			}
		}
	})
	if led := s.h.LED(); led != nil {
		if r == role.Primary {
			led.High()
		} else {
			led.Low()
		}
	}
}

// dispatch queues e for the layout engine.
func (s *System) dispatch(ctx *kernel.Context, e event.Event) {
	if s.queue.TrySend(e) {
		ctx.Spawn(s.tasks.dispatch)
		return
	}
	s.dropped.Add(1)
	if s.cfg.QueueFull == QueueFullHalt {
		ctx.Halt(fmt.Errorf("%w: %v", ErrQueueFull, e))
		return
	}
	s.log.Logf("dispatch: queue full, dropped %v", e)
}

// dispatchStep applies one queued event and reschedules itself while more
// are waiting.
func (s *System) dispatchStep(ctx *kernel.Context) {
	e, ok := s.queue.TryRecv()
	if !ok {
		return
	}
	s.layout.Lock(func(l *layout.Layout) { l.Event(e) })
	if s.queue.Len() > 0 {
		ctx.Spawn(s.tasks.dispatch)
	}
}

// layoutStep advances the layout engine by one period and, on the primary,
// sends the report.
func (s *System) layoutStep(ctx *kernel.Context) {
	_ = ctx
	var ce layout.CustomEvent
	s.layout.Lock(func(l *layout.Layout) {
		ce = l.Tick()
		if s.role.Role() == role.Primary {
			keys := l.Keys()
			s.emitter.Emit(keys.Codes())
		}
	})
	s.handleCustom(ce)
}

func (s *System) handleCustom(ce layout.CustomEvent) {
	switch {
	case ce.Kind == layout.NoCustom:
	case ce.Payload == keymap.Bootloader:
		if ce.Kind != layout.CustomRelease {
			return
		}
		s.log.Direct("custom: entering bootloader")
		if b := s.h.Bootloader(); b != nil {
			b.EnterBootloader()
		}
	default:
		s.log.Logf("custom: %d kind %d ignored", ce.Payload, ce.Kind)
	}
}

func (s *System) statusStep(ctx *kernel.Context) {
	_ = ctx
	if err := s.panel.Draw(s.Snapshot()); err != nil {
		s.log.Logf("status: %v", err)
	}
}
