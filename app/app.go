// Package app wires the firmware components into prioritized tasks.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"splitkb/firmware/event"
	"splitkb/firmware/kernel"
	"splitkb/firmware/layout"
	"splitkb/firmware/logger"
	"splitkb/firmware/matrix"
	"splitkb/firmware/report"
	"splitkb/firmware/role"
	"splitkb/firmware/status"
	"splitkb/hal"
)

// Task priorities, highest first.
const (
	PrioLinkRx   kernel.Priority = 5
	PrioUSB      kernel.Priority = 4
	PrioScan     kernel.Priority = 3
	PrioDispatch kernel.Priority = 2
	PrioLayout   kernel.Priority = 1
	PrioLogger   kernel.Priority = 0
	PrioStatus   kernel.Priority = 0
)

// ErrQueueFull is the halt reason when a key event does not fit the
// dispatch queue.
var ErrQueueFull = errors.New("app: dispatch queue full")

type taskIDs struct {
	linkRx   kernel.TaskID
	usb      kernel.TaskID
	scan     kernel.TaskID
	dispatch kernel.TaskID
	layout   kernel.TaskID
	logger   kernel.TaskID
	status   kernel.TaskID
}

// System is one running half.
type System struct {
	h   hal.HAL
	cfg Config
	k   *kernel.Kernel
	log *logger.Logger

	scanner   *matrix.Scanner
	debouncer *matrix.Debouncer
	role      *role.Manager
	layout    *kernel.Resource[*layout.Layout]
	emitter   *report.Emitter
	panel     *status.Panel
	transform event.Transform

	queue kernel.Queue[event.Event]
	tasks taskIDs

	scanBuf []event.Event
	rxBuf   []event.Event
	ticks   uint64

	relayed  atomic.Uint32
	received atomic.Uint32
	dropped  atomic.Uint32

	haltMu  sync.Mutex
	haltErr error
}

// New validates cfg, configures the board and registers every task. An
// error here is a configuration error: the firmware must not start.
func New(h hal.HAL, cfg Config) (*System, error) {
	if h == nil {
		return nil, errors.New("app: nil HAL")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pins := h.Matrix()
	if pins == nil {
		return nil, errors.New("app: board has no key matrix")
	}
	if len(pins.Rows()) != cfg.Rows || len(pins.Cols()) != cfg.Cols {
		return nil, fmt.Errorf("app: board matrix is %dx%d, config wants %dx%d",
			len(pins.Rows()), len(pins.Cols()), cfg.Rows, cfg.Cols)
	}
	scanner, err := matrix.NewScanner(pins.Rows(), pins.Cols())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	lay, err := layout.New(cfg.Layers)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	usb := h.USB()
	if usb == nil {
		return nil, errors.New("app: board has no USB device")
	}

	s := &System{
		h:         h,
		cfg:       cfg,
		k:         kernel.New(),
		log:       logger.New(h.Logger()),
		scanner:   scanner,
		debouncer: matrix.NewDebouncer(cfg.Rows, cfg.Cols, cfg.DebounceThreshold),
		layout:    kernel.NewResource(lay),
		emitter:   report.NewEmitter(usb),
		transform: cfg.transform(),
		scanBuf:   make([]event.Event, 0, matrix.MaxRows*matrix.MaxCols),
		rxBuf:     make([]event.Event, 0, 16),
	}
	if d := h.StatusDisplay(); d != nil && cfg.StatusEvery > 0 {
		s.panel = status.NewPanel(d)
	}
	if err := s.addTasks(); err != nil {
		return nil, err
	}

	mgr, err := role.New(h.Link(), usb, role.Config{
		Baud:         cfg.LinkBaud,
		WriteTimeout: cfg.LinkWriteTimeout,
		OnReceive:    func() { s.k.Spawn(s.tasks.linkRx) },
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	s.role = mgr
	s.k.SetHaltHandler(s.onHalt)

	s.log.Logf("boot: %s half, %dx%d, keymap %d layers", cfg.Side, cfg.Rows, cfg.Cols, len(cfg.Layers))
	return s, nil
}

func (s *System) addTasks() error {
	var err error
	add := func(name string, prio kernel.Priority, fn kernel.TaskFunc) kernel.TaskID {
		if err != nil {
			return 0
		}
		var id kernel.TaskID
		id, err = s.k.AddTask(name, prio, fn)
		return id
	}
	s.tasks.linkRx = add("link-rx", PrioLinkRx, s.linkRxStep)
	s.tasks.usb = add("usb", PrioUSB, s.usbStep)
	s.tasks.scan = add("scan", PrioScan, s.scanStep)
	s.tasks.dispatch = add("dispatch", PrioDispatch, s.dispatchStep)
	s.tasks.layout = add("layout", PrioLayout, s.layoutStep)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	id, err := s.log.Register(s.k, PrioLogger)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	s.tasks.logger = id
	if s.panel != nil {
		s.tasks.status = add("status", PrioStatus, s.statusStep)
		if err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	return nil
}

// Tick runs one scheduler period to completion: the USB poll and the scan
// are triggered and every task they spawn runs before Tick returns.
func (s *System) Tick() {
	if s.k.Halted() {
		return
	}
	s.startPeriod()
	s.k.RunPending()
}

func (s *System) startPeriod() {
	s.ticks++
	s.k.Spawn(s.tasks.usb)
	s.k.Spawn(s.tasks.scan)
	if s.panel != nil && s.ticks%uint64(s.cfg.StatusEvery) == 0 {
		s.k.Spawn(s.tasks.status)
	}
}

// Run drives the system from the board tick source until ctx is done or the
// kernel halts.
func (s *System) Run(ctx context.Context) error {
	var ticks <-chan uint64
	if t := s.h.Time(); t != nil {
		ticks = t.Ticks()
	}
	for {
		if s.k.Halted() {
			return s.Err()
		}
		select {
		case <-ctx.Done():
			s.log.Flush()
			return ctx.Err()
		case <-ticks:
			s.startPeriod()
		case <-s.k.Wake():
		}
		s.k.RunPending()
	}
}

// Kernel returns the scheduler.
func (s *System) Kernel() *kernel.Kernel { return s.k }

// Config returns the configuration the system was built with.
func (s *System) Config() Config { return s.cfg }

// Role returns the current role.
func (s *System) Role() role.Role { return s.role.Role() }

// Ticks returns the number of periods started.
func (s *System) Ticks() uint64 { return s.ticks }

// Dropped returns how many key events the dispatch queue rejected.
func (s *System) Dropped() uint32 { return s.dropped.Load() }

// Err returns why the system halted, or nil.
func (s *System) Err() error {
	s.haltMu.Lock()
	defer s.haltMu.Unlock()
	return s.haltErr
}

// Snapshot describes the current state for the status panel.
func (s *System) Snapshot() status.Snapshot {
	snap := status.Snapshot{
		Side:   s.cfg.Side.String(),
		Role:   s.role.Role().String(),
		USB:    s.h.USB().Configured(),
		Frames: s.relayed.Load() + s.received.Load(),
	}
	s.layout.Lock(func(l *layout.Layout) {
		snap.Layers = l.ActiveLayers(nil)
		snap.Keys = append(snap.Keys, l.Keys().Codes()...)
	})
	if err := s.Err(); err != nil {
		snap.Halted = true
		snap.Reason = err.Error()
	}
	return snap
}

func (s *System) onHalt(info kernel.HaltInfo) {
	err := fmt.Errorf("%w: task %s: %w", kernel.ErrHalted, taskName(info), info.Reason)
	s.haltMu.Lock()
	s.haltErr = err
	s.haltMu.Unlock()

	s.log.Flush()
	s.log.Direct("halt: " + err.Error())
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line != "" {
			s.log.Direct(line)
		}
	}
	if led := s.h.LED(); led != nil {
		led.High()
	}
}

func taskName(info kernel.HaltInfo) string {
	if info.Task == "" {
		return "-"
	}
	return info.Task
}
