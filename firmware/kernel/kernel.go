package kernel

import (
	"errors"
	"fmt"
	"sync/atomic"
)

const maxTasks = 16

// ErrHalted is returned once the kernel stopped after a fatal error.
var ErrHalted = errors.New("kernel halted")

// TaskID identifies a registered task.
type TaskID uint8

// Priority orders tasks; higher values run first.
type Priority uint8

// Task is a run-to-completion unit of execution. Step is called once per
// Spawn and must not block.
type Task interface {
	Step(*Context)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(*Context)

func (f TaskFunc) Step(ctx *Context) { f(ctx) }

type taskState struct {
	task Task
	prio Priority
	name string
	runs uint32
}

// Kernel is a fixed-priority scheduler for software-triggered tasks.
//
// Interrupt sources mark tasks pending with Spawn; Step always runs the
// highest-priority pending task. Tasks never preempt each other.
type Kernel struct {
	tasks [maxTasks]taskState
	count TaskID

	// order holds task IDs sorted by descending priority.
	order [maxTasks]TaskID

	pending atomic.Uint32
	wake    chan struct{}

	halted  atomic.Bool
	haltFn  atomic.Value // func(HaltInfo)
	haltRes atomic.Value // HaltInfo
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{wake: make(chan struct{}, 1)}
}

// AddTask registers a task and returns its ID.
//
// Tasks with equal priority run in registration order.
func (k *Kernel) AddTask(name string, prio Priority, t Task) (TaskID, error) {
	if k.count >= maxTasks {
		return 0, fmt.Errorf("kernel: add task %q: table full", name)
	}
	if t == nil {
		return 0, fmt.Errorf("kernel: add task %q: nil task", name)
	}
	id := k.count
	k.count++
	k.tasks[id] = taskState{task: t, prio: prio, name: name}

	i := int(id)
	for i > 0 && k.tasks[k.order[i-1]].prio < prio {
		k.order[i] = k.order[i-1]
		i--
	}
	k.order[i] = id
	return id, nil
}

// Spawn marks a task pending. It is safe to call from any goroutine or
// interrupt handler.
func (k *Kernel) Spawn(id TaskID) {
	if id >= k.count {
		return
	}
	bit := uint32(1) << id
	for {
		old := k.pending.Load()
		if old&bit != 0 {
			break
		}
		if k.pending.CompareAndSwap(old, old|bit) {
			break
		}
	}
	select {
	case k.wake <- struct{}{}:
	default:
	}
}

// Wake is signalled whenever a task becomes pending.
func (k *Kernel) Wake() <-chan struct{} { return k.wake }

// Pending reports whether any task is waiting to run.
func (k *Kernel) Pending() bool { return k.pending.Load() != 0 }

// Step runs the highest-priority pending task once. It reports whether a
// task ran.
func (k *Kernel) Step() bool {
	if k.halted.Load() {
		return false
	}
	for i := TaskID(0); i < k.count; i++ {
		id := k.order[i]
		bit := uint32(1) << id
		for {
			old := k.pending.Load()
			if old&bit == 0 {
				break
			}
			if k.pending.CompareAndSwap(old, old&^bit) {
				k.run(id)
				return true
			}
		}
	}
	return false
}

// RunPending runs tasks until none is pending or the kernel halts.
// It returns the number of task steps executed.
func (k *Kernel) RunPending() int {
	n := 0
	for k.Step() {
		n++
	}
	return n
}

func (k *Kernel) run(id TaskID) {
	st := &k.tasks[id]
	ctx := &Context{k: k, taskID: id}
	defer func() {
		if r := recover(); r != nil {
			k.halt(HaltInfo{TaskID: id, Task: st.name, Reason: fmt.Errorf("panic: %v", r), Stack: captureStack()})
		}
	}()
	st.runs++
	st.task.Step(ctx)
}

// Runs returns how many times the task has run.
func (k *Kernel) Runs(id TaskID) uint32 {
	if id >= k.count {
		return 0
	}
	return k.tasks[id].runs
}

// TaskName returns the registered name of a task.
func (k *Kernel) TaskName(id TaskID) string {
	if id >= k.count {
		return ""
	}
	return k.tasks[id].name
}
