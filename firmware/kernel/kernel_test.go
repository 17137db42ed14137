package kernel

import (
	"errors"
	"strings"
	"testing"
)

func TestStepRunsHighestPriorityFirst(t *testing.T) {
	k := New()
	var got []string
	rec := func(name string) Task {
		return TaskFunc(func(*Context) { got = append(got, name) })
	}
	low, _ := k.AddTask("low", 1, rec("low"))
	high, _ := k.AddTask("high", 5, rec("high"))
	mid, _ := k.AddTask("mid", 3, rec("mid"))
	mid2, _ := k.AddTask("mid2", 3, rec("mid2"))

	k.Spawn(low)
	k.Spawn(mid2)
	k.Spawn(mid)
	k.Spawn(high)

	if n := k.RunPending(); n != 4 {
		t.Fatalf("RunPending() = %d, want 4", n)
	}
	want := "high,mid,mid2,low"
	if s := strings.Join(got, ","); s != want {
		t.Fatalf("order = %s, want %s", s, want)
	}
}

func TestSpawnCoalesces(t *testing.T) {
	k := New()
	id, err := k.AddTask("t", 1, TaskFunc(func(*Context) {}))
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	k.Spawn(id)
	k.Spawn(id)
	k.Spawn(id)
	if n := k.RunPending(); n != 1 {
		t.Fatalf("RunPending() = %d, want 1", n)
	}
	if runs := k.Runs(id); runs != 1 {
		t.Fatalf("Runs() = %d, want 1", runs)
	}
	if k.Pending() {
		t.Fatalf("Pending() = true after drain")
	}
}

func TestSpawnFromTaskPreemptsLowerOnNextStep(t *testing.T) {
	k := New()
	var got []string
	var high TaskID
	low, _ := k.AddTask("low", 1, TaskFunc(func(*Context) { got = append(got, "low") }))
	first, _ := k.AddTask("first", 2, TaskFunc(func(ctx *Context) {
		got = append(got, "first")
		ctx.Spawn(high)
	}))
	high, _ = k.AddTask("high", 3, TaskFunc(func(*Context) { got = append(got, "high") }))

	k.Spawn(low)
	k.Spawn(first)
	k.RunPending()

	want := "first,high,low"
	if s := strings.Join(got, ","); s != want {
		t.Fatalf("order = %s, want %s", s, want)
	}
}

func TestSpawnUnknownTaskIgnored(t *testing.T) {
	k := New()
	k.Spawn(3)
	if k.Pending() {
		t.Fatalf("Pending() = true for unknown task")
	}
}

func TestAddTaskTableFull(t *testing.T) {
	k := New()
	for i := 0; i < maxTasks; i++ {
		if _, err := k.AddTask("t", 0, TaskFunc(func(*Context) {})); err != nil {
			t.Fatalf("AddTask(%d): %v", i, err)
		}
	}
	if _, err := k.AddTask("extra", 0, TaskFunc(func(*Context) {})); err == nil {
		t.Fatalf("AddTask() past capacity: want error")
	}
	if _, err := New().AddTask("nil", 0, nil); err == nil {
		t.Fatalf("AddTask(nil): want error")
	}
}

func TestPanicHaltsKernel(t *testing.T) {
	k := New()
	var handled []HaltInfo
	k.SetHaltHandler(func(info HaltInfo) { handled = append(handled, info) })

	bad, _ := k.AddTask("bad", 2, TaskFunc(func(*Context) { panic("boom") }))
	other, _ := k.AddTask("other", 1, TaskFunc(func(*Context) {
		t.Fatalf("task ran after halt")
	}))
	k.Spawn(bad)
	k.Spawn(other)
	k.RunPending()

	if !k.Halted() {
		t.Fatalf("Halted() = false, want true")
	}
	if len(handled) != 1 {
		t.Fatalf("halt handler calls = %d, want 1", len(handled))
	}
	info, ok := k.HaltReason()
	if !ok {
		t.Fatalf("HaltReason() ok = false")
	}
	if info.Task != "bad" || info.TaskID != bad {
		t.Fatalf("HaltReason() task = %q/%d, want bad/%d", info.Task, info.TaskID, bad)
	}
	if info.Reason == nil || !strings.Contains(info.Reason.Error(), "boom") {
		t.Fatalf("HaltReason() reason = %v, want boom", info.Reason)
	}
	if len(info.Stack) == 0 {
		t.Fatalf("HaltReason() stack empty")
	}

	k.Spawn(other)
	if k.Step() {
		t.Fatalf("Step() after halt = true")
	}
}

func TestContextHaltRunsHandlerOnce(t *testing.T) {
	k := New()
	calls := 0
	k.SetHaltHandler(func(HaltInfo) { calls++ })
	errFatal := errors.New("fatal")
	id, _ := k.AddTask("t", 1, TaskFunc(func(ctx *Context) {
		ctx.Halt(errFatal)
		ctx.Halt(errFatal)
		if !ctx.Halted() {
			t.Fatalf("ctx.Halted() = false")
		}
	}))
	k.Spawn(id)
	k.RunPending()
	k.Halt(errors.New("second"))

	if calls != 1 {
		t.Fatalf("halt handler calls = %d, want 1", calls)
	}
	info, _ := k.HaltReason()
	if !errors.Is(info.Reason, errFatal) {
		t.Fatalf("HaltReason() reason = %v, want %v", info.Reason, errFatal)
	}
}

func TestWakeSignalled(t *testing.T) {
	k := New()
	id, _ := k.AddTask("t", 1, TaskFunc(func(*Context) {}))
	k.Spawn(id)
	select {
	case <-k.Wake():
	default:
		t.Fatalf("Wake() not signalled after Spawn")
	}
}

func TestQueueFIFO(t *testing.T) {
	var q Queue[int]
	for i := 0; i < QueueSlots; i++ {
		if !q.TrySend(i) {
			t.Fatalf("TrySend(%d) = false", i)
		}
	}
	if q.TrySend(99) {
		t.Fatalf("TrySend() on full queue = true")
	}
	if q.Len() != QueueSlots {
		t.Fatalf("Len() = %d, want %d", q.Len(), QueueSlots)
	}
	for i := 0; i < QueueSlots; i++ {
		v, ok := q.TryRecv()
		if !ok || v != i {
			t.Fatalf("TryRecv() = %d, %v, want %d, true", v, ok, i)
		}
	}
	if _, ok := q.TryRecv(); ok {
		t.Fatalf("TryRecv() on empty queue ok = true")
	}
}

func TestQueueWrapsAndResets(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 3*QueueSlots; i++ {
		if !q.TrySend(i) {
			t.Fatalf("TrySend(%d) = false", i)
		}
		if v, ok := q.TryRecv(); !ok || v != i {
			t.Fatalf("TryRecv() = %d, %v, want %d", v, ok, i)
		}
	}
	q.TrySend(1)
	q.TrySend(2)
	q.Reset()
	if q.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", q.Len())
	}
}

func TestResourceLock(t *testing.T) {
	type counter struct{ n int }
	r := NewResource(&counter{})
	for i := 0; i < 3; i++ {
		r.Lock(func(c *counter) { c.n++ })
	}
	var got int
	r.Lock(func(c *counter) { got = c.n })
	if got != 3 {
		t.Fatalf("counter = %d, want 3", got)
	}
}
