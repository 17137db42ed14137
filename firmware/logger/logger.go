// Package logger queues log lines from tasks and writes them out from a
// low-priority drain task, so no task ever waits on the log sink.
package logger

import (
	"fmt"
	"sync/atomic"

	"splitkb/firmware/kernel"
	"splitkb/hal"
)

// MaxLineBytes is the longest line kept; longer lines are truncated.
const MaxLineBytes = 96

type line struct {
	n uint8
	b [MaxLineBytes]byte
}

// Logger is a best-effort line queue in front of a hal.Logger.
type Logger struct {
	out     hal.Logger
	q       kernel.Queue[line]
	k       *kernel.Kernel
	task    kernel.TaskID
	dropped atomic.Uint32
}

// New returns a logger writing to out. Until Register is called lines are
// written straight through.
func New(out hal.Logger) *Logger {
	return &Logger{out: out}
}

// Register adds the drain task to k.
func (l *Logger) Register(k *kernel.Kernel, prio kernel.Priority) (kernel.TaskID, error) {
	id, err := k.AddTask("logger", prio, l)
	if err != nil {
		return 0, fmt.Errorf("logger: %w", err)
	}
	l.k = k
	l.task = id
	return id, nil
}

// Log queues s. It drops the line and returns false when the queue is full.
func (l *Logger) Log(s string) bool {
	if l.out == nil {
		return false
	}
	if l.k == nil {
		l.out.WriteLineString(s)
		return true
	}
	var ln line
	ln.n = uint8(copy(ln.b[:], s))
	if !l.q.TrySend(ln) {
		l.dropped.Add(1)
		return false
	}
	l.k.Spawn(l.task)
	return true
}

// Logf formats and queues a line.
func (l *Logger) Logf(format string, args ...any) bool {
	return l.Log(fmt.Sprintf(format, args...))
}

// Direct writes s to the sink immediately, bypassing the queue. It is meant
// for the halt path, when no task will run again.
func (l *Logger) Direct(s string) {
	if l.out != nil {
		l.out.WriteLineString(s)
	}
}

// Step drains every queued line.
func (l *Logger) Step(ctx *kernel.Context) {
	_ = ctx
	for {
		ln, ok := l.q.TryRecv()
		if !ok {
			break
		}
		l.out.WriteLineBytes(ln.b[:ln.n])
	}
	if n := l.dropped.Swap(0); n > 0 {
		l.out.WriteLineString(fmt.Sprintf("logger: dropped %d lines", n))
	}
}

// Flush writes out everything still queued.
func (l *Logger) Flush() { l.Step(nil) }

// Pending returns the number of queued lines.
func (l *Logger) Pending() int { return l.q.Len() }
