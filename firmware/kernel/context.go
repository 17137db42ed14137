package kernel

const noTask = TaskID(0xFF)

// Context provides task-local access to kernel operations.
type Context struct {
	k      *Kernel
	taskID TaskID
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Spawn marks another task (or the current one) pending.
func (c *Context) Spawn(id TaskID) {
	if c.k == nil {
		return
	}
	c.k.Spawn(id)
}

// Halt stops the kernel; the current step still runs to completion but no
// further task is dispatched.
func (c *Context) Halt(reason error) {
	if c.k == nil {
		return
	}
	c.k.halt(HaltInfo{TaskID: c.taskID, Task: c.k.TaskName(c.taskID), Reason: reason})
}

// Halted reports whether the kernel is halted.
func (c *Context) Halted() bool {
	return c.k != nil && c.k.Halted()
}
