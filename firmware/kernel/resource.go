package kernel

// Resource guards state shared between contexts. Lock runs fn inside a
// critical section that no other context can enter; keep fn to a single
// state transition.
type Resource[T any] struct {
	cs  criticalSection
	val T
}

// NewResource wraps v.
func NewResource[T any](v T) *Resource[T] {
	return &Resource[T]{val: v}
}

// Lock runs fn with exclusive access to the value.
func (r *Resource[T]) Lock(fn func(v T)) {
	r.cs.enter()
	defer r.cs.exit()
	fn(r.val)
}
