package reactively

// Value is a mutable reactive cell: an opaque payload with no sources of its
// own. Writing a new payload invalidates every node that read it during the
// evaluation in which it registered as a source; writing the same payload
// (by equals) is a no-op for propagation.
type Value[T any] struct {
	ctx       *Context
	value     T
	equals    EqualsFunc[T]
	observers []invalidatable
}

// CreateValue creates a Value seeded with initial, using reflect.DeepEqual
// to decide whether a write actually changed anything.
func CreateValue[T any](ctx *Context, initial T) *Value[T] {
	return CreateValueEquals(ctx, initial, defaultEquals[T])
}

// CreateValueEquals is CreateValue with a caller-supplied equality, for
// payloads reflect.DeepEqual handles poorly (e.g. large buffers best
// compared with BytesEquals) or not at all.
func CreateValueEquals[T any](ctx *Context, initial T, equals EqualsFunc[T]) *Value[T] {
	return &Value[T]{ctx: ctx, value: initial, equals: equals}
}

// Read returns the current payload, registering an edge from this value to
// whatever node is currently tracking (unless reads are isolated).
func (v *Value[T]) Read() T {
	if t := v.ctx.currentTracker(); t != nil {
		t.recordSource(v)
	}
	return v.value
}

// Write replaces the payload. If it differs from the current one by equals,
// every direct dependent is invalidated; invalidation only marks or enqueues
// — it never recurses synchronously back into a running node, including the
// node performing the write.
func (v *Value[T]) Write(x T) {
	if v.equals(v.value, x) {
		return
	}
	v.value = x
	for _, o := range v.observers {
		o.invalidate()
	}
}

// ExecCount is always zero: a Value has no function body to run.
func (v *Value[T]) ExecCount() int { return 0 }

func (v *Value[T]) addObserver(o invalidatable) {
	v.observers = append(v.observers, o)
}

func (v *Value[T]) removeObserver(o invalidatable) {
	for i, ob := range v.observers {
		if ob == o {
			v.observers = append(v.observers[:i], v.observers[i+1:]...)
			return
		}
	}
}
