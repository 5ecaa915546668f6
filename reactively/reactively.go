// Package reactively is the front door to the engine in pkg/reactively: a
// package-level default graph plus Signal/Memo/Effect naming, for callers
// who only ever need one reactive graph per process. Anything that needs
// more than one independent graph should use pkg/reactively directly.
package reactively

import (
	core "github.com/streamgraph/reactively/pkg/reactively"
)

// DefaultContext is the graph every package-level helper here operates on.
var DefaultContext = core.NewContext()

// Signal is a mutable reactive cell (core.Value under the default Context).
type Signal[T any] struct {
	v *core.Value[T]
}

// NewSignal creates a Signal seeded with initial, using reflect.DeepEqual
// to gate write propagation.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{v: core.CreateValue(DefaultContext, initial)}
}

// NewSignalEquals is NewSignal with a caller-supplied equality.
func NewSignalEquals[T any](initial T, equals core.EqualsFunc[T]) *Signal[T] {
	return &Signal[T]{v: core.CreateValueEquals(DefaultContext, initial, equals)}
}

// Read returns the signal's current value, tracked against whatever memo
// or effect is currently evaluating.
func (s *Signal[T]) Read() T { return s.v.Read() }

// Write replaces the signal's value.
func (s *Signal[T]) Write(x T) { s.v.Write(x) }

// ExecCount is always zero: a Signal has no function body to run.
func (s *Signal[T]) ExecCount() int { return s.v.ExecCount() }

// Memo is a memoized computation (core.Expression under the default Context).
type Memo[T any] struct {
	e *core.Expression[T]
}

// NewMemo creates a memo backed by fn.
func NewMemo[T any](fn func() T) *Memo[T] {
	return &Memo[T]{e: core.CreateExpression(DefaultContext, fn)}
}

// NewMemoEquals is NewMemo with a caller-supplied equality.
func NewMemoEquals[T any](fn func() T, equals core.EqualsFunc[T]) *Memo[T] {
	return &Memo[T]{e: core.CreateExpressionEquals(DefaultContext, fn, equals)}
}

// Read returns the memo's current result, recomputing first if invalid.
func (m *Memo[T]) Read() T { return m.e.Read() }

// ExecCount is the number of times the memo's function has actually run.
func (m *Memo[T]) ExecCount() int { return m.e.ExecCount() }

// Effect is a side-effecting leaf (core.Observer under the default Context).
type Effect struct {
	o *core.Observer
}

// NewEffect creates an effect backed by fn and schedules it for the next
// call to Flush.
func NewEffect(fn func()) *Effect {
	return &Effect{o: core.CreateObserver(DefaultContext, fn)}
}

// ExecCount is the number of times the effect's function has actually run.
func (e *Effect) ExecCount() int { return e.o.ExecCount() }

// Isolate runs thunk against the default Context with dependency
// registration suppressed.
func Isolate[T any](thunk func() T) T {
	return core.Isolate(DefaultContext, thunk)
}

// Flush drains the default Context's pending-observer queue to a fixed
// point.
func Flush() {
	DefaultContext.Flush()
}
