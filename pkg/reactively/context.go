package reactively

import mapset "github.com/deckarep/golang-set/v2"

type frameKind uint8

const (
	frameTracking frameKind = iota
	frameIsolate
)

// frame is one entry of the context stack: either a tracking frame
// pinned to the node currently evaluating, or an isolate frame that masks
// dependency registration for reads performed while it is topmost.
type frame struct {
	kind frameKind
	node tracker
}

// Context is a single dependency graph's evaluation state: the tracking
// stack and the pending-observer queue drained by Flush. Graphs are
// independent of each other; most programs need exactly one Context.
type Context struct {
	stack   []frame
	pending []*Observer
	queued  mapset.Set[*Observer]
}

// NewContext creates an empty reactive graph.
func NewContext() *Context {
	return &Context{queued: mapset.NewSet[*Observer]()}
}

func (c *Context) pushTracking(n tracker) {
	c.stack = append(c.stack, frame{kind: frameTracking, node: n})
}

func (c *Context) popTracking() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Context) pushIsolate() {
	c.stack = append(c.stack, frame{kind: frameIsolate})
}

func (c *Context) popIsolate() {
	c.stack = c.stack[:len(c.stack)-1]
}

// currentTracker returns the topmost tracking frame, unless an isolate
// frame is topmost instead, in which case reads register no edges.
func (c *Context) currentTracker() tracker {
	if len(c.stack) == 0 {
		return nil
	}
	top := c.stack[len(c.stack)-1]
	if top.kind == frameIsolate {
		return nil
	}
	return top.node
}

func (c *Context) enqueue(o *Observer) {
	if c.queued.Contains(o) {
		return
	}
	c.queued.Add(o)
	c.pending = append(c.pending, o)
}

// requeueFront puts an observer back at the head of the queue; used to
// recover from a panicking evaluation so a later Flush retries it.
func (c *Context) requeueFront(o *Observer) {
	if c.queued.Contains(o) {
		return
	}
	c.queued.Add(o)
	c.pending = append([]*Observer{o}, c.pending...)
}

// Flush drains the pending-observer queue to a fixed point: it pops
// the front observer, evaluates it if still pending, and keeps going,
// including observers enqueued by evaluations that happened earlier in the
// same Flush call. Progress is only guaranteed if the graph itself
// stabilizes; a self-sustaining write/read cycle will not terminate.
//
// An observer's pending flag is cleared before it runs, not after: if its
// own body (directly, or through an expression it reads) writes a value it
// depends on, the resulting invalidate() call re-enqueues it for another
// pass of this same loop instead of being swallowed as a no-op. This is
// what lets a single Flush call run an observer more than once.
func (c *Context) Flush() {
	for len(c.pending) > 0 {
		o := c.pending[0]
		c.pending = c.pending[1:]
		c.queued.Remove(o)

		if !o.pending {
			continue
		}
		o.pending = false

		func() {
			defer func() {
				if r := recover(); r != nil {
					o.pending = true
					c.requeueFront(o)
					panic(r)
				}
			}()
			o.evaluate()
		}()
	}
}

// Isolate runs thunk with dependency registration suppressed: reads
// performed inside it never produce edges, even though it executes inside
// whatever node is currently tracking.
func Isolate[T any](ctx *Context, thunk func() T) T {
	ctx.pushIsolate()
	defer ctx.popIsolate()
	return thunk()
}
