// Package reactively implements a fine-grained reactive evaluator: a
// dependency-tracking graph of values, memoized expressions and observers
// that re-runs the minimum necessary set of dependents, in a correct order,
// exactly once per change cycle.
//
// There are three node kinds. A Value holds a mutable payload written from
// outside the graph. An Expression is a memoized, lazily-recomputed pure
// function of other nodes. An Observer is a side-effecting leaf scheduled by
// Flush. Edges between them are re-derived on every (re-)evaluation from
// whichever nodes were actually read, so a branch not taken this run leaves
// no edge behind.
package reactively

// Handle is the diagnostic surface every node kind shares.
type Handle interface {
	ExecCount() int
}

// node is anything that can be read and have dependents registered against
// it: Value and Expression. It is intentionally non-generic so that edges
// can cross payload types.
type node interface {
	addObserver(o invalidatable)
	removeObserver(o invalidatable)
}

// invalidatable is anything that can be told its cached state is stale:
// Expression and Observer.
type invalidatable interface {
	invalidate()
}

// tracker is a node kind that can itself be the "currently evaluating" frame
// on the context stack, recording the sources it reads as it runs.
type tracker interface {
	invalidatable
	recordSource(s node)
}
