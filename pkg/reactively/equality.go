package reactively

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// EqualsFunc decides whether two results are the same for memoization
// purposes; host equality per the engine's usual semantics.
type EqualsFunc[T any] func(a, b T) bool

// defaultEquals is reflect.DeepEqual, which handles primitives and the
// small composite values (structs, slices, maps of those) that this engine
// expects nodes to carry.
func defaultEquals[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// BytesEquals is an EqualsFunc for []byte payloads that hashes both sides
// with xxhash before falling back to a byte-for-byte compare.
func BytesEquals(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if xxhash.Sum64(a) != xxhash.Sum64(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
