package pedlar

import (
	"fmt"
	"reflect"
)

// Deps is an ordered dependency snapshot. A nil Deps means no dependency
// tracking was requested: the effect re-runs on every reinvocation. A non-nil
// empty Deps means zero dependencies: the effect never re-runs. The arity of
// a non-nil snapshot must stay constant across an effect's lifetime.
type Deps []any

// On builds a dependency snapshot. On() with no arguments yields the non-nil
// empty snapshot.
func On(values ...any) Deps {
	if values == nil {
		return Deps{}
	}
	return Deps(values)
}

// decide reports whether an effect last run against prev must re-run given
// cur. Comparison is shallow, ordered, and strict: changing an element's
// dynamic type counts as a change even when the values print the same.
func decide(prev, cur Deps) (rerun bool, err error) {
	switch {
	case prev == nil && cur == nil:
		return true, nil
	case prev == nil || cur == nil:
		return false, fmt.Errorf("%w: snapshot supplied on one call and omitted on the other", ErrInconsistentDeps)
	case len(prev) != len(cur):
		return false, fmt.Errorf("%w: %d then %d", ErrDepsArityMismatch, len(prev), len(cur))
	}
	for i := range prev {
		if !same(prev[i], cur[i]) {
			return true, nil
		}
	}
	return false, nil
}

// same mirrors strict equality: equal values of the same comparable dynamic
// type, or the same reference. Values Go cannot compare with == (slices,
// maps, funcs) never match, which is what reference semantics degrade to
// without sharing a pointer. Mutating a shared pointee in place is invisible
// here.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
