package pedlar

import "errors"

var (
	// ErrInvalidEffectResult reports an effect function whose Result was built
	// through Cleanup with a nil teardown. It is returned before any registry
	// state is touched for that call.
	ErrInvalidEffectResult = errors.New("pedlar: effect returned Cleanup(nil)")

	// ErrInconsistentDeps reports a call site that supplied a dependency
	// snapshot on one call and omitted it on another for the same effect.
	ErrInconsistentDeps = errors.New("pedlar: inconsistent dependency usage")

	// ErrDepsArityMismatch reports dependency snapshots of different lengths
	// across calls for the same effect.
	ErrDepsArityMismatch = errors.New("pedlar: dependency arity mismatch")
)
