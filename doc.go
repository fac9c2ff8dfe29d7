// Package pedlar pairs the execution of a side effect with the registration
// of its teardown, so that lifecycle code which is conventionally split across
// mount/update/unmount callbacks can be written in one place.
//
// # What is an effect?
//
// An effect is a unit of setup work that may owe teardown work:
//
//   - attach a listener / detach it,
//   - start a ticker / stop it,
//   - acquire a resource / release it.
//
// An EffectFunc performs the setup and reports, as a Result value, whether a
// teardown is owed. The Registry runs the function immediately, mints an
// opaque EffectID for it, and keeps the teardown until the effect is
// destroyed.
//
// # Dependency-gated re-runs
//
// A Handle obtained from Perform or Defer can be reinvoked with a fresh
// dependency snapshot. The effect function only re-runs when the snapshot
// changed, compared element-wise with strict-equality semantics, and the old
// teardown always completes before the new setup begins.
//
// Example:
//
//	reg := pedlar.New()
//	h, _ := reg.Perform(func() pedlar.Result {
//	    conn := dial(addr)
//	    return pedlar.Cleanup(conn.Close)
//	}, pedlar.On(addr))
//
//	// later, with a possibly-changed addr:
//	_ = h.Reinvoke(pedlar.On(addr)) // reconnects only if addr changed
//
//	reg.DestroyAll() // every outstanding teardown runs exactly once
//
// # Ownership
//
// A Registry is intentionally not thread-safe: it is unshared mutable state
// meant to be driven by a single logical caller, and adding locks would only
// hide misuse. If several goroutines must share one instance, serialize access
// externally. WithOwnershipCheck can log a warning when this rule is broken.
package pedlar
