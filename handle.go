package pedlar

import (
	"time"

	"go.uber.org/zap"
)

// Handle represents one registered effect from the caller's side. It carries
// the effect's id, its last dependency snapshot, and a back-reference to the
// registry for teardown lookup, not ownership of it. Once the effect is
// destroyed, individually or via DestroyAll, the handle goes inert: Reinvoke
// becomes a silent no-op. A handle is never deleted, only neutralized.
type Handle struct {
	id       EffectID
	registry *Registry
	fn       EffectFunc
	lastDeps Deps

	// activated flips on the first run. For deferred handles that happens on
	// the first Reinvoke, which skips dependency comparison entirely.
	activated bool
}

// ID returns the effect's id, usable with Registry.Destroy.
func (h *Handle) ID() EffectID {
	return h.id
}

// Defer creates a handle without running the effect. The effect function
// executes for the first time on the first Reinvoke call, which also captures
// the initial dependency snapshot. The id is minted, and destroyable, from
// the moment Defer returns.
func (r *Registry) Defer(fn EffectFunc) *Handle {
	r.checkOwner("Defer")

	id := EffectID(r.generate())
	r.entries[id] = &entry{}
	r.logger.Debug("effect deferred", zap.String("effectId", string(id)))
	return &Handle{id: id, registry: r, fn: fn}
}

// Perform invokes fn synchronously, right now, and returns a handle with the
// initial dependency snapshot stored. Equivalent to Register plus handle
// wrapping. Pass a nil Deps to opt out of dependency tracking, or On(...) to
// declare the values subsequent Reinvoke calls are compared against.
func (r *Registry) Perform(fn EffectFunc, deps Deps) (*Handle, error) {
	r.checkOwner("Perform")

	start := time.Now()
	teardown, err := fn().teardownFn()
	if err != nil {
		return nil, err
	}

	id := EffectID(r.generate())
	r.entries[id] = &entry{teardown: teardown}
	r.record(id, OpRegister, start, time.Now())
	r.logger.Debug("effect registered",
		zap.String("effectId", string(id)),
		zap.Bool("hasCleanup", teardown != nil),
	)
	return &Handle{id: id, registry: r, fn: fn, lastDeps: deps, activated: true}, nil
}

// Reinvoke re-runs the effect if the dependency snapshot changed since the
// last run, per the comparison rules on Deps. The stored teardown, if any,
// always completes before the new setup begins, and the new run's teardown is
// stored under the same id.
//
// Reinvoke on a destroyed handle is a silent no-op. An effect whose last run
// owed no teardown is re-run with its result ignored: it is assumed to never
// start producing one, so the result is not re-validated on that path.
//
// When a re-run's new result is invalid, the old teardown has already run by
// the time validation fails: the error is returned, the effect stays live
// owing no teardown, and later reinvocations therefore take the
// ignore-result path.
func (h *Handle) Reinvoke(current Deps) error {
	r := h.registry
	r.checkOwner("Reinvoke")

	e, ok := r.entries[h.id]
	if !ok {
		return nil
	}

	if !h.activated {
		return h.activate(e, current)
	}

	rerun, err := decide(h.lastDeps, current)
	if err != nil {
		return err
	}
	if !rerun {
		return nil
	}
	h.lastDeps = current

	start := time.Now()
	if e.teardown == nil {
		h.fn()
		r.record(h.id, OpRerun, start, time.Now())
		r.logger.Debug("effect reran", zap.String("effectId", string(h.id)))
		return nil
	}

	e.teardown()
	e.teardown = nil
	teardown, err := h.fn().teardownFn()
	if err != nil {
		return err
	}
	e.teardown = teardown
	r.record(h.id, OpRerun, start, time.Now())
	r.logger.Debug("effect reran", zap.String("effectId", string(h.id)))
	return nil
}

// activate performs a deferred handle's first run: no prior teardown exists,
// so nothing is torn down, and current becomes the initial snapshot.
func (h *Handle) activate(e *entry, current Deps) error {
	r := h.registry

	start := time.Now()
	teardown, err := h.fn().teardownFn()
	if err != nil {
		return err
	}
	h.lastDeps = current
	h.activated = true
	e.teardown = teardown
	r.record(h.id, OpRegister, start, time.Now())
	r.logger.Debug("effect activated",
		zap.String("effectId", string(h.id)),
		zap.Bool("hasCleanup", teardown != nil),
	)
	return nil
}
