package pedlar

import (
	"time"

	"github.com/petermattis/goid"
	"go.uber.org/zap"

	"github.com/0livare/pedlar/internal/identity"
)

// EffectID is the opaque token naming one registered effect. Ids are unique
// for the lifetime of the process and are never reassigned to another live
// effect, even after the original is destroyed and the registry drains.
type EffectID string

// entry is one live effect's slot. Destroying an effect removes the slot;
// the id itself is never recycled. A nil teardown means the effect ran but
// owes no cleanup.
type entry struct {
	teardown func()
}

// Registry owns the mapping from live effect ids to their pending teardowns.
//
// IMPORTANT: a Registry is intentionally NOT thread-safe. It is designed as
// unshared mutable state driven by a single logical caller, and deliberately
// carries no mutexes or atomics so that cross-goroutine sharing fails loudly
// in the race detector instead of silently serializing. If shared access is
// required, manage synchronization outside this type.
type Registry struct {
	entries  map[EffectID]*entry
	generate identity.Generator
	logger   *zap.Logger
	journal  chan<- Record
	owner    int64
}

// New builds an empty registry. By default it mints uuid ids, logs nowhere,
// and journals nothing; see the Option constructors.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[EffectID]*entry),
		generate: identity.UUID,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register invokes fn synchronously, right now, and returns the fresh id
// minted for it. The id is returned whether or not fn produced a teardown;
// only a produced teardown is stored. An invalid Result is reported before
// any registry state is mutated, so a failed Register leaves no trace.
func (r *Registry) Register(fn EffectFunc) (EffectID, error) {
	r.checkOwner("Register")

	start := time.Now()
	teardown, err := fn().teardownFn()
	if err != nil {
		return "", err
	}

	id := EffectID(r.generate())
	r.entries[id] = &entry{teardown: teardown}
	r.record(id, OpRegister, start, time.Now())
	r.logger.Debug("effect registered",
		zap.String("effectId", string(id)),
		zap.Bool("hasCleanup", teardown != nil),
	)
	return id, nil
}

// Destroy tears down the effect named by id. Unknown and already-destroyed
// ids are a silent no-op, so teardown code is robust to double invocation.
// A stored teardown runs synchronously, exactly once, before Destroy returns.
func (r *Registry) Destroy(id EffectID) {
	r.checkOwner("Destroy")

	e, ok := r.entries[id]
	if !ok {
		return
	}
	// Remove the slot first so a panicking teardown can never run twice.
	delete(r.entries, id)
	if e.teardown == nil {
		r.logger.Debug("effect destroyed", zap.String("effectId", string(id)))
		return
	}

	start := time.Now()
	e.teardown()
	r.record(id, OpDestroy, start, time.Now())
	r.logger.Debug("effect destroyed", zap.String("effectId", string(id)))
}

// DestroyAll tears down every live effect. Each stored teardown runs exactly
// once; cross-effect ordering is unspecified. The sweep is best-effort: a
// panicking teardown does not stop the remaining ones, and the first panic
// value is re-raised once the registry is empty. Safe to call repeatedly.
func (r *Registry) DestroyAll() {
	r.checkOwner("DestroyAll")

	var firstPanic any
	for id := range r.entries {
		func() {
			defer func() {
				if p := recover(); p != nil && firstPanic == nil {
					firstPanic = p
				}
			}()
			r.Destroy(id)
		}()
	}
	if firstPanic != nil {
		panic(firstPanic)
	}
}

// Len reports the number of live effects.
func (r *Registry) Len() int {
	return len(r.entries)
}

// checkOwner logs a warning when ownership diagnostics are enabled and the
// registry is driven from a goroutine other than its creator.
func (r *Registry) checkOwner(op string) {
	if r.owner == 0 {
		return
	}
	if g := goid.Get(); g != r.owner {
		r.logger.Warn("registry driven from a foreign goroutine",
			zap.String("op", op),
			zap.Int64("ownerGoroutine", r.owner),
			zap.Int64("callerGoroutine", g),
		)
	}
}
