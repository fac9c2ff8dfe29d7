package pedlar

import (
	"github.com/petermattis/goid"
	"go.uber.org/zap"

	"github.com/0livare/pedlar/internal/identity"
)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger routes the registry's debug and diagnostic output through
// logger. The default is a nop logger. A nil logger keeps the default.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithGenerator replaces the default uuid id generator. The generator must
// stay collision-free for the registry's lifetime; ids it already produced
// must never come back, even after the registry drains.
func WithGenerator(gen identity.Generator) Option {
	return func(r *Registry) {
		if gen != nil {
			r.generate = gen
		}
	}
}

// WithJournal attaches a lifecycle sink. Sends are non-blocking; size the
// channel for the burstiness of the caller or accept dropped records.
func WithJournal(sink chan<- Record) Option {
	return func(r *Registry) {
		r.journal = sink
	}
}

// WithOwnershipCheck records the constructing goroutine and logs a warning
// whenever a registry operation runs on a different one. Purely a debugging
// aid for the single-logical-caller rule; it synchronizes nothing.
func WithOwnershipCheck() Option {
	return func(r *Registry) {
		r.owner = goid.Get()
	}
}
