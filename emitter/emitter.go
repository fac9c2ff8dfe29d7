// Package emitter provides an in-memory pedlar.EventSource: a small dispatch
// table for named events with matching-triple removal semantics. It exists so
// listener effects can be exercised without a platform event target.
package emitter

import (
	"encoding/binary"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/0livare/pedlar"
)

type listener struct {
	key     uint64
	handler pedlar.EventHandler
	opts    pedlar.ListenerOptions
}

// Emitter dispatches named events to attached listeners.
//
// Listener identity is the (event, handler, options) triple. Handlers are
// identified by their code pointer, so two closures made from the same
// function literal count as the same handler; attach distinct named functions
// when that distinction matters. Attaching an already-attached triple is a
// no-op, and removal detaches exactly one triple.
//
// Like the registry it is meant to collaborate with, an Emitter is not
// thread-safe.
type Emitter struct {
	listeners map[string][]listener
}

// New builds an empty emitter.
func New() *Emitter {
	return &Emitter{listeners: make(map[string][]listener)}
}

// AddEventListener attaches handler to the named event. Duplicate triples
// are ignored.
func (e *Emitter) AddEventListener(event string, handler pedlar.EventHandler, opts pedlar.ListenerOptions) {
	key := tripleKey(event, handler, opts)
	for _, l := range e.listeners[event] {
		if l.key == key {
			return
		}
	}
	e.listeners[event] = append(e.listeners[event], listener{key: key, handler: handler, opts: opts})
}

// RemoveEventListener detaches the listener attached with the exact same
// event name, handler, and options. Unknown triples are a no-op.
func (e *Emitter) RemoveEventListener(event string, handler pedlar.EventHandler, opts pedlar.ListenerOptions) {
	key := tripleKey(event, handler, opts)
	kept := e.listeners[event][:0]
	for _, l := range e.listeners[event] {
		if l.key != key {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(e.listeners, event)
		return
	}
	e.listeners[event] = kept
}

// Emit delivers payload to every listener of the named event, in attachment
// order. Listeners attached with Once are detached after delivery. Dispatch
// iterates a snapshot, so removal during dispatch never shifts listeners
// under the iterator; a listener detached mid-dispatch by an earlier one is
// skipped, and one attached mid-dispatch waits for the next Emit.
func (e *Emitter) Emit(event string, payload any) {
	for _, l := range slices.Clone(e.listeners[event]) {
		if !e.attached(event, l.key) {
			continue
		}
		l.handler(payload)
		if l.opts.Once {
			e.RemoveEventListener(event, l.handler, l.opts)
		}
	}
}

func (e *Emitter) attached(event string, key uint64) bool {
	for _, l := range e.listeners[event] {
		if l.key == key {
			return true
		}
	}
	return false
}

// Len reports the number of listeners attached to the named event.
func (e *Emitter) Len(event string) int {
	return len(e.listeners[event])
}

// tripleKey hashes listener identity into the 64-bit key the dispatch table
// is matched on.
func tripleKey(event string, handler pedlar.EventHandler, opts pedlar.ListenerOptions) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(event)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(reflect.ValueOf(handler).Pointer()))
	_, _ = d.Write(buf[:])

	flags := byte(0)
	if opts.Capture {
		flags |= 1
	}
	if opts.Once {
		flags |= 2
	}
	if opts.Passive {
		flags |= 4
	}
	_, _ = d.Write([]byte{flags})
	return d.Sum64()
}
