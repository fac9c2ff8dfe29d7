package pedlar

// EventHandler consumes one event payload.
type EventHandler func(payload any)

// ListenerOptions qualifies a listener attachment. Detaching requires the
// exact options the listener was attached with; the fields carry no meaning
// to this package beyond that identity.
type ListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
}

// EventSource is an external event emitter that can attach and detach named
// listeners. Removal must match the exact (event, handler, options) triple of
// a prior attachment. The emitter subpackage ships a reference implementation.
type EventSource interface {
	AddEventListener(event string, handler EventHandler, opts ListenerOptions)
	RemoveEventListener(event string, handler EventHandler, opts ListenerOptions)
}

// AddEventEffect registers listener attachment and detachment as one effect:
// setup attaches handler to src, and the stored teardown detaches the same
// triple. Destroying the returned id is the only way to detach through this
// path.
func (r *Registry) AddEventEffect(src EventSource, event string, handler EventHandler, opts ListenerOptions) (EffectID, error) {
	return r.Register(func() Result {
		src.AddEventListener(event, handler, opts)
		return Cleanup(func() {
			src.RemoveEventListener(event, handler, opts)
		})
	})
}
