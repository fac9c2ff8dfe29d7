package pedlar

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Op labels a lifecycle transition recorded in the journal.
type Op string

const (
	// OpRegister covers an effect's setup run, whether immediate or the first
	// activation of a deferred handle.
	OpRegister Op = "register"

	// OpRerun covers a dependency-triggered re-run, teardown included.
	OpRerun Op = "rerun"

	// OpDestroy covers a stored teardown run via Destroy or DestroyAll.
	OpDestroy Op = "destroy"
)

// Record is one journal entry. Span bounds the caller-supplied code that ran
// for the transition: the setup for OpRegister, teardown-then-setup for
// OpRerun, the teardown for OpDestroy.
type Record struct {
	ID   EffectID
	Op   Op
	Span timespan.TimeSpan
}

// record emits to the journal sink, if any. The send never blocks: a full
// sink drops the record so registry operations stay synchronous.
func (r *Registry) record(id EffectID, op Op, from, to time.Time) {
	if r.journal == nil {
		return
	}
	select {
	case r.journal <- Record{ID: id, Op: op, Span: timespan.BetweenTimes(from, to)}:
	default:
	}
}
