package pedlar

// EffectFunc performs setup work synchronously and reports whether teardown
// is owed. It must return a value built by Cleanup or NoCleanup.
type EffectFunc func() Result

// Result is the outcome of one effect run: either a teardown the registry
// must hold on to, or nothing. The zero value is equivalent to NoCleanup().
type Result struct {
	teardown func()
	owed     bool
}

// Cleanup declares that the effect owes the given teardown. Passing a nil
// function is a contract violation surfaced as ErrInvalidEffectResult by the
// operation that ran the effect.
func Cleanup(teardown func()) Result {
	return Result{teardown: teardown, owed: true}
}

// NoCleanup declares that the effect owes no teardown.
func NoCleanup() Result {
	return Result{}
}

// teardownFn validates the result and unwraps its teardown, which is nil when
// none is owed.
func (res Result) teardownFn() (func(), error) {
	if res.owed && res.teardown == nil {
		return nil, ErrInvalidEffectResult
	}
	return res.teardown, nil
}
