package pedlar_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0livare/pedlar"
)

func TestRegister_RunsImmediately(t *testing.T) {
	reg := pedlar.New()

	setups, teardowns := 0, 0
	id, err := reg.Register(func() pedlar.Result {
		setups++
		return pedlar.Cleanup(func() { teardowns++ })
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Equal(t, 1, setups, "setup must run during Register")
	assert.Equal(t, 0, teardowns, "teardown must not run until Destroy")

	reg.Destroy(id)
	assert.Equal(t, 1, teardowns)
}

func TestDestroy_RunsTeardownExactlyOnce(t *testing.T) {
	reg := pedlar.New()

	teardowns := 0
	id, err := reg.Register(func() pedlar.Result {
		return pedlar.Cleanup(func() { teardowns++ })
	})
	require.NoError(t, err)

	reg.Destroy(id)
	reg.Destroy(id)
	reg.DestroyAll()
	assert.Equal(t, 1, teardowns, "teardown must run exactly once across any destroy sequence")
}

func TestDestroy_UnknownID_NoOp(t *testing.T) {
	reg := pedlar.New()

	assert.NotPanics(t, func() {
		reg.Destroy("never-issued")
	})

	id, err := reg.Register(func() pedlar.Result { return pedlar.NoCleanup() })
	require.NoError(t, err)
	reg.Destroy(id)

	assert.NotPanics(t, func() {
		reg.Destroy(id) // previously valid, now destroyed
	})
}

func TestRegister_NoCleanup_DestroyIsSafe(t *testing.T) {
	reg := pedlar.New()

	id, err := reg.Register(func() pedlar.Result { return pedlar.NoCleanup() })
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	assert.NotPanics(t, func() { reg.Destroy(id) })
	assert.Equal(t, 0, reg.Len())
}

func TestRegister_InvalidResult(t *testing.T) {
	reg := pedlar.New()

	id, err := reg.Register(func() pedlar.Result {
		return pedlar.Cleanup(nil)
	})
	require.ErrorIs(t, err, pedlar.ErrInvalidEffectResult)
	assert.Empty(t, id)
	assert.Equal(t, 0, reg.Len(), "a failed Register must leave no registry state behind")
}

func TestDestroyAll_ThreeLiveEffects(t *testing.T) {
	reg := pedlar.New()

	counts := make(map[string]int)
	for _, name := range []string{"a", "b", "c"} {
		name := name
		_, err := reg.Register(func() pedlar.Result {
			return pedlar.Cleanup(func() { counts[name]++ })
		})
		require.NoError(t, err)
	}
	require.Equal(t, 3, reg.Len())

	reg.DestroyAll()

	assert.Equal(t, 0, reg.Len(), "registry must be empty after DestroyAll")
	for _, name := range []string{"a", "b", "c"} {
		assert.Equal(t, 1, counts[name], "teardown %q must run exactly once", name)
	}

	assert.NotPanics(t, reg.DestroyAll, "DestroyAll on an empty registry is a no-op")
	assert.NotPanics(t, reg.DestroyAll)
}

func TestDestroyAll_PanickingTeardown_SweepContinues(t *testing.T) {
	reg := pedlar.New()

	ran := make(map[string]bool)
	for _, name := range []string{"a", "b", "c"} {
		name := name
		_, err := reg.Register(func() pedlar.Result {
			return pedlar.Cleanup(func() {
				ran[name] = true
				if name == "b" {
					panic("teardown b failed")
				}
			})
		})
		require.NoError(t, err)
	}

	assert.PanicsWithValue(t, "teardown b failed", reg.DestroyAll,
		"the first panic must surface after the sweep")

	assert.Equal(t, 0, reg.Len(), "every slot is cleared even when a teardown panics")
	for _, name := range []string{"a", "b", "c"} {
		assert.True(t, ran[name], "teardown %q must still run", name)
	}
}

func TestRegister_IDsNeverReused(t *testing.T) {
	reg := pedlar.New()

	seen := make(map[pedlar.EffectID]bool)
	for i := 0; i < 100; i++ {
		id, err := reg.Register(func() pedlar.Result { return pedlar.NoCleanup() })
		require.NoError(t, err)
		require.False(t, seen[id], "id %s reissued after the registry drained", id)
		seen[id] = true
		reg.Destroy(id)
		require.Equal(t, 0, reg.Len())
	}
}

func TestWithGenerator_ReplacesIDMinting(t *testing.T) {
	n := 0
	reg := pedlar.New(pedlar.WithGenerator(func() string {
		n++
		return fmt.Sprintf("effect-%d", n)
	}))

	id, err := reg.Register(func() pedlar.Result { return pedlar.NoCleanup() })
	require.NoError(t, err)
	assert.Equal(t, pedlar.EffectID("effect-1"), id)

	id, err = reg.Register(func() pedlar.Result { return pedlar.NoCleanup() })
	require.NoError(t, err)
	assert.Equal(t, pedlar.EffectID("effect-2"), id)
}

func TestRegister_PanickingSetup_LeavesNoState(t *testing.T) {
	reg := pedlar.New()

	require.PanicsWithValue(t, "setup failed", func() {
		_, _ = reg.Register(func() pedlar.Result {
			panic("setup failed")
		})
	})
	assert.Equal(t, 0, reg.Len())
}
