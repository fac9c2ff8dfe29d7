// Package identity mints the opaque string tokens the registry hands out as
// effect ids.
package identity

import "github.com/google/uuid"

// Generator produces a fresh unique string on each call. A generator must be
// collision-free within one process's lifetime for a given registry.
type Generator func() string

// UUID is the default generator.
func UUID() string {
	return uuid.New().String()
}
