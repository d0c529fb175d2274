// Package builtin registers the levels shipped with the binary.
// Import it for side effects.
package builtin

import (
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/registry"
)

func init() {
	registry.Register("meadow", level.Meadow)
}
