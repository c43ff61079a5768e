package features

import (
	"fmt"
	"sort"
	"sync"

	"github.com/evalhouse/scenegen/internal/scene"
)

// Builder produces one randomized variant of a feature request. Builders
// register themselves in init() functions, allowing the engine to discover
// feature types without hardcoded dependencies.
type Builder interface {
	// Type returns the feature keyword used in scene definitions
	// (e.g. "platforms", "droppers").
	Type() string

	// Reconcile checks the source against the builder's configuration
	// type and returns the configuration one attempt will build from.
	// The controller calls it once per attempt and reports the last
	// reconciled configuration with an exhausted PlacementError.
	Reconcile(sess *Session, source any) (any, error)

	// Build resolves the reconciled configuration into concrete scene
	// instances with final positions and bounds. Returning a
	// PlacementError asks the controller to retry with a fresh
	// resolution; DelayError and ConfigError abort the attempt loop.
	Build(sess *Session, source any) ([]*scene.Instance, error)
}

// Validator lets a builder replace the default bounds check. Builders
// whose geometry is deliberately out of room (wall-embedded throwers) or
// that track extra state implement this.
type Validator interface {
	Valid(sess *Session, instances []*scene.Instance) bool
}

// Committer runs after instances are committed to the scene. Used for
// bookkeeping that must only happen on success, such as registering
// floor areas or stretching the scene's last step.
type Committer interface {
	Committed(sess *Session, source any, instances []*scene.Instance) error
}

var (
	builders = make(map[string]Builder)
	mu       sync.RWMutex
)

// Register adds a builder to the registry. Typically called from a
// builder's init() function. Panics on duplicate type keywords.
func Register(b Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := builders[b.Type()]; exists {
		panic(fmt.Sprintf("features: builder %q already registered", b.Type()))
	}
	builders[b.Type()] = b
}

// Lookup returns the builder for a feature keyword.
func Lookup(typeName string) (Builder, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := builders[typeName]
	if !ok {
		return nil, fmt.Errorf("features: unknown feature type %q", typeName)
	}
	return b, nil
}

// Types returns all registered feature keywords, sorted.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, 0, len(builders))
	for t := range builders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
