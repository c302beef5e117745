// Package solvers maps optimization capability tags to the named
// factory constructors the built library exposes.  The registry is
// static and resolved by explicit lookup; every variant is a declared
// entry gated on a detected feature.
package solvers

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/shared"
	"extbuild/internal/types"
)

// Factory describes one named solver constructor and the feature that
// must be available for it to exist in the built library.  An empty
// Requires means the factory is always present.
type Factory struct {
	Name     string
	Requires string
}

// Availability pairs a factory with its gate verdict for one feature
// map.
type Availability struct {
	Factory   Factory
	Available bool
}

var capabilities = map[string][]Factory{
	"minstcut": {
		{Name: "kolmogorov"},
		{Name: "qpbo", Requires: "qpbo"},
	},
	"multicut": {
		{Name: "greedy-additive"},
		{Name: "kernighan-lin"},
		{Name: "message-passing", Requires: "lp_mp"},
		{Name: "ilp-gurobi", Requires: "gurobi"},
		{Name: "ilp-cplex", Requires: "cplex"},
	},
	"lifted-multicut": {
		{Name: "greedy-additive"},
		{Name: "kernighan-lin"},
		{Name: "message-passing", Requires: "lp_mp"},
	},
}

// Capabilities lists the registered capability tags, sorted.
func Capabilities() []string {
	tags := make([]string, 0, len(capabilities))
	for tag := range capabilities {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Lookup returns the factory set registered for a capability tag.
// Unknown tags are an error, not an implicit empty set.
func Lookup(tag string) ([]Factory, error) {
	factories, ok := capabilities[tag]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown solver capability %q", tag))
	}
	return append([]Factory(nil), factories...), nil
}

// Resolve gates every factory of a capability on the feature map.  A
// feature the map does not record counts as unavailable: it cannot
// have been compiled in.
func Resolve(tag string, features types.FeatureMap) ([]Availability, error) {
	return resolve(tag, func(feature string) bool {
		return features[feature]
	})
}

// ResolveRuntime gates factories on the runtime reflection structure,
// whose feature keys carry the macro marker prefix.
func ResolveRuntime(tag string, runtime types.RuntimeReflection) ([]Availability, error) {
	return resolve(tag, func(feature string) bool {
		return runtime.Features[shared.MacroName(feature)]
	})
}

func resolve(tag string, enabled func(string) bool) ([]Availability, error) {
	factories, err := Lookup(tag)
	if err != nil {
		return nil, err
	}
	resolved := make([]Availability, 0, len(factories))
	for _, factory := range factories {
		available := factory.Requires == "" || enabled(factory.Requires)
		resolved = append(resolved, Availability{Factory: factory, Available: available})
	}
	return resolved, nil
}
