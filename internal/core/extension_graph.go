package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"extbuild/internal/policies"
	"extbuild/internal/shared"
	"extbuild/internal/types"
)

// GraphBuilder turns the catalog's module list into concrete build
// descriptors, gated on the feature report.  Modules are processed in
// catalog order and all filesystem expansion happens here, so a
// descriptor handed to the toolchain carries no conditionals.
type GraphBuilder struct {
	Policy policies.FlagPolicy

	// Root anchors relative sources and include dirs.
	Root string
}

func NewGraphBuilder(policy policies.FlagPolicy, root string) GraphBuilder {
	return GraphBuilder{Policy: policy, Root: root}
}

type GraphResult struct {
	Descriptors []types.BuildDescriptor
	Skipped     []types.SkippedModule
}

// standardIncludeRoots are toolchain search paths contributed to every
// module when present on the host.
var standardIncludeRoots = []string{
	"/usr/include",
	"/usr/local/include",
	"/opt/homebrew/include",
	"/opt/conda/include",
}

// Build gates every catalog module on the feature report.  An optional
// module with unavailable requirements lands in the skip list; a
// non-optional one aborts the whole graph, naming the module and the
// full missing set.
func (g GraphBuilder) Build(ctx context.Context, catalog types.Catalog, report types.FeatureReport) (GraphResult, error) {
	var result GraphResult
	for _, module := range catalog.Modules {
		missing, err := unsatisfiedRequires(module, report.Features)
		if err != nil {
			return GraphResult{}, err
		}
		if len(missing) > 0 {
			if module.Optional {
				result.Skipped = append(result.Skipped, types.SkippedModule{
					Module:  module.Name,
					Missing: missing,
				})
				log.Ctx(ctx).Debug().
					Str("module", module.Name).
					Strs("missing", missing).
					Msg("optional module skipped")
				continue
			}
			return GraphResult{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("module %s requires unavailable dependencies: %s",
					module.Name, strings.Join(missing, ", ")))
		}
		descriptor, err := g.describe(module, report)
		if err != nil {
			return GraphResult{}, err
		}
		result.Descriptors = append(result.Descriptors, descriptor)
	}
	log.Ctx(ctx).Debug().
		Int("buildable", len(result.Descriptors)).
		Int("skipped", len(result.Skipped)).
		Msg("extension graph built")
	return result, nil
}

// unsatisfiedRequires collects the module's required features that are
// unavailable.  Each reference must have an availability entry.
func unsatisfiedRequires(module types.ModuleDescriptor, features types.FeatureMap) ([]string, error) {
	var missing []string
	for _, name := range module.Requires {
		enabled, err := Feature(features, name)
		if err != nil {
			return nil, err
		}
		if !enabled {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (g GraphBuilder) describe(module types.ModuleDescriptor, report types.FeatureReport) (types.BuildDescriptor, error) {
	sources, err := expandSources(g.Root, module.Name, module.Sources)
	if err != nil {
		return types.BuildDescriptor{}, err
	}
	return types.BuildDescriptor{
		Module:        module.Name,
		Sources:       sources,
		IncludeDirs:   g.mergeIncludes(module, report),
		Macros:        featureMacros(report.Features),
		CompileFlags:  g.Policy.CompileFlags(report.Features),
		LinkLibraries: g.Policy.LinkLibraries(report.Features),
	}, nil
}

// featureMacros defines one symbol per available feature, mirroring
// the defines of the generated configuration header.
func featureMacros(features types.FeatureMap) []types.Macro {
	names := make([]string, 0, len(features))
	for name, enabled := range features {
		if enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	macros := make([]types.Macro, 0, len(names))
	for _, name := range names {
		macros = append(macros, types.Macro{Name: shared.MacroName(name), Value: "1"})
	}
	return macros
}

// mergeIncludes builds the include search path: module-declared dirs,
// then standard roots present on the host, then feature-contributed
// dirs, deduplicated keeping first occurrence.
func (g GraphBuilder) mergeIncludes(module types.ModuleDescriptor, report types.FeatureReport) []string {
	var merged []string
	for _, dir := range module.IncludeDirs {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(g.Root, dir)
		}
		merged = append(merged, dir)
	}
	for _, dir := range standardIncludeRoots {
		if pathExists(dir) {
			merged = append(merged, dir)
		}
	}
	var contributors []string
	for feature := range report.IncludeDirs {
		contributors = append(contributors, feature)
	}
	sort.Strings(contributors)
	for _, feature := range contributors {
		merged = append(merged, report.IncludeDirs[feature]...)
	}
	return dedupe(merged)
}

// expandSources resolves the module's source patterns against the
// project root at graph-build time.  Globs may legitimately match
// nothing only if another pattern still provides sources.
func expandSources(root string, module string, patterns []string) ([]string, error) {
	var sources []string
	for _, pattern := range patterns {
		matches, err := expandCandidate(root, pattern)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			if !pathExists(match) {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("module %s source %s does not exist", module, match))
			}
			sources = append(sources, match)
		}
	}
	if len(sources) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("module %s sources matched no files", module))
	}
	sort.Strings(sources)
	return dedupe(sources), nil
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
