package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"extbuild/internal/ports"
	"extbuild/internal/types"
)

// Prober evaluates dependency detection strategies against the build
// host.  A strategy error never fails a probe; it is recorded as a
// diagnostic and the dependency stays undetected unless a later
// strategy succeeds.
type Prober struct {
	Registries map[types.RegistryKind]ports.PackageRegistryPort
	Toolchain  ports.ToolchainPort
	Runtime    ports.RuntimeImportPort

	// Root anchors relative path candidates (vendored trees).
	Root string

	// Getenv is swappable for tests; defaults to os.Getenv.
	Getenv func(string) string
}

func NewProber(registries map[types.RegistryKind]ports.PackageRegistryPort, toolchain ports.ToolchainPort, runtime ports.RuntimeImportPort, root string) Prober {
	return Prober{
		Registries: registries,
		Toolchain:  toolchain,
		Runtime:    runtime,
		Root:       root,
		Getenv:     os.Getenv,
	}
}

// strategyHit is one strategy's verdict plus detection side products.
type strategyHit struct {
	ok          bool
	includeDirs []string
	version     string
}

// ProbeAll evaluates every dependency and compiler feature declared by
// the catalog and returns the complete feature report.  The report has
// an entry for each declared name, found or not.
func (p Prober) ProbeAll(ctx context.Context, catalog types.Catalog) types.FeatureReport {
	report := types.FeatureReport{
		Features:    types.FeatureMap{},
		IncludeDirs: map[string][]string{},
		Versions:    map[string]string{},
	}
	for _, dep := range catalog.Dependencies {
		p.record(ctx, &report, dep)
	}
	for _, feature := range catalog.CompilerFeatures {
		p.record(ctx, &report, feature)
	}
	log.Ctx(ctx).Debug().Int("features", len(report.Features)).Msg("dependencies probed")
	return report
}

func (p Prober) record(ctx context.Context, report *types.FeatureReport, dep types.Dependency) {
	available := false
	for _, strategy := range dep.Strategies {
		hit, err := p.evaluate(ctx, strategy)
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, types.ProbeDiagnostic{
				Dependency: dep.Name,
				Strategy:   strategy.Kind,
				Detail:     err.Error(),
			})
			log.Ctx(ctx).Debug().
				Str("dependency", dep.Name).
				Str("strategy", string(strategy.Kind)).
				Err(err).
				Msg("probe strategy errored")
			continue
		}
		if !hit.ok {
			continue
		}
		available = true
		if len(hit.includeDirs) > 0 {
			report.IncludeDirs[dep.Name] = hit.includeDirs
		}
		if hit.version != "" {
			report.Versions[dep.Name] = hit.version
		}
		log.Ctx(ctx).Debug().
			Str("dependency", dep.Name).
			Str("strategy", string(strategy.Kind)).
			Msg("dependency detected")
		break
	}
	report.Features[dep.Name] = available
}

func (p Prober) evaluate(ctx context.Context, strategy types.DetectStrategy) (strategyHit, error) {
	switch strategy.Kind {
	case types.StrategyRegistry:
		return p.evaluateRegistry(ctx, strategy)
	case types.StrategyPaths:
		return p.evaluatePaths(strategy)
	case types.StrategyEnv:
		return p.evaluateEnv(strategy)
	case types.StrategyTrialCompile:
		return p.evaluateTrialCompile(ctx, strategy)
	case types.StrategyRuntimeImport:
		return p.evaluateRuntimeImport(ctx, strategy)
	default:
		return strategyHit{}, fmt.Errorf("unknown strategy kind %q", strategy.Kind)
	}
}

func (p Prober) evaluateRegistry(ctx context.Context, strategy types.DetectStrategy) (strategyHit, error) {
	registry, ok := p.Registries[strategy.Registry]
	if !ok {
		return strategyHit{}, fmt.Errorf("no registry adapter for %q", strategy.Registry)
	}
	exists, err := registry.Exists(ctx, strategy.Package)
	if err != nil {
		return strategyHit{}, err
	}
	if !exists {
		return strategyHit{}, nil
	}
	version, err := registry.InstalledVersion(ctx, strategy.Package)
	if err != nil {
		return strategyHit{}, err
	}
	if strategy.MinVersion != "" {
		satisfied, err := MeetsMinimum(strategy.Kind, version, strategy.MinVersion)
		if err != nil {
			return strategyHit{}, err
		}
		if !satisfied {
			return strategyHit{}, nil
		}
	}
	return strategyHit{ok: true, version: version}, nil
}

func (p Prober) evaluatePaths(strategy types.DetectStrategy) (strategyHit, error) {
	for _, candidate := range strategy.Paths {
		roots, err := expandCandidate(p.Root, candidate)
		if err != nil {
			return strategyHit{}, err
		}
		for _, root := range roots {
			found, err := markerExists(root, strategy.Marker)
			if err != nil {
				return strategyHit{}, err
			}
			if !found {
				continue
			}
			return strategyHit{ok: true, includeDirs: contributedIncludes(root, strategy)}, nil
		}
	}
	return strategyHit{}, nil
}

func (p Prober) evaluateEnv(strategy types.DetectStrategy) (strategyHit, error) {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	root := strings.TrimSpace(getenv(strategy.EnvVar))
	if root == "" {
		return strategyHit{}, nil
	}
	found, err := markerExists(root, strategy.Marker)
	if err != nil || !found {
		return strategyHit{}, err
	}
	return strategyHit{ok: true, includeDirs: contributedIncludes(root, strategy)}, nil
}

func (p Prober) evaluateTrialCompile(ctx context.Context, strategy types.DetectStrategy) (strategyHit, error) {
	accepted, err := p.Toolchain.TryCompile(ctx, strategy.Program, strategy.Flags)
	if err != nil {
		return strategyHit{}, err
	}
	return strategyHit{ok: accepted}, nil
}

func (p Prober) evaluateRuntimeImport(ctx context.Context, strategy types.DetectStrategy) (strategyHit, error) {
	importable, err := p.Runtime.Resolve(ctx, strategy.Import)
	if err != nil {
		return strategyHit{}, err
	}
	if !importable {
		return strategyHit{}, nil
	}
	hit := strategyHit{ok: true}
	if strategy.MinVersion != "" {
		version, err := p.Runtime.DistributionVersion(ctx, strategy.Import)
		if err != nil {
			return strategyHit{}, err
		}
		satisfied, err := MeetsMinimum(types.StrategyRuntimeImport, version, strategy.MinVersion)
		if err != nil {
			return strategyHit{}, err
		}
		if !satisfied {
			return strategyHit{}, nil
		}
		hit.version = version
	}
	if strategy.IncludeFromImport {
		dir, err := p.Runtime.IncludeDir(ctx, strategy.Import)
		if err != nil {
			return strategyHit{}, err
		}
		if dir != "" {
			hit.includeDirs = []string{dir}
		}
	}
	return hit, nil
}

// Feature returns the availability entry for name.  Referencing a name
// the map has no entry for is an error, never an implicit false.
func Feature(features types.FeatureMap, name string) (bool, error) {
	enabled, ok := features[name]
	if !ok {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("feature %q has no availability entry", name))
	}
	return enabled, nil
}

// expandCandidate resolves one candidate root against the project root
// and expands glob patterns.  Non-glob candidates pass through whether
// or not they exist; markerExists decides presence.
func expandCandidate(root string, candidate string) ([]string, error) {
	path := candidate
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if !strings.ContainsAny(path, "*?[") {
		return []string{path}, nil
	}
	matches, err := filepath.Glob(path)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// markerExists checks a candidate root, joined with the optional
// marker sub-path.  Markers may be glob patterns.
func markerExists(root string, marker string) (bool, error) {
	if marker == "" {
		return pathExists(root), nil
	}
	probe := filepath.Join(root, marker)
	if !strings.ContainsAny(probe, "*?[") {
		return pathExists(probe), nil
	}
	matches, err := filepath.Glob(probe)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func contributedIncludes(root string, strategy types.DetectStrategy) []string {
	if strategy.IncludeDir == "" {
		return nil
	}
	return []string{filepath.Join(root, strategy.IncludeDir)}
}
