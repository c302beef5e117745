package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"extbuild/internal/core"
	"extbuild/internal/policies"
	"extbuild/internal/types"
)

// Build runs the full extension build pipeline once: resolve vendored
// trees, probe the dependency catalog, emit the configuration
// artifact, assemble the build graph, and hand every descriptor to the
// toolchain.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	return NewOrchestrator(s).Run(ctx, req)
}

// Orchestrator sequences the pipeline stages as a one-shot state
// machine.  Every stage consumes the full output of the previous one;
// Failed is reachable from any stage, and a finished orchestrator
// cannot be rerun.
type Orchestrator struct {
	service Service
	state   types.BuildState
}

func NewOrchestrator(service Service) *Orchestrator {
	return &Orchestrator{service: service, state: types.StateStart}
}

// State reports the pipeline state, for diagnostics and tests.
func (o *Orchestrator) State() types.BuildState {
	return o.state
}

// isAllowedTransition encodes the pipeline's transition table.  Stages
// only move forward; Failed is terminal and reachable from every
// non-terminal state.
func isAllowedTransition(from types.BuildState, to types.BuildState) bool {
	if to == types.StateFailed {
		return from != types.StateDone && from != types.StateFailed
	}
	switch from {
	case types.StateStart:
		return to == types.StateSubmodulesResolved
	case types.StateSubmodulesResolved:
		return to == types.StateFeaturesDetected
	case types.StateFeaturesDetected:
		return to == types.StateConfigGenerated
	case types.StateConfigGenerated:
		return to == types.StateGraphBuilt
	case types.StateGraphBuilt:
		return to == types.StateDelegated
	case types.StateDelegated:
		return to == types.StateDone
	default:
		return false
	}
}

func (o *Orchestrator) advance(ctx context.Context, to types.BuildState, started time.Time) error {
	if !isAllowedTransition(o.state, to) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("disallowed pipeline transition %s -> %s", o.state, to))
	}
	log.Ctx(ctx).Debug().
		Str("from", string(o.state)).
		Str("to", string(to)).
		Dur("elapsed", time.Since(started)).
		Msg("pipeline stage complete")
	o.state = to
	return nil
}

func (o *Orchestrator) fail(err error) error {
	o.state = types.StateFailed
	return err
}

// Run executes the pipeline exactly once.  Rerunning a finished or
// failed orchestrator is rejected; starting over with a fresh one is
// the only retry.
func (o *Orchestrator) Run(ctx context.Context, req BuildRequest) (BuildResult, error) {
	if o.state != types.StateStart {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("build pipeline already ran (state %s)", o.state))
	}
	root := projectRoot(req.Root)
	buildDir := strings.TrimSpace(req.BuildDir)
	if buildDir == "" {
		buildDir = filepath.Join(root, "build")
	}

	resolved, err := o.service.loadCatalog(ctx, req.CatalogPath, root)
	if err != nil {
		return BuildResult{}, o.fail(err)
	}

	// Stage 1: resolve vendored trees.  Individual failures are
	// reported, never fatal here; a module that needed the tree turns
	// them fatal during graph building.
	started := time.Now()
	for _, entry := range o.service.resolveSubmodules(ctx, root, resolved.Submodules) {
		if !entry.OK {
			log.Ctx(ctx).Warn().
				Str("submodule", entry.Path).
				Str("detail", entry.Detail).
				Msg("submodule resolution failed")
		}
	}
	if err := o.advance(ctx, types.StateSubmodulesResolved, started); err != nil {
		return BuildResult{}, o.fail(err)
	}

	// Stage 2: probe every declared dependency and compiler feature.
	started = time.Now()
	prober := core.NewProber(o.service.Registries, o.service.Toolchain, o.service.Runtime, root)
	report := prober.ProbeAll(ctx, resolved)
	if err := o.advance(ctx, types.StateFeaturesDetected, started); err != nil {
		return BuildResult{}, o.fail(err)
	}

	// Stage 3: read the version triple and write both halves of the
	// configuration artifact.  Unreadable version source and malformed
	// version strings are fatal.
	started = time.Now()
	version, err := o.service.VersionSource.ReadVersion(
		filepath.Join(root, resolved.Project.VersionHeader), resolved.Project.Name)
	if err != nil {
		return BuildResult{}, o.fail(err)
	}
	artifact, err := core.GenerateConfigArtifact(resolved.Project.Name, version, report.Features)
	if err != nil {
		return BuildResult{}, o.fail(err)
	}
	headerPath := filepath.Join(buildDir, "config", resolved.Project.Name+"_build_config.h")
	runtimePath := filepath.Join(buildDir, "features.json")
	if err := o.service.ConfigWriter.WriteHeader(headerPath, artifact); err != nil {
		return BuildResult{}, o.fail(err)
	}
	if err := o.service.ConfigWriter.WriteRuntime(runtimePath, artifact); err != nil {
		return BuildResult{}, o.fail(err)
	}
	if err := o.advance(ctx, types.StateConfigGenerated, started); err != nil {
		return BuildResult{}, o.fail(err)
	}

	// Stage 4: assemble the build graph.  An unsatisfiable required
	// module aborts the whole run.
	started = time.Now()
	builder := core.NewGraphBuilder(policies.NewFlagPolicy(o.service.Platform), root)
	graph, err := builder.Build(ctx, resolved, report)
	if err != nil {
		return BuildResult{}, o.fail(err)
	}
	if err := o.advance(ctx, types.StateGraphBuilt, started); err != nil {
		return BuildResult{}, o.fail(err)
	}

	// Stage 5: delegate to the toolchain in graph order.  The first
	// failure ends the run with the toolchain's own diagnostic.
	started = time.Now()
	built := make([]string, 0, len(graph.Descriptors))
	for _, descriptor := range graph.Descriptors {
		if err := o.service.Toolchain.Compile(ctx, descriptor, buildDir); err != nil {
			return BuildResult{}, o.fail(err)
		}
		built = append(built, descriptor.Module)
		log.Ctx(ctx).Info().Str("module", descriptor.Module).Msg("module built")
	}
	if err := o.advance(ctx, types.StateDelegated, started); err != nil {
		return BuildResult{}, o.fail(err)
	}
	if err := o.advance(ctx, types.StateDone, started); err != nil {
		return BuildResult{}, o.fail(err)
	}

	return BuildResult{
		ProjectName: resolved.Project.Name,
		Version:     version,
		HeaderPath:  headerPath,
		RuntimePath: runtimePath,
		Built:       built,
		Skipped:     graph.Skipped,
	}, nil
}
