package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/catalog"
	"extbuild/internal/runtimecfg"
	"extbuild/internal/solvers"
)

// Info loads the runtime half of the configuration artifact from the
// build directory.  The load is two-phase: a readable artifact yields
// the full feature picture, anything else yields an explicit degraded
// result carrying the reason and the fallback version.  Degradation is
// data, not an error.
func (s Service) Info(req InfoRequest) (InfoResult, error) {
	buildDir := strings.TrimSpace(req.BuildDir)
	if buildDir == "" {
		return InfoResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build directory is required")
	}
	loaded := runtimecfg.Load(filepath.Join(buildDir, "features.json"), catalog.FallbackVersion)
	result := InfoResult{
		Status:   loaded.Status,
		Version:  loaded.Config.Version,
		Reason:   loaded.Reason,
		Features: loaded.Config.Features,
	}
	if loaded.Status != runtimecfg.StatusLoaded {
		return result, nil
	}
	for _, tag := range solvers.Capabilities() {
		resolved, err := solvers.ResolveRuntime(tag, loaded.Config)
		if err != nil {
			return InfoResult{}, err
		}
		result.Solvers = append(result.Solvers, SolverSummary{Capability: tag, Factories: resolved})
	}
	return result, nil
}
