package app

import (
	"context"

	"extbuild/internal/core"
	"extbuild/internal/solvers"
	"extbuild/internal/types"
)

// Detect runs the probe pass standalone and reports the full feature
// picture, including the solver factories the detected features
// enable.  Missing features are ordinary output here, never failures.
func (s Service) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	root := projectRoot(req.Root)
	resolved, err := s.loadCatalog(ctx, req.CatalogPath, root)
	if err != nil {
		return DetectResult{}, err
	}
	prober := core.NewProber(s.Registries, s.Toolchain, s.Runtime, root)
	report := prober.ProbeAll(ctx, resolved)
	summaries, err := solverSummaries(report.Features)
	if err != nil {
		return DetectResult{}, err
	}
	return DetectResult{
		ProjectName: resolved.Project.Name,
		Report:      report,
		Solvers:     summaries,
	}, nil
}

func solverSummaries(features types.FeatureMap) ([]SolverSummary, error) {
	var summaries []SolverSummary
	for _, tag := range solvers.Capabilities() {
		resolved, err := solvers.Resolve(tag, features)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, SolverSummary{Capability: tag, Factories: resolved})
	}
	return summaries, nil
}
