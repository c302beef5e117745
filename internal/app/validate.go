package app

import (
	"context"
)

// Validate resolves and structurally checks the catalog without
// touching the build host.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	root := projectRoot(req.Root)
	resolved, err := s.loadCatalog(ctx, req.CatalogPath, root)
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		ProjectName:  resolved.Project.Name,
		Dependencies: len(resolved.Dependencies) + len(resolved.CompilerFeatures),
		Submodules:   len(resolved.Submodules),
		Modules:      len(resolved.Modules),
	}, nil
}
