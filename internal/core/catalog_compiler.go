package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"extbuild/internal/types"
)

type CatalogCompiler struct{}

var validStrategyKinds = map[types.StrategyKind]struct{}{
	types.StrategyRegistry:      {},
	types.StrategyPaths:         {},
	types.StrategyEnv:           {},
	types.StrategyTrialCompile:  {},
	types.StrategyRuntimeImport: {},
}

var validRegistryKinds = map[types.RegistryKind]struct{}{
	types.RegistryPkgConfig: {},
	types.RegistryDpkg:      {},
}

func NewCatalogCompiler() CatalogCompiler {
	return CatalogCompiler{}
}

// ValidateCatalog enforces the structural rules every catalog must
// satisfy before the pipeline runs: unique names, complete strategies,
// and no module reference to an undeclared dependency.
func (c CatalogCompiler) ValidateCatalog(ctx context.Context, catalog types.Catalog) error {
	assert.NotEmpty(ctx, catalog.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, catalog.Project.Name, "project.name must be set")
	assert.NotEmpty(ctx, catalog.Project.VersionHeader, "project.version_header must be set")

	declared := map[string]struct{}{}
	for _, dep := range catalog.Dependencies {
		if err := validateDependency(dep, declared); err != nil {
			return err
		}
	}
	for _, feature := range catalog.CompilerFeatures {
		if err := validateDependency(feature, declared); err != nil {
			return err
		}
	}

	seenSubmodules := map[string]struct{}{}
	for _, submodule := range catalog.Submodules {
		if err := validateSubmodule(submodule, seenSubmodules); err != nil {
			return err
		}
	}

	if len(catalog.Modules) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("modules must not be empty")
	}
	seenModules := map[string]struct{}{}
	for _, module := range catalog.Modules {
		if err := validateModule(module, declared, seenModules); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Str("catalog", catalog.Project.Name).Msg("catalog validated")
	return nil
}

func validateDependency(dep types.Dependency, declared map[string]struct{}) error {
	if strings.TrimSpace(dep.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency name must not be empty")
	}
	if _, ok := declared[dep.Name]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependency %s declared more than once", dep.Name))
	}
	declared[dep.Name] = struct{}{}
	if len(dep.Strategies) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependency %s has no detection strategies", dep.Name))
	}
	for _, strategy := range dep.Strategies {
		if err := validateStrategy(dep.Name, strategy); err != nil {
			return err
		}
	}
	return nil
}

func validateStrategy(dep string, strategy types.DetectStrategy) error {
	if _, ok := validStrategyKinds[strategy.Kind]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependency %s has invalid strategy kind %q", dep, strategy.Kind))
	}
	switch strategy.Kind {
	case types.StrategyRegistry:
		if _, ok := validRegistryKinds[strategy.Registry]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s registry strategy has invalid registry %q", dep, strategy.Registry))
		}
		if strings.TrimSpace(strategy.Package) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s registry strategy missing package", dep))
		}
	case types.StrategyPaths:
		if len(strategy.Paths) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s paths strategy has no candidates", dep))
		}
	case types.StrategyEnv:
		if strings.TrimSpace(strategy.EnvVar) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s env strategy missing env_var", dep))
		}
	case types.StrategyTrialCompile:
		if strings.TrimSpace(strategy.Program) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s trial-compile strategy missing program", dep))
		}
	case types.StrategyRuntimeImport:
		if strings.TrimSpace(strategy.Import) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s runtime-import strategy missing import", dep))
		}
	}
	return nil
}

func validateSubmodule(submodule types.SubmoduleSpec, seen map[string]struct{}) error {
	if strings.TrimSpace(submodule.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("submodule path must not be empty")
	}
	if _, ok := seen[submodule.Path]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("submodule %s declared more than once", submodule.Path))
	}
	seen[submodule.Path] = struct{}{}
	if strings.TrimSpace(submodule.URL) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("submodule %s missing url", submodule.Path))
	}
	return nil
}

func validateModule(module types.ModuleDescriptor, declared map[string]struct{}, seen map[string]struct{}) error {
	if strings.TrimSpace(module.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("module name must not be empty")
	}
	if _, ok := seen[module.Name]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("module %s declared more than once", module.Name))
	}
	seen[module.Name] = struct{}{}
	if len(module.Sources) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("module %s has no sources", module.Name))
	}
	for _, name := range module.Requires {
		if _, ok := declared[name]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("module %s requires undeclared dependency %s", module.Name, name))
		}
	}
	for _, name := range module.OptionalRequires {
		if _, ok := declared[name]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("module %s optionally requires undeclared dependency %s", module.Name, name))
		}
	}
	return nil
}
