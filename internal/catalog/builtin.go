// Package catalog carries the builtin gridseg build catalog, used
// whenever no catalog file is provided.
package catalog

import "extbuild/internal/types"

// FallbackVersion is reported when the version source header cannot be
// consulted, matching the last released gridseg version.
const FallbackVersion = "1.2.4"

// FileName is the catalog file looked up in the project root before
// falling back to the builtin catalog.
const FileName = "catalog.yaml"

const openmpProbe = `#include <omp.h>
int main() { return omp_get_max_threads() > 0 ? 0 : 1; }
`

const cpp17Probe = `#include <optional>
int main() { std::optional<int> value{17}; return *value == 17 ? 0 : 1; }
`

// Default returns the builtin gridseg catalog.
func Default() types.Catalog {
	return types.Catalog{
		APIVersion: "v1",
		Project: types.ProjectMeta{
			Name:          "gridseg",
			Description:   "graph-based grid segmentation extension library",
			VersionHeader: "include/gridseg/gridseg_config.hxx",
		},
		Dependencies: []types.Dependency{
			{
				Name: "boost",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyRegistry, Registry: types.RegistryDpkg, Package: "libboost-dev", MinVersion: "1.71"},
					{Kind: types.StrategyPaths, Paths: []string{"/usr/include", "/usr/local/include", "/opt/homebrew/include"}, Marker: "boost/version.hpp"},
					{Kind: types.StrategyEnv, EnvVar: "BOOST_ROOT", Marker: "include/boost/version.hpp", IncludeDir: "include"},
				},
			},
			{
				Name: "hdf5",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyRegistry, Registry: types.RegistryPkgConfig, Package: "hdf5"},
					{Kind: types.StrategyRegistry, Registry: types.RegistryDpkg, Package: "libhdf5-dev"},
					{Kind: types.StrategyPaths, Paths: []string{"/usr/include/hdf5/serial"}, Marker: "hdf5.h", IncludeDir: "."},
				},
			},
			{
				Name: "z5",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyPaths, Paths: []string{"/usr/include", "/usr/local/include", "/opt/conda/include"}, Marker: "z5"},
					{Kind: types.StrategyRuntimeImport, Import: "z5py"},
				},
			},
			{
				Name: "lp_mp",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyPaths, Paths: []string{"externals/LP_MP"}, Marker: "include", IncludeDir: "include"},
				},
			},
			{
				Name: "qpbo",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyPaths, Paths: []string{"externals/qpbo"}, Marker: "*.h", IncludeDir: "."},
				},
			},
			{
				Name: "gurobi",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyEnv, EnvVar: "GUROBI_HOME", Marker: "include/gurobi_c++.h", IncludeDir: "include"},
					{Kind: types.StrategyPaths, Paths: []string{"/opt/gurobi*/linux64"}, Marker: "include/gurobi_c++.h", IncludeDir: "include"},
				},
			},
			{
				Name: "cplex",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyEnv, EnvVar: "CPLEX_ROOT_DIR", Marker: "cplex/include/ilcplex", IncludeDir: "cplex/include"},
					{Kind: types.StrategyPaths, Paths: []string{"/opt/ibm/ILOG/CPLEX_Studio*"}, Marker: "cplex/include/ilcplex", IncludeDir: "cplex/include"},
				},
			},
			{
				Name: "numpy",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyRuntimeImport, Import: "numpy", MinVersion: "1.19", IncludeFromImport: true},
				},
			},
			{
				Name: "pybind11",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyRuntimeImport, Import: "pybind11", MinVersion: "2.10", IncludeFromImport: true},
				},
			},
		},
		CompilerFeatures: []types.Dependency{
			{
				Name: "openmp",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyTrialCompile, Program: openmpProbe, Flags: []string{"-fopenmp"}},
				},
			},
			{
				Name: "cpp17",
				Strategies: []types.DetectStrategy{
					{Kind: types.StrategyTrialCompile, Program: cpp17Probe, Flags: []string{"-std=c++17"}},
				},
			},
		},
		Submodules: []types.SubmoduleSpec{
			{
				Path:        "externals/LP_MP",
				URL:         "https://github.com/pawelswoboda/LP_MP.git",
				Description: "message passing solvers for LP relaxations",
				Verify:      types.VerifyRule{Dir: "include"},
			},
			{
				Path:        "externals/qpbo",
				URL:         "https://github.com/DerThorsten/qpbo",
				Description: "quadratic pseudo-boolean optimization",
				Verify:      types.VerifyRule{Glob: "*.h"},
			},
		},
		Modules: []types.ModuleDescriptor{
			{
				Name:        "gridseg._core",
				Sources:     []string{"src/core/*.cxx"},
				IncludeDirs: []string{"include"},
				Requires:    []string{"boost", "numpy", "pybind11"},
			},
			{
				Name:             "gridseg.graph._graph",
				Sources:          []string{"src/graph/*.cxx"},
				IncludeDirs:      []string{"include"},
				Requires:         []string{"boost", "lp_mp", "qpbo", "numpy", "pybind11"},
				OptionalRequires: []string{"gurobi", "cplex"},
			},
			{
				Name:        "gridseg.hdf5._hdf5",
				Sources:     []string{"src/hdf5/*.cxx"},
				IncludeDirs: []string{"include"},
				Requires:    []string{"boost", "hdf5", "numpy", "pybind11"},
				Optional:    true,
			},
			{
				Name:        "gridseg.z5._z5",
				Sources:     []string{"src/z5/*.cxx"},
				IncludeDirs: []string{"include"},
				Requires:    []string{"boost", "z5", "numpy", "pybind11"},
				Optional:    true,
			},
		},
	}
}
