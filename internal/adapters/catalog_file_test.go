package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extbuild/internal/types"
)

func TestLoadCatalogSample(t *testing.T) {
	adapter := NewCatalogFileAdapter()
	catalog, err := adapter.LoadCatalog("../../fixtures/catalog-sample.yaml")
	require.NoError(t, err)

	assert.Equal(t, "v1", catalog.APIVersion)
	assert.Equal(t, "gridseg", catalog.Project.Name)
	assert.Equal(t, "include/gridseg/gridseg_config.hxx", catalog.Project.VersionHeader)

	require.Len(t, catalog.Dependencies, 3)
	boost := catalog.Dependencies[0]
	assert.Equal(t, "boost", boost.Name)
	require.Len(t, boost.Strategies, 1)
	assert.Equal(t, types.StrategyPaths, boost.Strategies[0].Kind)
	assert.Equal(t, []string{"vendor/boost"}, boost.Strategies[0].Paths)
	assert.Equal(t, "version.hpp", boost.Strategies[0].Marker)
	assert.Equal(t, ".", boost.Strategies[0].IncludeDir)

	require.Len(t, catalog.CompilerFeatures, 1)
	assert.Equal(t, "cpp17", catalog.CompilerFeatures[0].Name)

	require.Len(t, catalog.Submodules, 1)
	submodule := catalog.Submodules[0]
	assert.Equal(t, "externals/qpbo", submodule.Path)
	assert.Equal(t, "https://example.invalid/qpbo.git", submodule.URL)
	assert.Equal(t, "*.h", submodule.Verify.Glob)

	require.Len(t, catalog.Modules, 2)
	core := catalog.Modules[0]
	assert.Equal(t, "gridseg._core", core.Name)
	assert.Equal(t, []string{"src/core/*.cxx"}, core.Sources)
	assert.Equal(t, []string{"boost"}, core.Requires)
	assert.Equal(t, []string{"qpbo"}, core.OptionalRequires)
	assert.False(t, core.Optional)

	hdf5 := catalog.Modules[1]
	assert.Equal(t, "gridseg.hdf5._hdf5", hdf5.Name)
	assert.Equal(t, []string{"boost", "hdf5"}, hdf5.Requires)
	assert.True(t, hdf5.Optional)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	adapter := NewCatalogFileAdapter()
	_, err := adapter.LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}

func TestLoadCatalogMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_version: [unterminated"), 0o644))

	adapter := NewCatalogFileAdapter()
	_, err := adapter.LoadCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog yaml")
}
