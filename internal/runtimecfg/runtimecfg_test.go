package runtimecfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadReadsRuntimeConfiguration(t *testing.T) {
	path := writeConfig(t, `{"version":"1.2.4","features":{"WITH_BOOST":true,"WITH_HDF5":false}}`)

	result := Load(path, "9.9.9")
	assert.Equal(t, StatusLoaded, result.Status)
	assert.Equal(t, "1.2.4", result.Config.Version)
	assert.Empty(t, result.Reason)
	assert.True(t, result.Config.Features["WITH_BOOST"])
}

func TestLoadDegradesOnMissingFile(t *testing.T) {
	result := Load(filepath.Join(t.TempDir(), "features.json"), "1.2.4")

	assert.Equal(t, StatusDegraded, result.Status)
	assert.Equal(t, "1.2.4", result.Config.Version)
	assert.NotEmpty(t, result.Reason)
	assert.Empty(t, result.Config.Features)
}

func TestLoadDegradesOnMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"version": "1.2.4", "features": [`)

	result := Load(path, "1.2.4")
	assert.Equal(t, StatusDegraded, result.Status)
	assert.NotEmpty(t, result.Reason)
}

func TestLoadNormalizesAbsentFeatureMap(t *testing.T) {
	path := writeConfig(t, `{"version":"1.2.4"}`)

	result := Load(path, "9.9.9")
	assert.Equal(t, StatusLoaded, result.Status)
	assert.NotNil(t, result.Config.Features)
}

func TestEnabledLooksUpByCatalogName(t *testing.T) {
	path := writeConfig(t, `{"version":"1.2.4","features":{"WITH_BOOST":true,"WITH_HDF5":false}}`)
	result := Load(path, "1.2.4")

	enabled, err := result.Enabled("boost")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = result.Enabled("hdf5")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestEnabledUnrecordedFeatureIsError(t *testing.T) {
	path := writeConfig(t, `{"version":"1.2.4","features":{"WITH_BOOST":true}}`)
	result := Load(path, "1.2.4")

	_, err := result.Enabled("gurobi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gurobi")
}

func TestEnabledOnDegradedResultIsError(t *testing.T) {
	result := Load(filepath.Join(t.TempDir(), "features.json"), "1.2.4")

	_, err := result.Enabled("boost")
	require.Error(t, err)
}
